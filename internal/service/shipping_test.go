package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/shishir1337/maneelclub-sub001/internal/domain"
)

func newShippingService(rows map[string]string) *ShippingService {
	return NewShippingService(NewSettingsService(newFakeSettingsStore(rows), zap.NewNop()))
}

func TestZoneMapping(t *testing.T) {
	svc := newShippingService(nil)

	tests := []struct {
		city string
		want domain.ShippingZone
	}{
		{"dhaka", domain.ZoneInsideDhaka},
		{"Dhaka", domain.ZoneInsideDhaka},
		{" GAZIPUR ", domain.ZoneInsideDhaka},
		{"narayanganj", domain.ZoneInsideDhaka},
		{"chittagong", domain.ZoneOutsideDhaka},
		{"sylhet", domain.ZoneOutsideDhaka},
		{"", domain.ZoneOutsideDhaka},
	}
	for _, tt := range tests {
		if got := svc.Zone(tt.city); got != tt.want {
			t.Errorf("Zone(%q) = %s, want %s", tt.city, got, tt.want)
		}
	}
}

func TestCostUsesConfiguredRates(t *testing.T) {
	svc := newShippingService(map[string]string{
		SettingShippingDhaka:   "60",
		SettingShippingOutside: "150",
	})
	ctx := context.Background()

	if got := svc.Cost(ctx, "dhaka", 500); got != 60 {
		t.Fatalf("inside rate: got %v want 60", got)
	}
	if got := svc.Cost(ctx, "khulna", 500); got != 150 {
		t.Fatalf("outside rate: got %v want 150", got)
	}
}

func TestCostFallsBackToDefaults(t *testing.T) {
	// Unparseable settings behave like an unreadable store.
	svc := newShippingService(map[string]string{
		SettingShippingDhaka:   "not-a-number",
		SettingShippingOutside: "",
	})
	ctx := context.Background()

	if got := svc.Cost(ctx, "dhaka", 500); got != 70 {
		t.Fatalf("inside default: got %v want 70", got)
	}
	if got := svc.Cost(ctx, "barisal", 500); got != 130 {
		t.Fatalf("outside default: got %v want 130", got)
	}
}

func TestCostFreeShippingThreshold(t *testing.T) {
	svc := newShippingService(map[string]string{
		SettingFreeShippingMinimum: "2000",
	})
	ctx := context.Background()

	if got := svc.Cost(ctx, "dhaka", 2500); got != 0 {
		t.Fatalf("expected free shipping, got %v", got)
	}
	if got := svc.Cost(ctx, "dhaka", 1999); got != 70 {
		t.Fatalf("below threshold should charge, got %v", got)
	}
	if got := svc.Cost(ctx, "dhaka", 2000); got != 0 {
		t.Fatalf("threshold is inclusive, got %v", got)
	}
}
