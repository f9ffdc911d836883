package service

import (
	"context"
	"strings"

	"github.com/shishir1337/maneelclub-sub001/internal/domain"
)

// Cities billed at the inside-Dhaka rate regardless of the city registry.
var dhakaAreaCities = map[string]bool{
	"dhaka":       true,
	"gazipur":     true,
	"narayanganj": true,
}

const (
	defaultShippingDhaka   = 70
	defaultShippingOutside = 130
)

// ShippingService resolves a flat delivery charge from the settings-backed
// zone rates.
type ShippingService struct {
	settings *SettingsService
}

func NewShippingService(settings *SettingsService) *ShippingService {
	return &ShippingService{settings: settings}
}

// Zone maps a city name to its shipping zone.
func (s *ShippingService) Zone(city string) domain.ShippingZone {
	if dhakaAreaCities[strings.ToLower(strings.TrimSpace(city))] {
		return domain.ZoneInsideDhaka
	}
	return domain.ZoneOutsideDhaka
}

// Cost returns the flat shipping charge for the city. Orders at or above the
// free-shipping minimum (when configured) ship free.
func (s *ShippingService) Cost(ctx context.Context, city string, subtotal float64) float64 {
	if min := s.settings.GetFloat(ctx, SettingFreeShippingMinimum); min > 0 && subtotal >= min {
		return 0
	}

	if s.Zone(city) == domain.ZoneInsideDhaka {
		if rate := s.settings.GetFloat(ctx, SettingShippingDhaka); rate > 0 {
			return rate
		}
		return defaultShippingDhaka
	}
	if rate := s.settings.GetFloat(ctx, SettingShippingOutside); rate > 0 {
		return rate
	}
	return defaultShippingOutside
}
