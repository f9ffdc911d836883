package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shishir1337/maneelclub-sub001/internal/domain"
	"github.com/shishir1337/maneelclub-sub001/internal/repository"
)

type fakeCouponStore struct {
	coupons map[string]*domain.Coupon
}

func newFakeCouponStore(coupons ...*domain.Coupon) *fakeCouponStore {
	s := &fakeCouponStore{coupons: make(map[string]*domain.Coupon)}
	for _, c := range coupons {
		s.coupons[strings.ToUpper(c.Code)] = c
	}
	return s
}

func (s *fakeCouponStore) FindActiveByCode(_ context.Context, code string) (*domain.Coupon, error) {
	c, ok := s.coupons[strings.ToUpper(code)]
	if !ok || !c.IsActive {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (s *fakeCouponStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Coupon, error) {
	for _, c := range s.coupons {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeCouponStore) Create(_ context.Context, c *domain.Coupon) error {
	if _, ok := s.coupons[c.Code]; ok {
		return repository.ErrDuplicate
	}
	s.coupons[c.Code] = c
	return nil
}

func (s *fakeCouponStore) Update(_ context.Context, c *domain.Coupon) error { return nil }
func (s *fakeCouponStore) Delete(_ context.Context, id uuid.UUID) error     { return nil }
func (s *fakeCouponStore) List(_ context.Context) ([]domain.Coupon, error)  { return nil, nil }

func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

func TestValidatePercentCoupon(t *testing.T) {
	coupon := &domain.Coupon{
		ID:             uuid.New(),
		Code:           "SAVE10",
		DiscountType:   domain.DiscountPercent,
		Value:          10,
		MinOrderAmount: floatPtr(1000),
		MaxUses:        intPtr(100),
		UsedCount:      5,
		IsActive:       true,
	}
	svc := NewCouponService(newFakeCouponStore(coupon), zap.NewNop())

	applied, err := svc.Validate(context.Background(), "SAVE10", 2500)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if applied.Discount != 250 {
		t.Fatalf("discount mismatch: got %v want 250", applied.Discount)
	}
	if applied.Code != "SAVE10" {
		t.Fatalf("code mismatch: got %s", applied.Code)
	}
	if applied.CouponID != coupon.ID.String() {
		t.Fatalf("coupon id mismatch: got %s", applied.CouponID)
	}
}

func TestValidatePercentRoundsToTwoDecimals(t *testing.T) {
	coupon := &domain.Coupon{
		ID:           uuid.New(),
		Code:         "ODD",
		DiscountType: domain.DiscountPercent,
		Value:        7.5,
		IsActive:     true,
	}
	svc := NewCouponService(newFakeCouponStore(coupon), zap.NewNop())

	applied, err := svc.Validate(context.Background(), "ODD", 333.33)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	// 333.33 * 7.5% = 24.99975 -> 25.00
	if applied.Discount != 25 {
		t.Fatalf("discount mismatch: got %v want 25", applied.Discount)
	}
}

func TestValidateFixedCouponClampedToSubtotal(t *testing.T) {
	coupon := &domain.Coupon{
		ID:           uuid.New(),
		Code:         "FLAT500",
		DiscountType: domain.DiscountFixed,
		Value:        500,
		IsActive:     true,
	}
	svc := NewCouponService(newFakeCouponStore(coupon), zap.NewNop())

	applied, err := svc.Validate(context.Background(), "FLAT500", 300)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if applied.Discount != 300 {
		t.Fatalf("fixed discount should clamp to subtotal: got %v", applied.Discount)
	}

	applied, err = svc.Validate(context.Background(), "FLAT500", 2000)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if applied.Discount != 500 {
		t.Fatalf("fixed discount mismatch: got %v want 500", applied.Discount)
	}
}

func TestValidateRejectsBelowMinimum(t *testing.T) {
	coupon := &domain.Coupon{
		ID:             uuid.New(),
		Code:           "BIG",
		DiscountType:   domain.DiscountPercent,
		Value:          10,
		MinOrderAmount: floatPtr(1000),
		IsActive:       true,
	}
	svc := NewCouponService(newFakeCouponStore(coupon), zap.NewNop())

	_, err := svc.Validate(context.Background(), "BIG", 500)
	if err == nil {
		t.Fatal("expected error for subtotal below minimum")
	}
	if got := err.Error(); got != "Minimum order amount is 1,000 BDT" {
		t.Fatalf("message mismatch: got %q", got)
	}
	var minErr *MinOrderError
	if !errors.As(err, &minErr) {
		t.Fatal("expected MinOrderError")
	}
}

func TestValidateRejectsExhaustedCoupon(t *testing.T) {
	coupon := &domain.Coupon{
		ID:           uuid.New(),
		Code:         "DONE",
		DiscountType: domain.DiscountPercent,
		Value:        10,
		MaxUses:      intPtr(3),
		UsedCount:    3,
		IsActive:     true,
	}
	svc := NewCouponService(newFakeCouponStore(coupon), zap.NewNop())

	if _, err := svc.Validate(context.Background(), "DONE", 5000); !errors.Is(err, ErrCouponExhausted) {
		t.Fatalf("expected ErrCouponExhausted, got %v", err)
	}
}

func TestValidateRejectsOutsideWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	tests := []struct {
		name       string
		validFrom  *time.Time
		validUntil *time.Time
		wantErr    error
	}{
		{"not yet valid", &future, nil, ErrCouponInactive},
		{"expired", nil, &past, ErrCouponInactive},
		{"inside window", &past, &future, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon := &domain.Coupon{
				ID:           uuid.New(),
				Code:         "WINDOW",
				DiscountType: domain.DiscountPercent,
				Value:        10,
				ValidFrom:    tt.validFrom,
				ValidUntil:   tt.validUntil,
				IsActive:     true,
			}
			svc := NewCouponService(newFakeCouponStore(coupon), zap.NewNop())
			svc.now = func() time.Time { return now }

			_, err := svc.Validate(context.Background(), "WINDOW", 1000)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateUnknownOrInactiveCode(t *testing.T) {
	inactive := &domain.Coupon{
		ID:           uuid.New(),
		Code:         "OFF",
		DiscountType: domain.DiscountFixed,
		Value:        50,
		IsActive:     false,
	}
	svc := NewCouponService(newFakeCouponStore(inactive), zap.NewNop())

	if _, err := svc.Validate(context.Background(), "NOPE", 1000); !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("expected ErrCouponInvalid for unknown code, got %v", err)
	}
	if _, err := svc.Validate(context.Background(), "OFF", 1000); !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("expected ErrCouponInvalid for inactive code, got %v", err)
	}
	if _, err := svc.Validate(context.Background(), "", 1000); !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("expected ErrCouponInvalid for empty code, got %v", err)
	}
	if _, err := svc.Validate(context.Background(), "OFF", 0); !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("expected ErrCouponInvalid for zero subtotal, got %v", err)
	}
}

func TestValidateLowercaseCodeMatches(t *testing.T) {
	coupon := &domain.Coupon{
		ID:           uuid.New(),
		Code:         "SAVE10",
		DiscountType: domain.DiscountPercent,
		Value:        10,
		IsActive:     true,
	}
	svc := NewCouponService(newFakeCouponStore(coupon), zap.NewNop())

	applied, err := svc.Validate(context.Background(), "save10", 1000)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if applied.Discount != 100 {
		t.Fatalf("discount mismatch: got %v want 100", applied.Discount)
	}
}

func TestCreateCouponDuplicateCode(t *testing.T) {
	existing := &domain.Coupon{ID: uuid.New(), Code: "TAKEN", DiscountType: domain.DiscountFixed, Value: 10, IsActive: true}
	svc := NewCouponService(newFakeCouponStore(existing), zap.NewNop())

	_, err := svc.Create(context.Background(), domain.CreateCouponRequest{
		Code:         "taken",
		DiscountType: domain.DiscountFixed,
		Value:        10,
	})
	if err == nil {
		t.Fatal("expected duplicate error")
	}
	if !strings.Contains(err.Error(), "TAKEN") {
		t.Fatalf("message should name the code: %q", err.Error())
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1000, "1,000"},
		{70, "70"},
		{1234567, "1,234,567"},
		{1234.5, "1,234.50"},
	}
	for _, tt := range tests {
		if got := formatAmount(tt.in); got != tt.want {
			t.Errorf("formatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
