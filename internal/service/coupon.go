package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shishir1337/maneelclub-sub001/internal/domain"
	"github.com/shishir1337/maneelclub-sub001/internal/repository"
)

var (
	ErrCouponInvalid   = errors.New("Invalid coupon code")
	ErrCouponInactive  = errors.New("This coupon is not currently valid")
	ErrCouponExhausted = errors.New("This coupon has reached its usage limit")
	ErrCouponLookup    = errors.New("Failed to validate coupon")
)

// MinOrderError reports a subtotal below the coupon's minimum; the message
// includes the formatted minimum.
type MinOrderError struct {
	Minimum float64
}

func (e *MinOrderError) Error() string {
	return fmt.Sprintf("Minimum order amount is %s BDT", formatAmount(e.Minimum))
}

// CouponStore is the persistence surface the validator needs. The concrete
// repository satisfies it; tests use in-memory fakes.
type CouponStore interface {
	FindActiveByCode(ctx context.Context, code string) (*domain.Coupon, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Coupon, error)
	Create(ctx context.Context, c *domain.Coupon) error
	Update(ctx context.Context, c *domain.Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Coupon, error)
}

type CouponService struct {
	store  CouponStore
	logger *zap.Logger
	now    func() time.Time
}

func NewCouponService(store CouponStore, logger *zap.Logger) *CouponService {
	return &CouponService{store: store, logger: logger, now: time.Now}
}

// Validate checks the code against the subtotal and computes the discount.
// It has no side effects: usage is consumed later, inside the order
// transaction.
func (s *CouponService) Validate(ctx context.Context, code string, subtotal float64) (*domain.CouponDiscount, error) {
	code = strings.TrimSpace(code)
	if code == "" || subtotal <= 0 {
		return nil, ErrCouponInvalid
	}

	coupon, err := s.store.FindActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCouponInvalid
		}
		s.logger.Error("coupon lookup failed", zap.String("code", code), zap.Error(err))
		return nil, ErrCouponLookup
	}

	now := s.now()
	if coupon.ValidFrom != nil && now.Before(*coupon.ValidFrom) {
		return nil, ErrCouponInactive
	}
	if coupon.ValidUntil != nil && now.After(*coupon.ValidUntil) {
		return nil, ErrCouponInactive
	}
	if coupon.MaxUses != nil && coupon.UsedCount >= *coupon.MaxUses {
		return nil, ErrCouponExhausted
	}
	if coupon.MinOrderAmount != nil && subtotal < *coupon.MinOrderAmount {
		return nil, &MinOrderError{Minimum: *coupon.MinOrderAmount}
	}

	var discount float64
	switch coupon.DiscountType {
	case domain.DiscountPercent:
		discount, _ = decimal.NewFromFloat(subtotal).
			Mul(decimal.NewFromFloat(coupon.Value)).
			Div(decimal.NewFromInt(100)).
			Round(2).
			Float64()
	case domain.DiscountFixed:
		discount = coupon.Value
		if discount > subtotal {
			discount = subtotal
		}
	default:
		return nil, ErrCouponInvalid
	}

	if discount <= 0 {
		return nil, ErrCouponInvalid
	}

	return &domain.CouponDiscount{
		CouponID: coupon.ID.String(),
		Code:     coupon.Code,
		Discount: discount,
	}, nil
}

func (s *CouponService) Create(ctx context.Context, req domain.CreateCouponRequest) (*domain.Coupon, error) {
	coupon := &domain.Coupon{
		Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
		DiscountType:   req.DiscountType,
		Value:          req.Value,
		MinOrderAmount: req.MinOrderAmount,
		MaxUses:        req.MaxUses,
		ValidFrom:      req.ValidFrom,
		ValidUntil:     req.ValidUntil,
		IsActive:       true,
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}
	if err := s.store.Create(ctx, coupon); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("A coupon with code %s already exists", coupon.Code)
		}
		return nil, err
	}
	return coupon, nil
}

func (s *CouponService) Update(ctx context.Context, id uuid.UUID, req domain.CreateCouponRequest) (*domain.Coupon, error) {
	coupon, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	coupon.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	coupon.DiscountType = req.DiscountType
	coupon.Value = req.Value
	coupon.MinOrderAmount = req.MinOrderAmount
	coupon.MaxUses = req.MaxUses
	coupon.ValidFrom = req.ValidFrom
	coupon.ValidUntil = req.ValidUntil
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}
	if err := s.store.Update(ctx, coupon); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("A coupon with code %s already exists", coupon.Code)
		}
		return nil, err
	}
	return coupon, nil
}

func (s *CouponService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

func (s *CouponService) List(ctx context.Context) ([]domain.Coupon, error) {
	return s.store.List(ctx)
}

// formatAmount renders a BDT amount with thousands separators, dropping the
// fraction when it is whole: 1000 -> "1,000", 1234.5 -> "1,234.50".
func formatAmount(v float64) string {
	whole := int64(v)
	frac := v - float64(whole)

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if frac > 0.004 {
		b.WriteString(strconv.FormatFloat(frac, 'f', 2, 64)[1:])
	}
	return b.String()
}
