package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shishir1337/maneelclub-sub001/internal/domain"
)

type CouponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

// FindActiveByCode matches the upper-cased code against active coupons only.
func (r *CouponRepository) FindActiveByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	var c domain.Coupon
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", strings.ToUpper(code), true).
		First(&c).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CouponRepository) Create(ctx context.Context, c *domain.Coupon) error {
	c.Code = strings.ToUpper(c.Code)
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *CouponRepository) Update(ctx context.Context, c *domain.Coupon) error {
	c.Code = strings.ToUpper(c.Code)
	return translate(r.db.WithContext(ctx).Save(c).Error)
}

func (r *CouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Coupon, error) {
	var c domain.Coupon
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Coupon{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CouponRepository) List(ctx context.Context) ([]domain.Coupon, error) {
	var coupons []domain.Coupon
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&coupons).Error
	return coupons, translate(err)
}
