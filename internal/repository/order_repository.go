package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shishir1337/maneelclub-sub001/internal/domain"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrOutOfStock      = errors.New("insufficient stock")
	ErrCouponExhausted = errors.New("coupon usage limit reached")
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists the order with its items, decrements stock and consumes the
// coupon usage in one transaction. The stock and coupon updates are guarded so
// concurrent checkouts cannot oversell a product or over-redeem a capped
// coupon.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order, couponID *uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return translate(err)
		}

		for _, item := range order.Items {
			res := tx.Model(&domain.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return translate(res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrOutOfStock
			}
		}

		if couponID != nil {
			res := tx.Model(&domain.Coupon{}).
				Where("id = ? AND (max_uses IS NULL OR used_count < max_uses)", *couponID).
				Update("used_count", gorm.Expr("used_count + 1"))
			if res.Error != nil {
				return translate(res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrCouponExhausted
			}
		}
		return nil
	})
}

func (r *OrderRepository) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).Preload("Items").
		First(&order, "order_number = ?", orderNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) List(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var orders []domain.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Order("created_at desc").Limit(limit).Find(&orders).Error
	return orders, translate(err)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus, paymentStatus *domain.PaymentStatus) error {
	updates := map[string]interface{}{"status": status}
	if paymentStatus != nil {
		updates["payment_status"] = *paymentStatus
	}
	res := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("order_number = ?", orderNumber).
		Updates(updates)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
