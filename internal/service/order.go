package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shishir1337/maneelclub-sub001/internal/domain"
	"github.com/shishir1337/maneelclub-sub001/internal/repository"
)

var (
	ErrOrderBlocked  = errors.New("Your order could not be placed")
	ErrProductGone   = errors.New("One or more products are unavailable")
	ErrStockShort    = errors.New("Insufficient stock for one or more items")
	ErrTrxIDRequired = errors.New("Transaction ID is required for this payment method")
)

// OrderStore persists a composed order atomically.
type OrderStore interface {
	Create(ctx context.Context, order *domain.Order, couponID *uuid.UUID) error
	GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	List(ctx context.Context, limit int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus, paymentStatus *domain.PaymentStatus) error
}

// ProductStore is the slice of the catalog the order writer reads.
type ProductStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}

// PurchasePublisher reports a committed order to the analytics pipeline.
// Publishing is best-effort and must never fail the order.
type PurchasePublisher interface {
	PublishPurchase(ctx context.Context, order *domain.Order)
}

type OrderService struct {
	orders    OrderStore
	products  ProductStore
	coupons   *CouponService
	shipping  *ShippingService
	banlist   *BanlistService
	publisher PurchasePublisher
	logger    *zap.Logger
}

func NewOrderService(
	orders OrderStore,
	products ProductStore,
	coupons *CouponService,
	shipping *ShippingService,
	banlist *BanlistService,
	publisher PurchasePublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		coupons:   coupons,
		shipping:  shipping,
		banlist:   banlist,
		publisher: publisher,
		logger:    logger,
	}
}

// Create runs the checkout: ban gate, price snapshot, coupon, shipping, then
// a single transactional write. Coupon usage is consumed inside that
// transaction, so a capped coupon cannot be over-redeemed by concurrent
// checkouts.
func (s *OrderService) Create(ctx context.Context, req domain.CreateOrderRequest, clientIP string) (*domain.Order, error) {
	if s.banlist.IsBanned(ctx, clientIP) {
		s.logger.Warn("order blocked by ban list", zap.String("ip", clientIP))
		return nil, ErrOrderBlocked
	}

	if req.PaymentMethod != domain.PaymentCOD && (req.TrxID == nil || strings.TrimSpace(*req.TrxID) == "") {
		return nil, ErrTrxIDRequired
	}

	var (
		items    []domain.OrderItem
		subtotal float64
	)
	for _, line := range req.Items {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, ErrProductGone
		}
		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrProductGone
			}
			return nil, err
		}
		if !product.IsActive {
			return nil, ErrProductGone
		}
		if product.Stock < line.Quantity {
			return nil, ErrStockShort
		}
		price := product.EffectivePrice()
		items = append(items, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Color:       line.Color,
			Size:        line.Size,
			Quantity:    line.Quantity,
			UnitPrice:   price,
		})
		subtotal += price * float64(line.Quantity)
	}

	var (
		discount float64
		couponID *uuid.UUID
		code     *string
	)
	if req.CouponCode != nil && strings.TrimSpace(*req.CouponCode) != "" {
		applied, err := s.coupons.Validate(ctx, *req.CouponCode, subtotal)
		if err != nil {
			return nil, err
		}
		discount = applied.Discount
		id, err := uuid.Parse(applied.CouponID)
		if err != nil {
			return nil, err
		}
		couponID = &id
		code = &applied.Code
	}

	shippingCost := s.shipping.Cost(ctx, req.City, subtotal)

	order := &domain.Order{
		OrderNumber:   newOrderNumber(),
		CustomerName:  strings.TrimSpace(req.CustomerName),
		Phone:         strings.TrimSpace(req.Phone),
		Address:       strings.TrimSpace(req.Address),
		City:          strings.TrimSpace(req.City),
		Zone:          s.shipping.Zone(req.City),
		CustomerIP:    clientIP,
		Subtotal:      subtotal,
		ShippingCost:  shippingCost,
		Discount:      discount,
		Total:         subtotal + shippingCost - discount,
		CouponCode:    code,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: domain.PaymentPending,
		TrxID:         req.TrxID,
		Status:        domain.OrderPending,
		Items:         items,
	}

	if err := s.orders.Create(ctx, order, couponID); err != nil {
		switch {
		case errors.Is(err, repository.ErrOutOfStock):
			return nil, ErrStockShort
		case errors.Is(err, repository.ErrCouponExhausted):
			return nil, ErrCouponExhausted
		}
		s.logger.Error("order create failed",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.PublishPurchase(ctx, order)
	}

	s.logger.Info("order created",
		zap.String("order_number", order.OrderNumber),
		zap.Float64("total", order.Total),
		zap.String("payment_method", string(order.PaymentMethod)))
	return order, nil
}

func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return s.orders.GetByNumber(ctx, orderNumber)
}

func (s *OrderService) List(ctx context.Context, limit int) ([]domain.Order, error) {
	return s.orders.List(ctx, limit)
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderNumber string, req domain.UpdateOrderStatusRequest) error {
	return s.orders.UpdateStatus(ctx, orderNumber, req.Status, req.PaymentStatus)
}

// newOrderNumber derives a short customer-facing token from a UUID.
func newOrderNumber() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("MC-%s", strings.ToUpper(raw[:10]))
}
