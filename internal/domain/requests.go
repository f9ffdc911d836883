package domain

import "time"

type ValidateCouponRequest struct {
	Code     string  `json:"code" binding:"required"`
	Subtotal float64 `json:"subtotal" binding:"required,gt=0"`
}

type CouponDiscount struct {
	CouponID string  `json:"coupon_id"`
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
}

type CreateCouponRequest struct {
	Code           string       `json:"code" binding:"required,min=3,max=64"`
	DiscountType   DiscountType `json:"discount_type" binding:"required,oneof=PERCENT FIXED"`
	Value          float64      `json:"value" binding:"required,gt=0"`
	MinOrderAmount *float64     `json:"min_order_amount" binding:"omitempty,gt=0"`
	MaxUses        *int         `json:"max_uses" binding:"omitempty,gt=0"`
	ValidFrom      *time.Time   `json:"valid_from"`
	ValidUntil     *time.Time   `json:"valid_until"`
	IsActive       *bool        `json:"is_active"`
}

type CreateCityRequest struct {
	Name      string       `json:"name" binding:"required"`
	Value     string       `json:"value"`
	Zone      ShippingZone `json:"zone" binding:"required,oneof=inside_dhaka outside_dhaka"`
	SortOrder int          `json:"sort_order"`
}

type BanIPRequest struct {
	IP     string  `json:"ip" binding:"required,max=45"`
	Reason *string `json:"reason"`
}

type CreateProductRequest struct {
	Name      string   `json:"name" binding:"required"`
	Slug      string   `json:"slug"`
	Price     float64  `json:"price" binding:"required,gt=0"`
	SalePrice *float64 `json:"sale_price" binding:"omitempty,gt=0"`
	Stock     int      `json:"stock" binding:"gte=0"`
	ImageURL  string   `json:"image_url"`
	IsActive  *bool    `json:"is_active"`
}

type OrderItemRequest struct {
	ProductID string  `json:"product_id" binding:"required,uuid"`
	Color     *string `json:"color"`
	Size      *string `json:"size"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	CustomerName  string             `json:"customer_name" binding:"required"`
	Phone         string             `json:"phone" binding:"required"`
	Address       string             `json:"address" binding:"required"`
	City          string             `json:"city" binding:"required"`
	PaymentMethod PaymentMethod      `json:"payment_method" binding:"required,oneof=cod bkash nagad rocket"`
	TrxID         *string            `json:"trx_id"`
	CouponCode    *string            `json:"coupon_code"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status        OrderStatus    `json:"status" binding:"required,oneof=pending confirmed shipped delivered cancelled"`
	PaymentStatus *PaymentStatus `json:"payment_status" binding:"omitempty,oneof=pending verified failed"`
}

type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}
