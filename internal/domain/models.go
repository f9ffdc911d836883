package domain

import (
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountFixed   DiscountType = "FIXED"
)

type ShippingZone string

const (
	ZoneInsideDhaka  ShippingZone = "inside_dhaka"
	ZoneOutsideDhaka ShippingZone = "outside_dhaka"
)

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentBkash  PaymentMethod = "bkash"
	PaymentNagad  PaymentMethod = "nagad"
	PaymentRocket PaymentMethod = "rocket"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentVerified PaymentStatus = "verified"
	PaymentFailed   PaymentStatus = "failed"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Coupon is a promotional code. Codes are stored upper-cased; zero-valued
// optional fields mean "no restriction".
type Coupon struct {
	ID             uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code           string       `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	DiscountType   DiscountType `gorm:"type:varchar(10);not null" json:"discount_type"`
	Value          float64      `gorm:"not null" json:"value"`
	MinOrderAmount *float64     `json:"min_order_amount,omitempty"`
	MaxUses        *int         `json:"max_uses,omitempty"`
	UsedCount      int          `gorm:"not null;default:0" json:"used_count"`
	ValidFrom      *time.Time   `json:"valid_from,omitempty"`
	ValidUntil     *time.Time   `json:"valid_until,omitempty"`
	IsActive       bool         `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// City maps a deliverable city to its shipping zone. Value is the
// lower-kebab slug derived from Name when not given explicitly.
type City struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Value     string       `gorm:"type:varchar(128);uniqueIndex;not null" json:"value"`
	Zone      ShippingZone `gorm:"type:varchar(20);not null;default:'outside_dhaka'" json:"zone"`
	SortOrder int          `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type BannedIP struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	IP        string    `gorm:"type:varchar(45);uniqueIndex;not null" json:"ip"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Setting is a single key/value configuration override. Absent keys fall
// back to compiled-in defaults.
type Setting struct {
	Key       string    `gorm:"type:varchar(64);primaryKey" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"slug"`
	Price     float64   `gorm:"not null" json:"price"`
	SalePrice *float64  `json:"sale_price,omitempty"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	ImageURL  string    `json:"image_url"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectivePrice is the sale price when one is set, the base price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice != nil && *p.SalePrice > 0 {
		return *p.SalePrice
	}
	return p.Price
}

// Order snapshots everything needed to fulfil a checkout: contact info,
// resolved shipping, applied discount and per-item prices at purchase time.
type Order struct {
	ID            uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber   string        `gorm:"type:varchar(20);uniqueIndex;not null" json:"order_number"`
	CustomerName  string        `gorm:"not null" json:"customer_name"`
	Phone         string        `gorm:"not null" json:"phone"`
	Address       string        `gorm:"not null" json:"address"`
	City          string        `gorm:"not null" json:"city"`
	Zone          ShippingZone  `gorm:"type:varchar(20);not null" json:"zone"`
	CustomerIP    string        `json:"customer_ip"`
	Subtotal      float64       `gorm:"not null" json:"subtotal"`
	ShippingCost  float64       `gorm:"not null" json:"shipping_cost"`
	Discount      float64       `gorm:"not null;default:0" json:"discount"`
	Total         float64       `gorm:"not null" json:"total"`
	CouponCode    *string       `json:"coupon_code,omitempty"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(10);not null" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(10);not null;default:'pending'" json:"payment_status"`
	TrxID         *string       `json:"trx_id,omitempty"`
	Status        OrderStatus   `gorm:"type:varchar(12);not null;default:'pending'" json:"status"`
	Items         []OrderItem   `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// OrderItem is immutable after creation.
type OrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID     uuid.UUID `gorm:"type:uuid;index;not null" json:"order_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	ProductName string    `gorm:"not null" json:"product_name"`
	Color       *string   `json:"color,omitempty"`
	Size        *string   `json:"size,omitempty"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   float64   `gorm:"not null" json:"unit_price"`
	CreatedAt   time.Time `json:"created_at"`
}
