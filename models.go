package storefront

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Category is a catalog grouping as served by the backend.
type Category struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Product is a catalog item as served by the backend. Prices arrive as
// decimal numbers; DiscountPrice is zero when no discount applies.
type Product struct {
	ID            int64      `json:"id,omitempty"`
	Name          string     `json:"name,omitempty"`
	Description   string     `json:"description,omitempty"`
	SKU           string     `json:"sku,omitempty"`
	Price         float64    `json:"price,omitempty"`
	DiscountPrice float64    `json:"discountPrice,omitempty"`
	StockQuantity int        `json:"stockQuantity,omitempty"`
	Active        bool       `json:"active,omitempty"`
	ImageURLs     []string   `json:"imageUrls,omitempty"`
	Category      *Category  `json:"category,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// UnitPrice is the price a cart line should carry: the discount price when
// one is set, the list price otherwise.
func (p Product) UnitPrice() float64 {
	if p.DiscountPrice > 0 {
		return p.DiscountPrice
	}
	return p.Price
}

// OrderStatus is the backend order lifecycle value.
type OrderStatus = string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// OrderItem is a line of a placed order as echoed back by the backend.
type OrderItem struct {
	ProductID int64   `json:"productId,omitempty"`
	Name      string  `json:"name,omitempty"`
	UnitPrice float64 `json:"unitPrice,omitempty"`
	Quantity  int     `json:"quantity,omitempty"`
}

// Order is an order record as served by the backend. CreatedAt is RFC3339 on
// the wire; the client does not tolerate alternate encodings.
type Order struct {
	ID              int64       `json:"id,omitempty"`
	TotalAmount     float64     `json:"totalAmount,omitempty"`
	ShippingAddress string      `json:"shippingAddress,omitempty"`
	PaymentMethod   string      `json:"paymentMethod,omitempty"`
	Status          OrderStatus `json:"status,omitempty"`
	Items           []OrderItem `json:"items,omitempty"`
	CreatedAt       *time.Time  `json:"createdAt,omitempty"`
}

// OrderItemRequest references a product and quantity inside an OrderRequest.
type OrderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// OrderRequest is the submission payload built from a cart snapshot. It is
// constructed once at submit time and never mutated afterward.
type OrderRequest struct {
	ShippingAddress string             `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	Items           []OrderItemRequest `json:"items"`
}

// Notification is an admin-facing backend event.
type Notification struct {
	ID        int64      `json:"id,omitempty"`
	Message   string     `json:"message,omitempty"`
	Type      string     `json:"type,omitempty"`
	Read      bool       `json:"read,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalProducts       int64   `json:"totalProducts,omitempty"`
	TotalCategories     int64   `json:"totalCategories,omitempty"`
	TotalInventoryValue float64 `json:"totalInventoryValue,omitempty"`
	TotalOrders         int64   `json:"totalOrders,omitempty"`
}

// CartLineRecord is the persisted shape of a cart line. Position keeps the
// display order stable across restarts.
type CartLineRecord struct {
	bun.BaseModel `bun:"table:cart_lines,alias:cln"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	ProductID     int64      `bun:"product_id,notnull,unique" json:"product_id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	UnitPrice     float64    `bun:"unit_price,notnull" json:"unit_price,omitempty"`
	Quantity      int        `bun:"quantity,notnull" json:"quantity,omitempty"`
	ImageRef      string     `bun:"image_ref" json:"image_ref,omitempty"`
	Position      int        `bun:"position,notnull" json:"position,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// TokenRecord is the persisted bearer token. The store keeps at most one
// row per scope; the default scope models a single browser profile.
type TokenRecord struct {
	bun.BaseModel `bun:"table:auth_tokens,alias:tok"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Scope         string     `bun:"scope,notnull,unique" json:"scope,omitempty"`
	Token         string     `bun:"token,notnull" json:"token,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
