package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

type PaymentStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// OrderItem is an immutable snapshot taken at order creation. Title and image
// are copied from the cart line so later catalog changes never rewrite
// history. Items are never updated after the order is created.
type OrderItem struct {
	ID           uuid.UUID `json:"id"`
	OrderID      uuid.UUID `json:"order_id"`
	ProductID    int64     `json:"product_id" validate:"required"`
	Quantity     int       `json:"quantity" validate:"required,min=1"`
	Price        float64   `json:"price" validate:"required,gt=0"`
	ProductTitle string    `json:"product_title"`
	ProductImage string    `json:"product_image"`
	CreatedAt    time.Time `json:"created_at"`
}

type Order struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"user_id"`
	Total           float64       `json:"total"`
	Shipping        float64       `json:"shipping"`
	Tax             float64       `json:"tax"`
	FinalTotal      float64       `json:"final_total"`
	Status          OrderStatus   `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	ShippingAddress string        `json:"shipping_address"`
	PaymentMethod   string        `json:"payment_method"`
	Items           []OrderItem   `json:"items"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type CreateOrderItem struct {
	ProductID    int64   `json:"product_id" validate:"required"`
	Quantity     int     `json:"quantity" validate:"required,min=1"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	ProductTitle string  `json:"product_title"`
	ProductImage string  `json:"product_image"`
}

type CreateOrderRequest struct {
	Items           []CreateOrderItem `json:"items" validate:"required,min=1,dive"`
	Total           float64           `json:"total" validate:"required,gt=0"`
	ShippingAddress string            `json:"shipping_address" validate:"required"`
	PaymentMethod   string            `json:"payment_method" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

type OrderResponse struct {
	Order *Order `json:"order"`
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
}
