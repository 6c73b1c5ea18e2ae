package domain

import "time"

// Order statuses as the backend reports them. Only pending orders may be
// cancelled by their owner.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

type Order struct {
	ID              int64         `json:"id"`
	OrderDate       time.Time     `json:"orderDate"`
	Status          string        `json:"status"`
	TotalAmount     int64         `json:"totalAmount"`
	ShippingAddress string        `json:"shippingAddress"`
	OrderDetails    []OrderDetail `json:"orderDetails,omitempty"`
	UserID          int64         `json:"userId,omitempty"`
	Username        string        `json:"username,omitempty"`
}

type OrderDetail struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

// CreateOrderRequest is the payload of POST /api/orders. Prices and names are
// deliberately absent: the backend prices line items at order time.
type CreateOrderRequest struct {
	ShippingAddress string      `json:"shippingAddress"`
	Items           []OrderItem `json:"items"`
}

type OrderItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}
