package domain

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type PaymentMethod struct {
	Type  string `json:"type"` // card | paypal | test
	Last4 string `json:"last4,omitempty"`
	Brand string `json:"brand,omitempty"`
}

type Address struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	IsDefault bool   `json:"isDefault"`
}

// Order is a checkout transaction. Items is an immutable snapshot of the
// cart lines at creation time; only Status, TrackingNumber and UpdatedAt
// mutate afterwards.
type Order struct {
	ID                string        `json:"id"`
	UserID            string        `json:"userId"`
	Items             []CartLine    `json:"items"`
	Subtotal          float64       `json:"subtotal"`
	Shipping          float64       `json:"shipping"`
	Tax               float64       `json:"tax"`
	Total             float64       `json:"total"`
	ShippingAddress   Address       `json:"shippingAddress"`
	BillingAddress    *Address      `json:"billingAddress,omitempty"`
	Payment           PaymentMethod `json:"paymentMethod"`
	Status            OrderStatus   `json:"status"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
	TrackingNumber    string        `json:"trackingNumber,omitempty"`
	EstimatedDelivery time.Time     `json:"estimatedDelivery,omitempty"`
}
