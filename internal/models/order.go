package models

import "time"

// Order statuses. The admin workflow treats status as a free-form label; these
// are the values the service writes itself.
const (
	OrderStatusPending = "Pending"
)

// Order is an order header with its nested line items as returned by the
// admin listing.
type Order struct {
	ID               int64         `json:"id"`
	CustomerID       int64         `json:"customerId"`
	CustomerName     string        `json:"customerName"`
	OrderDate        time.Time     `json:"orderDate"`
	TotalAmount      int64         `json:"totalAmount"`
	Status           string        `json:"status"`
	ShippingMethod   string        `json:"shippingMethod"`
	PaymentMethod    string        `json:"paymentMethod"`
	RecipientName    string        `json:"recipientName"`
	RecipientAddress string        `json:"recipientAddress"`
	RecipientPhone   string        `json:"recipientPhone"`
	Details          []OrderDetail `json:"details"`
}

// OrderDetail is the immutable audit record of one line item. PriceAtPurchase
// is the catalog price at the moment the order was placed, decoupled from
// later price changes.
type OrderDetail struct {
	OrderID         int64  `json:"-"`
	ProductID       int64  `json:"-"`
	ProductName     string `json:"productName"`
	Quantity        int64  `json:"quantity"`
	PriceAtPurchase int64  `json:"priceAtTimeOfPurchase"`
}

// LineItem is a canonical cart entry after the request shim has normalized
// the client payload. UnitPrice is the client's declared price; it is kept
// for diagnostics only and never used for total computation.
type LineItem struct {
	ProductID int64
	Quantity  int64
	UnitPrice int64
}

// CreateOrderRequest is a validated order submission.
type CreateOrderRequest struct {
	CustomerID       int64
	ShippingMethod   string
	PaymentMethod    string
	RecipientName    string
	RecipientAddress string
	RecipientPhone   string
	Items            []LineItem
}

// ResolvedLine pairs a line item with its catalog-resolved price and name.
type ResolvedLine struct {
	ProductID   int64
	ProductName string
	Quantity    int64
	UnitPrice   int64
}
