package handlers

import (
	"github.com/snackforest/shop-service/internal/models"
)

// orderRequest accepts the heterogeneous payload shapes clients send for
// order submission. Aliased fields are reconciled here so everything past
// the handler works on one canonical type.
type orderRequest struct {
	CustomerID       int64           `json:"customerId"`
	ShippingMethod   string          `json:"shippingMethod"`
	PaymentMethod    string          `json:"paymentMethod"`
	RecipientName    string          `json:"recipientName"`
	RecipientAddress string          `json:"recipientAddress"`
	RecipientPhone   string          `json:"recipientPhone"`
	Items            []orderItemJSON `json:"items"`
}

// orderItemJSON tolerates both key spellings seen in the wild: id/productId,
// quantity/qty and price/unitPrice.
type orderItemJSON struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
	Qty       int64 `json:"qty"`
	Price     int64 `json:"price"`
	UnitPrice int64 `json:"unitPrice"`
}

// normalize flattens the aliased fields into canonical line items. Quantity
// defaults to 1 when both spellings are absent. The client price is carried
// along but never trusted for totals.
func (r *orderRequest) normalize() *models.CreateOrderRequest {
	items := make([]models.LineItem, 0, len(r.Items))
	for _, raw := range r.Items {
		item := models.LineItem{
			ProductID: raw.ProductID,
			Quantity:  raw.Quantity,
			UnitPrice: raw.UnitPrice,
		}
		if item.ProductID == 0 {
			item.ProductID = raw.ID
		}
		if item.Quantity == 0 {
			item.Quantity = raw.Qty
		}
		if item.Quantity == 0 {
			item.Quantity = 1
		}
		if item.UnitPrice == 0 {
			item.UnitPrice = raw.Price
		}
		items = append(items, item)
	}

	return &models.CreateOrderRequest{
		CustomerID:       r.CustomerID,
		ShippingMethod:   r.ShippingMethod,
		PaymentMethod:    r.PaymentMethod,
		RecipientName:    r.RecipientName,
		RecipientAddress: r.RecipientAddress,
		RecipientPhone:   r.RecipientPhone,
		Items:            items,
	}
}
