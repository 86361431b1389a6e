package service

import (
	"github.com/snackforest/shop-service/internal/errs"
	"github.com/snackforest/shop-service/internal/models"
)

// ValidateCreateOrderRequest checks the structural constraints of a cart
// before any price lookup or write happens. Pure validation, no side effects.
func ValidateCreateOrderRequest(req *models.CreateOrderRequest) error {
	if len(req.Items) == 0 {
		return errs.NewValidationError("items", "at least one item is required")
	}

	for _, item := range req.Items {
		if err := validateLineItem(&item); err != nil {
			return err
		}
	}

	return nil
}

func validateLineItem(item *models.LineItem) error {
	if item.ProductID <= 0 {
		return errs.NewValidationError("items", "each item must include a product id")
	}

	if item.Quantity <= 0 {
		return errs.NewValidationError("items", "quantity must be positive")
	}

	return nil
}

// ValidateStatusUpdate checks an order-status label. No transition set is
// enforced; status is a free-form non-empty label.
func ValidateStatusUpdate(status string) error {
	if status == "" {
		return errs.NewValidationError("status", "status is required")
	}
	return nil
}
