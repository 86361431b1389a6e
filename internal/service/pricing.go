package service

import (
	"math"

	"github.com/snackforest/shop-service/internal/errs"
	"github.com/snackforest/shop-service/internal/models"
)

// ComputeOrderTotal sums quantity times unit price across resolved lines.
// All arithmetic is int64 in the currency's minor unit; overflow is rejected
// rather than wrapped.
func ComputeOrderTotal(lines []models.ResolvedLine) (int64, error) {
	var total int64
	for _, line := range lines {
		if line.Quantity <= 0 {
			return 0, errs.NewValidationError("items", "quantity must be positive")
		}
		if line.UnitPrice < 0 {
			return 0, errs.NewValidationError("items", "unit price cannot be negative")
		}

		if line.UnitPrice > 0 && line.Quantity > math.MaxInt64/line.UnitPrice {
			return 0, errs.NewValidationError("items", "order total overflows")
		}
		lineTotal := line.Quantity * line.UnitPrice

		if total > math.MaxInt64-lineTotal {
			return 0, errs.NewValidationError("items", "order total overflows")
		}
		total += lineTotal
	}
	return total, nil
}
