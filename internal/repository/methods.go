package repository

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/snackforest/shop-service/internal/errs"
	"github.com/snackforest/shop-service/internal/models"
)

// MethodRepository serves the static shipping and payment method tables.
type MethodRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewMethodRepository(db *sql.DB, logger *zap.Logger) *MethodRepository {
	return &MethodRepository{db: db, logger: logger.With(zap.String("component", "method-repository"))}
}

// ListShippingMethods returns all shipping methods.
func (r *MethodRepository) ListShippingMethods(ctx context.Context) ([]*models.Method, error) {
	return r.list(ctx, `SELECT id, name FROM shipping_methods ORDER BY id`)
}

// ListPaymentMethods returns all payment methods.
func (r *MethodRepository) ListPaymentMethods(ctx context.Context) ([]*models.Method, error) {
	return r.list(ctx, `SELECT id, name FROM payment_methods ORDER BY id`)
}

func (r *MethodRepository) list(ctx context.Context, query string) ([]*models.Method, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errs.NewPersistenceError("failed to list methods", err)
	}
	defer rows.Close()

	methods := make([]*models.Method, 0)
	for rows.Next() {
		var method models.Method
		if err := rows.Scan(&method.ID, &method.Name); err != nil {
			return nil, errs.NewPersistenceError("failed to scan method", err)
		}
		methods = append(methods, &method)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("failed to list methods", err)
	}

	return methods, nil
}
