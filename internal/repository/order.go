package repository

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/snackforest/shop-service/internal/errs"
	"github.com/snackforest/shop-service/internal/models"
)

// OrderRepository persists and queries orders over PostgreSQL. An order header
// and its detail rows are always written inside one transaction.
type OrderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewOrderRepository(db *sql.DB, logger *zap.Logger) *OrderRepository {
	return &OrderRepository{db: db, logger: logger.With(zap.String("component", "order-repository"))}
}

// Create writes one order header row and one detail row per line as a single
// unit of work. Either all rows commit or none do. Returns the generated
// order id.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order, lines []models.ResolvedLine) (int64, error) {
	r.logger.Debug("creating order",
		zap.Int64("customer_id", order.CustomerID),
		zap.Int("line_count", len(lines)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errs.NewPersistenceError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	headerQuery := `
		INSERT INTO orders (customer_id, total_amount, status, shipping_method, payment_method,
		                    recipient_name, recipient_address, recipient_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var orderID int64
	err = tx.QueryRowContext(ctx, headerQuery,
		order.CustomerID,
		order.TotalAmount,
		order.Status,
		order.ShippingMethod,
		order.PaymentMethod,
		order.RecipientName,
		order.RecipientAddress,
		order.RecipientPhone,
	).Scan(&orderID)
	if err != nil {
		r.logger.Error("failed to insert order header",
			zap.Int64("customer_id", order.CustomerID),
			zap.Error(err),
		)
		return 0, errs.NewPersistenceError("failed to insert order", err)
	}

	detailQuery := `
		INSERT INTO order_details (order_id, product_id, quantity, price_at_purchase)
		VALUES ($1, $2, $3, $4)
	`

	for _, line := range lines {
		if _, err := tx.ExecContext(ctx, detailQuery, orderID, line.ProductID, line.Quantity, line.UnitPrice); err != nil {
			r.logger.Error("failed to insert order detail",
				zap.Int64("order_id", orderID),
				zap.Int64("product_id", line.ProductID),
				zap.Error(err),
			)
			return 0, errs.NewPersistenceError("failed to insert order detail", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errs.NewPersistenceError("failed to commit order", err)
	}

	r.logger.Info("order created",
		zap.Int64("order_id", orderID),
		zap.Int64("total_amount", order.TotalAmount),
	)
	return orderID, nil
}

// List returns all orders, most recent first, with their nested details.
// Headers and details come from two independent queries merged by order id in
// memory; line-item counts are unbounded and a flat multi-way join would
// duplicate header fields per detail row.
func (r *OrderRepository) List(ctx context.Context) ([]*models.Order, error) {
	headerQuery := `
		SELECT o.id, o.customer_id, COALESCE(c.name, ''), o.order_date, o.total_amount, o.status,
		       o.shipping_method, o.payment_method,
		       o.recipient_name, o.recipient_address, o.recipient_phone
		FROM orders o
		JOIN customers c ON o.customer_id = c.id
		ORDER BY o.order_date DESC, o.id DESC
	`

	rows, err := r.db.QueryContext(ctx, headerQuery)
	if err != nil {
		return nil, errs.NewPersistenceError("failed to list orders", err)
	}
	defer rows.Close()

	orders := make([]*models.Order, 0)
	byID := make(map[int64]*models.Order)
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.CustomerName,
			&order.OrderDate,
			&order.TotalAmount,
			&order.Status,
			&order.ShippingMethod,
			&order.PaymentMethod,
			&order.RecipientName,
			&order.RecipientAddress,
			&order.RecipientPhone,
		)
		if err != nil {
			return nil, errs.NewPersistenceError("failed to scan order", err)
		}
		// Keep the admin list readable even for orders written before the
		// recipient fields were made mandatory.
		if order.RecipientName == "" {
			order.RecipientName = order.CustomerName
		}
		order.Details = make([]models.OrderDetail, 0)
		orders = append(orders, &order)
		byID[order.ID] = &order
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("failed to list orders", err)
	}

	detailQuery := `
		SELECT od.order_id, od.product_id, COALESCE(p.name, ''), od.quantity, od.price_at_purchase
		FROM order_details od
		JOIN products p ON od.product_id = p.id
	`

	detailRows, err := r.db.QueryContext(ctx, detailQuery)
	if err != nil {
		return nil, errs.NewPersistenceError("failed to list order details", err)
	}
	defer detailRows.Close()

	for detailRows.Next() {
		var detail models.OrderDetail
		err := detailRows.Scan(
			&detail.OrderID,
			&detail.ProductID,
			&detail.ProductName,
			&detail.Quantity,
			&detail.PriceAtPurchase,
		)
		if err != nil {
			return nil, errs.NewPersistenceError("failed to scan order detail", err)
		}
		if order, ok := byID[detail.OrderID]; ok {
			order.Details = append(order.Details, detail)
		}
	}
	if err := detailRows.Err(); err != nil {
		return nil, errs.NewPersistenceError("failed to list order details", err)
	}

	r.refillBlankRecipients(ctx, orders)

	return orders, nil
}

// refillBlankRecipients re-reads recipient fields for orders where the primary
// read returned blanks. Best effort: failures only log, and a non-blank value
// is never overwritten with a blank one.
func (r *OrderRepository) refillBlankRecipients(ctx context.Context, orders []*models.Order) {
	query := `SELECT recipient_name, recipient_address, recipient_phone FROM orders WHERE id = $1`

	for _, order := range orders {
		if order.RecipientName != "" && order.RecipientAddress != "" && order.RecipientPhone != "" {
			continue
		}

		var name, address, phone string
		if err := r.db.QueryRowContext(ctx, query, order.ID).Scan(&name, &address, &phone); err != nil {
			r.logger.Warn("recipient refill failed", zap.Int64("order_id", order.ID), zap.Error(err))
			continue
		}
		fillRecipient(order, name, address, phone)
	}
}

// fillRecipient copies re-read recipient values into blank fields only.
func fillRecipient(order *models.Order, name, address, phone string) {
	if order.RecipientName == "" && name != "" {
		order.RecipientName = name
	}
	if order.RecipientAddress == "" && address != "" {
		order.RecipientAddress = address
	}
	if order.RecipientPhone == "" && phone != "" {
		order.RecipientPhone = phone
	}
}

// Count returns the total number of orders.
func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return 0, errs.NewPersistenceError("failed to count orders", err)
	}
	return count, nil
}

// UpdateStatus sets an order's status label.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		r.logger.Error("failed to update order status", zap.Int64("order_id", id), zap.Error(err))
		return errs.NewPersistenceError("failed to update order status", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errs.NewNotFoundError("order")
	}

	r.logger.Info("order status updated", zap.Int64("order_id", id), zap.String("status", status))
	return nil
}
