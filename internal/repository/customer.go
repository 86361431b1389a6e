package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/snackforest/shop-service/internal/errs"
	"github.com/snackforest/shop-service/internal/models"
)

// uniqueViolation is the PostgreSQL error code for unique constraint failures.
const uniqueViolation = "23505"

// CustomerRepository provides customer access over PostgreSQL.
type CustomerRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewCustomerRepository(db *sql.DB, logger *zap.Logger) *CustomerRepository {
	return &CustomerRepository{db: db, logger: logger.With(zap.String("component", "customer-repository"))}
}

// GetByAccount looks a customer up by their unique account, including the
// stored password hash and salt for verification.
func (r *CustomerRepository) GetByAccount(ctx context.Context, account string) (*models.Customer, error) {
	query := `
		SELECT id, name, account, email, phone, password_hash, salt
		FROM customers
		WHERE account = $1
	`

	var customer models.Customer
	err := r.db.QueryRowContext(ctx, query, account).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Account,
		&customer.Email,
		&customer.Phone,
		&customer.PasswordHash,
		&customer.Salt,
	)
	if err == sql.ErrNoRows {
		return nil, errs.NewNotFoundError("customer")
	}
	if err != nil {
		r.logger.Error("failed to fetch customer", zap.String("account", account), zap.Error(err))
		return nil, errs.NewPersistenceError("failed to fetch customer", err)
	}

	return &customer, nil
}

// GetByID retrieves a customer by primary key.
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	query := `
		SELECT id, name, account, email, phone, password_hash, salt
		FROM customers
		WHERE id = $1
	`

	var customer models.Customer
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Account,
		&customer.Email,
		&customer.Phone,
		&customer.PasswordHash,
		&customer.Salt,
	)
	if err == sql.ErrNoRows {
		return nil, errs.NewNotFoundError("customer")
	}
	if err != nil {
		return nil, errs.NewPersistenceError("failed to fetch customer", err)
	}

	return &customer, nil
}

// Create inserts a new customer. A duplicate account surfaces as a conflict
// error so the handler can answer 409.
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) (int64, error) {
	query := `
		INSERT INTO customers (name, account, email, phone, password_hash, salt)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		customer.Name,
		customer.Account,
		customer.Email,
		customer.Phone,
		customer.PasswordHash,
		customer.Salt,
	).Scan(&id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return 0, errs.NewConflictError("account", "account already exists")
		}
		r.logger.Error("failed to create customer", zap.String("account", customer.Account), zap.Error(err))
		return 0, errs.NewPersistenceError("failed to create customer", err)
	}

	r.logger.Info("customer registered", zap.Int64("customer_id", id), zap.String("account", customer.Account))
	return id, nil
}

// Update persists a customer's profile fields and credentials.
func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, password_hash = $5, salt = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.PasswordHash,
		customer.Salt,
	)
	if err != nil {
		return errs.NewPersistenceError("failed to update customer", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errs.NewNotFoundError("customer")
	}
	return nil
}
