package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/snackforest/shop-service/internal/errs"
	"github.com/snackforest/shop-service/internal/models"
)

// ProductRepository provides catalog access over PostgreSQL.
type ProductRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewProductRepository(db *sql.DB, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{db: db, logger: logger.With(zap.String("component", "product-repository"))}
}

const productColumns = `
	p.id, p.name, p.price, COALESCE(p.category_id, 0), COALESCE(c.name, ''),
	p.introduction, p.origin, p.production_date, p.expiry_date, p.image_urls
`

// List returns every product with its category name joined in.
func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		ORDER BY p.id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errs.NewPersistenceError("failed to list products", err)
	}
	defer rows.Close()

	products := make([]*models.Product, 0)
	for rows.Next() {
		product, err := r.scanProduct(rows)
		if err != nil {
			return nil, errs.NewPersistenceError("failed to scan product", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("failed to list products", err)
	}

	return products, nil
}

// GetByID retrieves a single product.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	r.logger.Debug("fetching product", zap.Int64("product_id", id))

	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1
	`

	product, err := r.scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errs.NewNotFoundError("product")
	}
	if err != nil {
		r.logger.Error("failed to fetch product", zap.Int64("product_id", id), zap.Error(err))
		return nil, errs.NewPersistenceError("failed to fetch product", err)
	}

	return product, nil
}

// Create inserts a product and returns its generated id.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) (int64, error) {
	imagesJSON, err := json.Marshal(p.ImageURLs)
	if err != nil {
		return 0, errs.NewPersistenceError("failed to encode image urls", err)
	}

	query := `
		INSERT INTO products (name, price, category_id, introduction, origin, production_date, expiry_date, image_urls)
		VALUES ($1, $2, NULLIF($3, 0), $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err = r.db.QueryRowContext(ctx, query,
		p.Name, p.Price, p.CategoryID,
		p.Introduction, p.Origin, p.ProductionDate, p.ExpiryDate,
		string(imagesJSON),
	).Scan(&id)
	if err != nil {
		r.logger.Error("failed to create product", zap.String("name", p.Name), zap.Error(err))
		return 0, errs.NewPersistenceError("failed to create product", err)
	}

	r.logger.Info("product created", zap.Int64("product_id", id), zap.String("name", p.Name))
	return id, nil
}

// Update replaces a product's mutable fields.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	imagesJSON, err := json.Marshal(p.ImageURLs)
	if err != nil {
		return errs.NewPersistenceError("failed to encode image urls", err)
	}

	query := `
		UPDATE products
		SET name = $2, price = $3, category_id = NULLIF($4, 0),
		    introduction = $5, origin = $6, production_date = $7, expiry_date = $8,
		    image_urls = $9
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Price, p.CategoryID,
		p.Introduction, p.Origin, p.ProductionDate, p.ExpiryDate,
		string(imagesJSON),
	)
	if err != nil {
		r.logger.Error("failed to update product", zap.Int64("product_id", p.ID), zap.Error(err))
		return errs.NewPersistenceError("failed to update product", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errs.NewNotFoundError("product")
	}
	return nil
}

// Delete removes a product.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("failed to delete product", zap.Int64("product_id", id), zap.Error(err))
		return errs.NewPersistenceError("failed to delete product", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errs.NewNotFoundError("product")
	}

	r.logger.Info("product deleted", zap.Int64("product_id", id))
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *ProductRepository) scanProduct(row rowScanner) (*models.Product, error) {
	var product models.Product
	var imagesJSON string

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.CategoryID,
		&product.CategoryName,
		&product.Introduction,
		&product.Origin,
		&product.ProductionDate,
		&product.ExpiryDate,
		&imagesJSON,
	)
	if err != nil {
		return nil, err
	}

	product.ImageURLs = decodeImageURLs(imagesJSON)
	return &product, nil
}

// decodeImageURLs tolerates the legacy formats seen in the image_urls column:
// a JSON array, a bare URL, or an empty string.
func decodeImageURLs(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var urls []string
	if err := json.Unmarshal([]byte(raw), &urls); err != nil {
		return []string{raw}
	}
	if urls == nil {
		return []string{}
	}
	return urls
}
