package repository

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/snackforest/shop-service/internal/errs"
	"github.com/snackforest/shop-service/internal/models"
)

// CategoryRepository provides category access over PostgreSQL.
type CategoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewCategoryRepository(db *sql.DB, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{db: db, logger: logger.With(zap.String("component", "category-repository"))}
}

// List returns all categories.
func (r *CategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, errs.NewPersistenceError("failed to list categories", err)
	}
	defer rows.Close()

	categories := make([]*models.Category, 0)
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, errs.NewPersistenceError("failed to scan category", err)
		}
		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("failed to list categories", err)
	}

	return categories, nil
}

// Create inserts a category and returns its generated id.
func (r *CategoryRepository) Create(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `INSERT INTO categories (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err != nil {
		r.logger.Error("failed to create category", zap.String("name", name), zap.Error(err))
		return 0, errs.NewPersistenceError("failed to create category", err)
	}

	r.logger.Info("category created", zap.Int64("category_id", id), zap.String("name", name))
	return id, nil
}

// Update renames a category.
func (r *CategoryRepository) Update(ctx context.Context, id int64, name string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE categories SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return errs.NewPersistenceError("failed to update category", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errs.NewNotFoundError("category")
	}
	return nil
}

// Delete removes a category. Referencing products get a NULL category_id and
// the catalog join falls back to an empty category name.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return errs.NewPersistenceError("failed to delete category", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errs.NewNotFoundError("category")
	}
	return nil
}
