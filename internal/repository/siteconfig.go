package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/snackforest/shop-service/internal/errs"
)

// SiteConfigRepository stores the site-configuration document in a single
// Postgres row. The document replaces the JSON side-store file the admin UI
// used to edit, so config writes share the database's durability.
type SiteConfigRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewSiteConfigRepository(db *sql.DB, logger *zap.Logger) *SiteConfigRepository {
	return &SiteConfigRepository{db: db, logger: logger.With(zap.String("component", "siteconfig-repository"))}
}

// Get returns the current configuration document. An absent row yields an
// empty object.
func (r *SiteConfigRepository) Get(ctx context.Context) (json.RawMessage, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM site_config WHERE id = 1`).Scan(&data)
	if err == sql.ErrNoRows {
		return json.RawMessage("{}"), nil
	}
	if err != nil {
		return nil, errs.NewPersistenceError("failed to read site config", err)
	}
	return json.RawMessage(data), nil
}

// Put replaces the configuration document.
func (r *SiteConfigRepository) Put(ctx context.Context, data json.RawMessage) error {
	query := `
		INSERT INTO site_config (id, data, updated_at) VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, []byte(data)); err != nil {
		r.logger.Error("failed to write site config", zap.Error(err))
		return errs.NewPersistenceError("failed to write site config", err)
	}

	r.logger.Info("site config updated")
	return nil
}
