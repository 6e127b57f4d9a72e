package repository

import (
	"context"

	"tg-dating-backend/internal/kv"

	"github.com/rs/zerolog/log"
)

// SchemaRepository tracks the layout version of the stored records
type SchemaRepository struct {
	medium kv.Medium
}

// NewSchemaRepository creates a new schema repository
func NewSchemaRepository(medium kv.Medium) *SchemaRepository {
	return &SchemaRepository{medium: medium}
}

// Version returns the stored layout version, 0 when none was written
func (r *SchemaRepository) Version(ctx context.Context) int {
	return load(ctx, r.medium, KeySchemaVersion, 0)
}

// Ensure stamps the current version on a fresh medium and warns when the
// medium was written by a different layout.
func (r *SchemaRepository) Ensure(ctx context.Context) {
	switch v := r.Version(ctx); v {
	case SchemaVersion:
	case 0:
		store(ctx, r.medium, KeySchemaVersion, SchemaVersion)
	default:
		log.Warn().
			Int("stored", v).
			Int("expected", SchemaVersion).
			Msg("Stored records use a different schema version")
	}
}
