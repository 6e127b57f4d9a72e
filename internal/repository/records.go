package repository

import (
	"context"
	"encoding/json"
	"errors"

	"tg-dating-backend/internal/kv"

	"github.com/rs/zerolog/log"
)

// Keys of the records kept in the medium
const (
	KeyProfile       = "profile"
	KeyCandidates    = "candidates"
	KeyMatches       = "matches"
	KeyMessages      = "messages"
	KeySchemaVersion = "schema_version"
)

// SchemaVersion is the layout version written at bootstrap
const SchemaVersion = 1

// load decodes the record under key. Missing, unreadable or malformed records
// yield fallback; medium failures never reach the caller.
func load[T any](ctx context.Context, medium kv.Medium, key string, fallback T) T {
	raw, err := medium.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Warn().Err(err).Str("key", key).Msg("Failed to read record, using fallback")
		}
		return fallback
	}
	if len(raw) == 0 {
		return fallback
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to decode record, using fallback")
		return fallback
	}
	return value
}

// store encodes value under key. Failures are logged and dropped.
func store(ctx context.Context, medium kv.Medium, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to encode record, write skipped")
		return
	}
	if err := medium.Set(ctx, key, raw); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to write record, write skipped")
	}
}

// Reset removes every record owned by the simulation
func Reset(ctx context.Context, medium kv.Medium) error {
	for _, key := range []string{KeyProfile, KeyCandidates, KeyMatches, KeyMessages, KeySchemaVersion} {
		if err := medium.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
