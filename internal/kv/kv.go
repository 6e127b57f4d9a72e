// Package kv provides the key-value medium the dating simulation persists into.
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates the requested key holds no value.
var ErrNotFound = errors.New("key not found")

// Medium is a flat key-value store of serialized records.
type Medium interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options selects and configures a medium.
type Options struct {
	Driver      string
	SQLitePath  string
	PostgresDSN string
}

// Open creates the medium named by opts.Driver.
func Open(ctx context.Context, opts Options) (Medium, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		s, err := OpenSQLite(ctx, opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverPostgres:
		p, err := OpenPostgres(ctx, opts.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
