package kv

import "context"

type prefixed struct {
	inner  Medium
	prefix string
}

// Prefixed scopes every key of inner under prefix. Closing the result does
// not close inner.
func Prefixed(inner Medium, prefix string) Medium {
	return &prefixed{inner: inner, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.inner.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.inner.Delete(ctx, p.prefix+key)
}

func (p *prefixed) Close() error {
	return nil
}
