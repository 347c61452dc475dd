// Package exception is the store's error-reporting collaborator: the place
// recovered predicate/listener panics and loader failures are routed to,
// instead of being thrown back through the store's own API.
package exception

import (
	"context"
	"log/slog"

	"github.com/cakecache/cake/attribute"
)

// Service receives the store's non-fatal and fatal diagnostics. Fatal is
// for policy contract violations the store cannot recover from on its own
// (the store still poisons itself; Fatal is only the notification), and for
// a panicking IsCacheable predicate, which is treated as "not cacheable"
// without poisoning. Warning is for recovered listener panics and for an
// evictor that made no progress. LoadFailed lets the caller
// substitute a value for a failed loader invocation instead of propagating
// the error.
type Service[K comparable, V any] interface {
	Fatal(msg string, cause error)
	Warning(msg string, cause error)
	LoadFailed(ctx context.Context, cause error, key K, attrs *attribute.Map) (V, error)
}

// DefaultService logs via log/slog and never substitutes a value for a
// failed load — LoadFailed always propagates cause unchanged.
type DefaultService[K comparable, V any] struct {
	Logger *slog.Logger
}

// NewDefaultService constructs a DefaultService. A nil logger falls back to
// slog.Default().
func NewDefaultService[K comparable, V any](logger *slog.Logger) *DefaultService[K, V] {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultService[K, V]{Logger: logger}
}

func (s *DefaultService[K, V]) Fatal(msg string, cause error) {
	s.Logger.Error(msg, "error", cause)
}

func (s *DefaultService[K, V]) Warning(msg string, cause error) {
	s.Logger.Warn(msg, "error", cause)
}

func (s *DefaultService[K, V]) LoadFailed(_ context.Context, cause error, key K, _ *attribute.Map) (V, error) {
	var zero V
	s.Logger.Warn("load failed", "key", key, "error", cause)
	return zero, cause
}

var _ Service[string, int] = (*DefaultService[string, int])(nil)
