package mealdb

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/tastebite/platform/internal/domain/recipe"
	"github.com/tastebite/platform/internal/ports/outbound"
)

// Loader serializes catalog list fetches for one consumer, e.g. a browse
// screen where each keystroke supersedes the previous query. Every call
// bumps a generation counter; a response whose generation is no longer
// current is discarded so a slow early request can never overwrite the
// result of a later one.
type Loader struct {
	client     outbound.CatalogClient
	generation atomic.Uint64
	logger     *zap.Logger
}

// ErrSuperseded is returned when a newer fetch was started before this
// one completed.
var ErrSuperseded = errSuperseded{}

type errSuperseded struct{}

func (errSuperseded) Error() string { return "catalog fetch superseded by a newer request" }

// NewLoader creates a loader over a catalog client.
func NewLoader(client outbound.CatalogClient, logger *zap.Logger) *Loader {
	return &Loader{
		client: client,
		logger: logger.Named("catalog-loader"),
	}
}

// Load runs one list fetch. If another Load starts while this one is in
// flight, the slower result is dropped and ErrSuperseded returned.
func (l *Loader) Load(ctx context.Context, fetch func(ctx context.Context, c outbound.CatalogClient) ([]recipe.Summary, error)) ([]recipe.Summary, error) {
	gen := l.generation.Add(1)

	summaries, err := fetch(ctx, l.client)
	if l.generation.Load() != gen {
		l.logger.Debug("Discarding stale catalog response", zap.Uint64("generation", gen))
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// Invalidate bumps the generation so any in-flight fetch is discarded.
func (l *Loader) Invalidate() {
	l.generation.Add(1)
}
