package mealdb

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tastebite/platform/internal/domain/recipe"
	"github.com/tastebite/platform/internal/ports/outbound"
)

// Warmer keeps the hottest catalog queries warm in the cache so browse
// requests rarely pay the upstream round trip. Refreshes run through a
// Loader, so an invalidation or a faster later refresh drops the slower
// in-flight one instead of overwriting it.
type Warmer struct {
	client   outbound.CatalogClient
	loader   *Loader
	interval time.Duration
	logger   *zap.Logger
	done     chan struct{}
}

// NewWarmer creates a warmer over a (typically cached) catalog client.
func NewWarmer(client outbound.CatalogClient, interval time.Duration, logger *zap.Logger) *Warmer {
	return &Warmer{
		client:   client,
		loader:   NewLoader(client, logger),
		interval: interval,
		logger:   logger.Named("catalog-warmer"),
		done:     make(chan struct{}),
	}
}

// Start launches the refresh loop. It returns immediately.
func (w *Warmer) Start(ctx context.Context) {
	go w.run(ctx)
}

// Stop terminates the refresh loop.
func (w *Warmer) Stop() {
	close(w.done)
}

func (w *Warmer) run(ctx context.Context) {
	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.refresh(ctx)
		case <-w.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (w *Warmer) refresh(ctx context.Context) {
	if _, err := w.loader.Load(ctx, func(ctx context.Context, c outbound.CatalogClient) ([]recipe.Summary, error) {
		return c.Search(ctx, "")
	}); err != nil && err != ErrSuperseded {
		w.logger.Warn("Catalog warm-up fetch failed", zap.Error(err))
	}

	if _, err := w.client.Categories(ctx); err != nil {
		w.logger.Warn("Catalog categories warm-up failed", zap.Error(err))
	}
	if _, err := w.client.Areas(ctx); err != nil {
		w.logger.Warn("Catalog areas warm-up failed", zap.Error(err))
	}
}
