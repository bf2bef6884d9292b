package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/dailyglow/glow/internal/catalog"
	"github.com/dailyglow/glow/internal/logger"
	"github.com/dailyglow/glow/internal/selection"
	"github.com/dailyglow/glow/internal/sources/library"
)

// LibraryReloader handles periodic reloading of the affirmation library.
// With no library file configured it installs the builtin set once and the
// periodic reload becomes a no-op refresh of the same data.
type LibraryReloader struct {
	loader        *library.Loader
	mapper        *library.Mapper
	index         *catalog.Index
	selection     *selection.Service
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewLibraryReloader creates a new library reloader. libraryFile may be
// empty, in which case the builtin set is used. sel may be nil when no
// selection state needs rebinding after a reload.
func NewLibraryReloader(
	libraryFile string,
	idx *catalog.Index,
	sel *selection.Service,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *LibraryReloader {
	var loader *library.Loader
	if libraryFile != "" {
		loader = library.NewLoader(libraryFile)
	}
	return &LibraryReloader{
		loader:        loader,
		mapper:        library.NewMapper(),
		index:         idx,
		selection:     sel,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the library immediately and begins the periodic reload.
func (lr *LibraryReloader) Start(ctx context.Context) error {
	if err := lr.Reload(ctx); err != nil {
		return fmt.Errorf("initial library load failed: %w", err)
	}

	ticker := time.NewTicker(lr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := lr.Reload(ctx); err != nil {
					lr.logger.Error("failed to reload library",
						logger.Error(err))
				}
			case <-lr.manualTrigger:
				lr.logger.Info("manual library reload triggered")
				if err := lr.Reload(ctx); err != nil {
					lr.logger.Error("failed to reload library",
						logger.Error(err))
				}
			case <-lr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader.
func (lr *LibraryReloader) Stop() {
	close(lr.stopCh)
}

// Reload loads affirmations from the configured source and replaces the
// catalog contents. Items keep their derived ids, so persisted decks and
// favorites survive a reload as long as the text does not change. Replace
// installs fresh item pointers, so selection state is rebound afterwards.
func (lr *LibraryReloader) Reload(ctx context.Context) error {
	if lr.loader == nil {
		items := library.Builtin()
		lr.index.Replace(items)
		lr.rebind(ctx)
		lr.logger.Info("builtin affirmation library installed",
			logger.Int("count", len(items)))
		return nil
	}

	lr.logger.Info("reloading affirmation library")

	config, err := lr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load library: %w", err)
	}

	items, err := lr.mapper.MapAffirmations(config)
	if err != nil {
		return fmt.Errorf("failed to map affirmations: %w", err)
	}

	lr.index.Replace(items)
	lr.rebind(ctx)
	lr.logger.Info("affirmation library loaded",
		logger.Int("count", len(items)),
		logger.Int("categories", lr.index.CategoryCount()))
	return nil
}

func (lr *LibraryReloader) rebind(ctx context.Context) {
	if lr.selection != nil {
		lr.selection.OnCatalogReplaced(ctx)
	}
}
