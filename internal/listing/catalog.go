package listing

import (
	"context"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"inmolista/server/internal/models"
	"inmolista/server/internal/notify"
)

// LoaderFunc fetches the full property collection from the data source.
type LoaderFunc func(ctx context.Context) ([]models.Property, error)

// Catalog owns the loaded property collection and the currently displayed
// view. Every input change (reload, filter edit, sort change) recomputes the
// view synchronously. When an over-narrow price range would empty the view,
// the catalog widens the range once to span the prices of the unfiltered
// collection and recomputes; it never widens twice in a row and never fires
// on an empty collection.
type Catalog struct {
	loader   LoaderFunc
	notifier notify.Notifier
	logger   *logrus.Logger

	loadMu sync.Mutex // serializes reloads; a reload requested mid-flight runs after

	mu      sync.RWMutex
	source  []models.Property
	cfg     FilterConfig
	sortKey SortKey
	view    []models.Property
	widened bool
}

func NewCatalog(loader LoaderFunc, notifier notify.Notifier, logger *logrus.Logger) *Catalog {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Catalog{
		loader:   loader,
		notifier: notifier,
		logger:   logger,
		sortKey:  SortRecent,
	}
}

// Reload fetches the collection from the loader and swaps it in. A load
// failure falls back to an empty collection and a warning notification;
// it is never fatal.
func (c *Catalog) Reload(ctx context.Context) {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	props, err := c.loader(ctx)
	if err != nil {
		c.logger.WithError(err).Error("Failed to load properties")
		c.notifier.Notify(notify.Warning, "No se pudieron cargar las propiedades")
		props = nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.source = props
	c.recomputeLocked()
}

// SetFilters replaces the filter configuration wholesale.
func (c *Catalog) SetFilters(cfg FilterConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg
	c.recomputeLocked()
}

// SetSort changes the sort key.
func (c *Catalog) SetSort(key SortKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortKey = key
	c.recomputeLocked()
}

// View returns a copy of the currently displayed subset, in order.
func (c *Catalog) View() []models.Property {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Property, len(c.view))
	copy(out, c.view)
	return out
}

// Config returns the effective filter configuration, including a price
// range replaced by the auto-widen fallback.
func (c *Catalog) Config() FilterConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// Widened reports whether the last recomputation fell back to the widened
// price range.
func (c *Catalog) Widened() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.widened
}

// SourceLen returns the size of the unfiltered collection.
func (c *Catalog) SourceLen() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.source)
}

func (c *Catalog) recomputeLocked() {
	c.widened = false
	c.view = Apply(c.source, c.cfg, c.sortKey)
	if len(c.view) > 0 || len(c.source) == 0 {
		return
	}

	lo, hi, ok := WidenedRange(c.source)
	if !ok {
		return
	}

	c.logger.WithFields(logrus.Fields{
		"price_min": lo,
		"price_max": hi,
	}).Info("Price range emptied the view, widening")

	c.cfg.PriceMin = lo
	c.cfg.PriceMax = hi
	c.widened = true
	// One shot: if the corrected range still yields nothing, leave it empty.
	c.view = Apply(c.source, c.cfg, c.sortKey)
}
