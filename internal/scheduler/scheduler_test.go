package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"inmolista/server/internal/listing"
	"inmolista/server/internal/models"
	"inmolista/server/internal/notify"
)

func TestScheduler_RefreshesCatalog(t *testing.T) {
	var loads int64
	catalog := listing.NewCatalog(func(ctx context.Context) ([]models.Property, error) {
		atomic.AddInt64(&loads, 1)
		return []models.Property{{ID: "p1", Price: 100}}, nil
	}, notify.NewLogNotifier(logrus.New()), logrus.New())

	s := NewScheduler(catalog, logrus.New(), 20*time.Millisecond)
	s.Start()

	time.Sleep(150 * time.Millisecond)
	s.Stop()

	// startup refresh plus at least one scheduled tick
	assert.GreaterOrEqual(t, atomic.LoadInt64(&loads), int64(2))
	assert.Equal(t, 1, catalog.SourceLen())
}

func TestScheduler_StopIsClean(t *testing.T) {
	catalog := listing.NewCatalog(func(ctx context.Context) ([]models.Property, error) {
		return nil, nil
	}, notify.NewLogNotifier(logrus.New()), logrus.New())

	s := NewScheduler(catalog, logrus.New(), time.Hour)
	s.Start()
	assert.NotPanics(t, s.Stop)
}
