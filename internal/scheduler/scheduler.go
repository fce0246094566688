package scheduler

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"inmolista/server/internal/listing"
)

// Scheduler refreshes the in-memory catalog from the store on an interval,
// so ingested listings become visible without a manual reload.
type Scheduler struct {
	catalog  *listing.Catalog
	logger   *logrus.Logger
	interval time.Duration
	stopChan chan struct{}
	wg       sync.WaitGroup
	jobMutex sync.Mutex // Ensures sequential job execution
}

// NewScheduler creates a new scheduler.
func NewScheduler(catalog *listing.Catalog, logger *logrus.Logger, interval time.Duration) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Scheduler{
		catalog:  catalog,
		logger:   logger,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the scheduled refreshes.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	// Run the startup refresh in a separate goroutine
	go func() {
		s.jobMutex.Lock()
		defer s.jobMutex.Unlock()
		s.logger.Info("Running startup catalog refresh")
		s.refresh()
		s.logger.Info("Startup catalog refresh completed")
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.jobMutex.Lock()
			s.logger.Debug("Starting scheduled catalog refresh")
			s.refresh()
			s.jobMutex.Unlock()
		}
	}
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.catalog.Reload(ctx)
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}
