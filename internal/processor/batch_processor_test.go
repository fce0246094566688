package processor

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"inmolista/server/config"
	"inmolista/server/internal/database"
	"inmolista/server/internal/models"
	"inmolista/server/internal/queue"
)

func newProcessorTestDB(t *testing.T) (*database.Database, *gorm.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := database.NewDatabase(path)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)

	return db, gormDB
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.BatchProcessing.ProcessorCount = 1
	cfg.BatchProcessing.MaxRetries = 1
	cfg.BatchProcessing.RetryDelay = 0
	return cfg
}

func TestBatchProcessor_ProcessBatch(t *testing.T) {
	db, gormDB := newProcessorTestDB(t)
	q := queue.NewIngestQueue(10, logrus.New())
	p := NewBatchProcessor(gormDB, q, testConfig(), logrus.New())

	batch := []*models.Property{
		{ID: "b1", Title: "Casa uno", Price: 100, CreatedAt: time.Now()},
		{ID: "b2", Title: "Casa dos", Price: 200, CreatedAt: time.Now()},
	}

	require.NoError(t, p.processBatch(batch))

	all, err := db.GetAllProperties()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBatchProcessor_RetriesThenFails(t *testing.T) {
	_, gormDB := newProcessorTestDB(t)
	q := queue.NewIngestQueue(10, logrus.New())
	p := NewBatchProcessor(gormDB, q, testConfig(), logrus.New())

	// Break the target table so every attempt fails.
	require.NoError(t, gormDB.Exec("DROP TABLE properties").Error)

	batch := []*models.Property{{ID: "b1", Title: "Casa", CreatedAt: time.Now()}}
	err := p.processBatch(batch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to process batch after 1 attempts")
}

func TestBatchProcessor_DrainsQueue(t *testing.T) {
	db, gormDB := newProcessorTestDB(t)
	q := queue.NewIngestQueue(10, logrus.New())
	q.Start()
	t.Cleanup(func() { q.Close() })

	p := NewBatchProcessor(gormDB, q, testConfig(), logrus.New())
	p.Start()
	t.Cleanup(p.Stop)

	batch := []*models.Property{{ID: "b1", Title: "Casa", Price: 100, CreatedAt: time.Now()}}
	require.NoError(t, q.Push(batch))

	// Give the pipeline time to process
	time.Sleep(200 * time.Millisecond)

	all, err := db.GetAllProperties()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
