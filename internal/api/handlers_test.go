package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inmolista/server/internal/database"
	"inmolista/server/internal/favorites"
	"inmolista/server/internal/inquiry"
	"inmolista/server/internal/listing"
	"inmolista/server/internal/models"
	"inmolista/server/internal/notify"
	"inmolista/server/internal/queue"
)

type testServer struct {
	router    *gin.Engine
	db        *database.Database
	workspace *inquiry.Workspace
	queue     *queue.IngestQueue
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logrus.New()

	db, err := database.NewDatabase(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	seed := []*models.Property{
		{ID: "p1", Title: "Apartamento moderno en El Poblado", Location: "Medellín",
			Type: models.TypeApartamento, Status: models.StatusDisponible,
			Price: 450000000, Bedrooms: 3, Bathrooms: 2, Area: 95,
			CreatedAt: time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), Views: 10},
		{ID: "p2", Title: "Casa campestre", Location: "Rionegro",
			Type: models.TypeCasa, Status: models.StatusDisponible,
			Price: 890000000, Bedrooms: 4, Bathrooms: 3, Area: 240,
			CreatedAt: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), Views: 3},
	}
	for _, p := range seed {
		require.NoError(t, db.InsertProperty(p))
	}

	notifier := notify.NewLogNotifier(logger)
	catalog := listing.NewCatalog(func(ctx context.Context) ([]models.Property, error) {
		return db.GetAllProperties()
	}, notifier, logger)
	catalog.Reload(context.Background())

	workspace := inquiry.NewWorkspace(inquiry.SampleInquiries(), notifier, logger, 0)
	t.Cleanup(workspace.Close)

	favStore := favorites.NewStore(filepath.Join(t.TempDir(), "favorites.json"), logger)
	ingestQueue := queue.NewIngestQueue(10, logger)
	t.Cleanup(func() { ingestQueue.Close() })

	handler := NewHandler(db, catalog, workspace, favStore, ingestQueue, nil, logger)
	router := gin.New()
	SetupRoutes(router, handler)

	return &testServer{router: router, db: db, workspace: workspace, queue: ingestQueue}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func TestGetProperties(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/properties", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Properties []models.Property `json:"properties"`
		Total      int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "p1", resp.Properties[0].ID, "newest first by default")
}

func TestGetProperties_Filtered(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/properties?type=casa&bedrooms=4", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Properties []models.Property `json:"properties"`
		Total      int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "p2", resp.Properties[0].ID)
}

func TestGetProperties_AutoWiden(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/properties?price_min=1&price_max=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total   int  `json:"total"`
		Widened bool `json:"widened"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.True(t, resp.Widened)
}

func TestGetPropertyByID(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/properties/p1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Property     models.Property `json:"property"`
		PriceDisplay string          `json:"price_display"`
		IsFavorite   bool            `json:"is_favorite"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 11, resp.Property.Views, "detail view bumps the counter")
	assert.Equal(t, "$ 450.000.000", resp.PriceDisplay)
	assert.False(t, resp.IsFavorite)
}

func TestGetPropertyByID_NotFound(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/properties/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIngestProperties(t *testing.T) {
	ts := newTestServer(t)

	var mu sync.Mutex
	var captured []*models.Property
	ts.queue.Subscribe(func(batch []*models.Property) error {
		mu.Lock()
		captured = append(captured, batch...)
		mu.Unlock()
		return nil
	})
	ts.queue.Start()

	body := `[
		{"id": "n1", "title": "Chalet en Las Palmas", "price": 1200000000, "type": "chalet"},
		{"id": "n2", "title": "Local en Laureles", "price": "$ 320.000.000", "type": "local"}
	]`
	w := ts.do(t, http.MethodPost, "/api/properties", body)
	require.Equal(t, http.StatusAccepted, w.Code)

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, captured, 2)
	assert.Equal(t, float64(1200000000), captured[0].Price)
	// formatted string price is normalized on ingest
	assert.Equal(t, float64(320000000), captured[1].Price)
	assert.Equal(t, "$ 320.000.000", captured[1].PriceRaw)
}

func TestIngestProperties_InvalidBody(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/properties", `{"not": "a batch"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetInquiries(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/inquiries?status=Pendiente", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Inquiries []models.Inquiry    `json:"inquiries"`
		Stats     models.InquiryStats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, len(resp.Inquiries), resp.Stats.Total)
	for _, inq := range resp.Inquiries {
		assert.Equal(t, models.InquiryPendiente, inq.Status)
	}
}

func TestRespondInquiry_EmptyTextRejected(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/inquiries/1/response", `{"text": "   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRespondInquiry(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/inquiries/1/response", `{"text": "Con gusto le ayudamos."}`)
	require.Equal(t, http.StatusOK, w.Code)

	for _, inq := range ts.workspace.Filtered() {
		if inq.ID == "1" {
			assert.Equal(t, models.InquiryRespondida, inq.Status)
		}
	}
}

func TestArchiveAndDeleteInquiry(t *testing.T) {
	ts := newTestServer(t)
	before := ts.workspace.Len()

	w := ts.do(t, http.MethodPost, "/api/inquiries/2/archive", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodDelete, "/api/inquiries/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, before-1, ts.workspace.Len())

	// deleting again is a no-op
	w = ts.do(t, http.MethodDelete, "/api/inquiries/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, before-1, ts.workspace.Len())
}

func TestFavoritesRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/favorites/p1/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"favorite":true`)

	w = ts.do(t, http.MethodGet, "/api/favorites", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "p1")

	w = ts.do(t, http.MethodPost, "/api/favorites/p1/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"favorite":false`)
}

func TestGetMapData(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/map?location=Medellín", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Center []float64 `json:"center"`
		Zoom   int       `json:"zoom"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Center, 2)
	// seed properties carry no coordinates, so the configured center wins
	assert.InDelta(t, 6.2442, resp.Center[0], 0.0001)
}

func TestGetLocations(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/locations", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Medellín")
}
