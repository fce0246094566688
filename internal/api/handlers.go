package api

import (
	"math"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"inmolista/server/config"
	"inmolista/server/internal/database"
	"inmolista/server/internal/favorites"
	"inmolista/server/internal/geo"
	"inmolista/server/internal/inquiry"
	"inmolista/server/internal/listing"
	"inmolista/server/internal/models"
	"inmolista/server/internal/notify"
	"inmolista/server/internal/pricing"
	"inmolista/server/internal/queue"
)

type Handler struct {
	db        *database.Database
	logger    *logrus.Logger
	catalog   *listing.Catalog
	workspace *inquiry.Workspace
	favorites *favorites.Store
	queue     *queue.IngestQueue
	telegram  *notify.Telegram
}

// ListingQuery carries the listing filters and sort key as query params.
type ListingQuery struct {
	Search    string  `form:"search"`
	Type      string  `form:"type"`
	Location  string  `form:"location"`
	Status    string  `form:"status"`
	Condition string  `form:"condition"`
	Bedrooms  int     `form:"bedrooms"`
	Bathrooms int     `form:"bathrooms"`
	MinArea   float64 `form:"min_area"`
	PriceMin  float64 `form:"price_min"`
	PriceMax  float64 `form:"price_max"`
	Sort      string  `form:"sort"`
}

// InquiryQuery carries the inquiry filters, sort key and direction.
type InquiryQuery struct {
	Search    string `form:"search"`
	Type      string `form:"type"`
	Status    string `form:"status"`
	Priority  string `form:"priority"`
	Agent     string `form:"agent"`
	Source    string `form:"source"`
	Sort      string `form:"sort"`
	Ascending bool   `form:"ascending"`
}

type ResponseRequest struct {
	Text string `json:"text"`
}

func NewHandler(
	db *database.Database,
	catalog *listing.Catalog,
	workspace *inquiry.Workspace,
	favStore *favorites.Store,
	ingestQueue *queue.IngestQueue,
	telegram *notify.Telegram,
	logger *logrus.Logger,
) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:        db,
		logger:    logger,
		catalog:   catalog,
		workspace: workspace,
		favorites: favStore,
		queue:     ingestQueue,
		telegram:  telegram,
	}
}

// GetProperties applies the requested filters to the catalog and returns
// the resulting view.
func (h *Handler) GetProperties(c *gin.Context) {
	var q ListingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.logger.WithError(err).Error("Failed to parse listing query")
	}

	h.catalog.SetFilters(listing.FilterConfig{
		Search:    q.Search,
		Type:      q.Type,
		Location:  q.Location,
		Status:    q.Status,
		Condition: q.Condition,
		Bedrooms:  q.Bedrooms,
		Bathrooms: q.Bathrooms,
		MinArea:   q.MinArea,
		PriceMin:  q.PriceMin,
		PriceMax:  q.PriceMax,
	})
	if q.Sort != "" {
		h.catalog.SetSort(listing.SortKey(q.Sort))
	}

	view := h.catalog.View()
	c.JSON(http.StatusOK, gin.H{
		"properties": view,
		"total":      len(view),
		"widened":    h.catalog.Widened(),
	})
}

// GetPropertyByID returns a single property and bumps its view counter.
// Entering the detail page also reads the favorite set.
func (h *Handler) GetPropertyByID(c *gin.Context) {
	id := c.Param("id")

	property, err := h.db.GetPropertyByID(id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get property"})
		return
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	if err := h.db.IncrementViews(id); err != nil {
		h.logger.WithError(err).Error("Failed to increment views")
	} else {
		property.Views++
	}

	c.JSON(http.StatusOK, gin.H{
		"property":      property,
		"price_display": pricing.Format(property.Price),
		"is_favorite":   h.favorites.Contains(id),
	})
}

// ingestProperty accepts a price that may arrive as a formatted string.
type ingestProperty struct {
	ID          string      `json:"id" binding:"required"`
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description"`
	Price       interface{} `json:"price"`
	Location    string      `json:"location"`
	Type        string      `json:"type"`
	Bedrooms    int         `json:"bedrooms"`
	Bathrooms   int         `json:"bathrooms"`
	Area        float64     `json:"area"`
	Status      string      `json:"status"`
	Condition   string      `json:"condition"`
	Amenities   []string    `json:"amenities"`
	Features    []string    `json:"features"`
	Security    []string    `json:"security"`
	Images      []string    `json:"images"`
	Latitude    *float64    `json:"latitude"`
	Longitude   *float64    `json:"longitude"`
}

func (in *ingestProperty) toModel() *models.Property {
	p := &models.Property{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Type:        in.Type,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Area:        in.Area,
		Status:      in.Status,
		Condition:   in.Condition,
		Amenities:   in.Amenities,
		Features:    in.Features,
		Security:    in.Security,
		Images:      in.Images,
		CreatedAt:   time.Now(),
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
	}

	switch v := in.Price.(type) {
	case float64:
		p.Price = v
	case string:
		p.Price = pricing.Parse(v)
		p.PriceRaw = v
	default:
		p.Price = math.NaN()
	}

	return p
}

// IngestProperties queues a batch of listings for the batch processor.
func (h *Handler) IngestProperties(c *gin.Context) {
	var batch []ingestProperty
	if err := c.ShouldBindJSON(&batch); err != nil {
		h.logger.WithError(err).Error("Failed to parse ingest batch")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}
	if len(batch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty batch"})
		return
	}

	properties := make([]*models.Property, 0, len(batch))
	for i := range batch {
		properties = append(properties, batch[i].toModel())
	}

	if err := h.queue.Push(properties); err != nil {
		h.logger.WithError(err).Error("Failed to queue batch")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ingest queue unavailable"})
		return
	}

	if h.telegram != nil {
		for _, p := range properties {
			if err := h.telegram.NotifyNewProperty(p); err != nil {
				h.logger.WithError(err).Error("Failed to send property notification")
			}
		}
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status": "queued",
		"count":  len(properties),
	})
}

// GetInquiries applies the requested filters to the workspace and returns
// the visible inquiries with their derived statistics.
func (h *Handler) GetInquiries(c *gin.Context) {
	var q InquiryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.logger.WithError(err).Error("Failed to parse inquiry query")
	}

	h.workspace.SetFilters(inquiry.FilterConfig{
		Search:   q.Search,
		Type:     q.Type,
		Status:   q.Status,
		Priority: q.Priority,
		Agent:    q.Agent,
		Source:   q.Source,
	})
	if q.Sort != "" {
		h.workspace.SetSort(inquiry.SortKey(q.Sort), q.Ascending)
	}

	visible := h.workspace.Filtered()
	c.JSON(http.StatusOK, gin.H{
		"inquiries": visible,
		"stats":     inquiry.Stats(visible),
	})
}

// RespondInquiry records a response to an inquiry.
func (h *Handler) RespondInquiry(c *gin.Context) {
	var req ResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse response request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	if err := h.workspace.SendResponse(c.Param("id"), req.Text); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Respuesta registrada"})
}

// ArchiveInquiry marks an inquiry as archived.
func (h *Handler) ArchiveInquiry(c *gin.Context) {
	h.workspace.Archive(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"status": "Consulta archivada"})
}

// DeleteInquiry removes an inquiry from the collection. No undo.
func (h *Handler) DeleteInquiry(c *gin.Context) {
	h.workspace.Delete(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"status": "Consulta eliminada"})
}

// GetFavorites returns the persisted favorite set.
func (h *Handler) GetFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"favorites": h.favorites.Get()})
}

// ToggleFavorite flips the favorite flag of a property.
func (h *Handler) ToggleFavorite(c *gin.Context) {
	fav, err := h.favorites.Toggle(c.Param("id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to toggle favorite")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorite": fav})
}

// GetMapData returns the GeoJSON payload for the map widget, built from the
// currently filtered view.
func (h *Handler) GetMapData(c *gin.Context) {
	data := geo.BuildMapData(h.catalog.View(), c.Query("location"))
	c.JSON(http.StatusOK, data)
}

// GetLocations lists the supported markets and their map defaults.
func (h *Handler) GetLocations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"locations": config.SupportedLocations})
}
