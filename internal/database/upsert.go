package database

import (
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inmolista/server/internal/models"
)

// propertyRow is the flat shape the ingest pipeline writes through gorm.
type propertyRow struct {
	ID          string `gorm:"primaryKey"`
	Title       string
	Description string
	Price       sql.NullFloat64
	PriceRaw    string
	Location    string
	Type        string
	Bedrooms    int
	Bathrooms   int
	Area        float64
	Status      string
	Condition   string
	Amenities   string
	Features    string
	Security    string
	Images      string
	ListedAt    string `gorm:"column:created_at"`
	Views       int
	Latitude    *float64
	Longitude   *float64
}

func (propertyRow) TableName() string {
	return "properties"
}

func toRow(p *models.Property) propertyRow {
	price := sql.NullFloat64{}
	if p.HasPrice() {
		price = sql.NullFloat64{Float64: p.Price, Valid: true}
	}
	return propertyRow{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       price,
		PriceRaw:    p.PriceRaw,
		Location:    p.Location,
		Type:        p.Type,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		Area:        p.Area,
		Status:      p.Status,
		Condition:   p.Condition,
		Amenities:   joinList(p.Amenities),
		Features:    joinList(p.Features),
		Security:    joinList(p.Security),
		Images:      joinList(p.Images),
		ListedAt:    p.CreatedAt.Format(time.RFC3339),
		Views:       p.Views,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
	}
}

// UpsertProperties writes a batch of properties inside an existing gorm
// transaction, updating rows that already exist. The view counter is left
// untouched on conflict so re-ingested listings keep their counts.
func UpsertProperties(tx *gorm.DB, batch []*models.Property) error {
	if len(batch) == 0 {
		return nil
	}

	rows := make([]propertyRow, 0, len(batch))
	for _, p := range batch {
		rows = append(rows, toRow(p))
	}

	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "price", "price_raw", "location", "type",
			"bedrooms", "bathrooms", "area", "status", "condition",
			"amenities", "features", "security", "images", "latitude", "longitude",
		}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to upsert %d properties: %w", len(rows), err)
	}
	return nil
}
