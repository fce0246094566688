package database

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"inmolista/server/internal/models"
	"inmolista/server/internal/pricing"
)

const listSeparator = "|"

type Database struct {
	db *sql.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

func (d *Database) GetDB() *sql.DB {
	return d.db
}

func (d *Database) Close() error {
	return d.db.Close()
}

const propertyColumns = `
	id,
	title,
	COALESCE(description, '') as description,
	price,
	COALESCE(price_raw, '') as price_raw,
	COALESCE(location, '') as location,
	COALESCE(type, '') as type,
	COALESCE(bedrooms, 0) as bedrooms,
	COALESCE(bathrooms, 0) as bathrooms,
	COALESCE(area, 0) as area,
	COALESCE(status, '') as status,
	COALESCE(condition, '') as condition,
	COALESCE(amenities, '') as amenities,
	COALESCE(features, '') as features,
	COALESCE(security, '') as security,
	COALESCE(images, '') as images,
	COALESCE(created_at, CURRENT_TIMESTAMP) as created_at,
	COALESCE(views, 0) as views,
	latitude,
	longitude
`

// GetAllProperties returns the full property collection, newest first.
// Filtering and sorting happen in memory in the listing engine.
func (d *Database) GetAllProperties() ([]models.Property, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM properties
		ORDER BY created_at DESC
	`, propertyColumns)

	rows, err := d.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

// GetPropertyByID returns a single property, or nil when it does not exist.
func (d *Database) GetPropertyByID(id string) (*models.Property, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM properties
		WHERE id = ?
	`, propertyColumns)

	row := d.db.QueryRow(query, id)
	p, err := scanProperty(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// IncrementViews bumps the view counter for a property.
func (d *Database) IncrementViews(id string) error {
	_, err := d.db.Exec("UPDATE properties SET views = views + 1 WHERE id = ?", id)
	return err
}

// InsertProperty writes a single property, replacing any existing row.
func (d *Database) InsertProperty(p *models.Property) error {
	price := sql.NullFloat64{}
	if p.HasPrice() {
		price = sql.NullFloat64{Float64: p.Price, Valid: true}
	}

	_, err := d.db.Exec(`
		INSERT OR REPLACE INTO properties
		(id, title, description, price, price_raw, location, type, bedrooms,
		 bathrooms, area, status, condition, amenities, features, security,
		 images, created_at, views, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID,
		p.Title,
		p.Description,
		price,
		p.PriceRaw,
		p.Location,
		p.Type,
		p.Bedrooms,
		p.Bathrooms,
		p.Area,
		p.Status,
		p.Condition,
		joinList(p.Amenities),
		joinList(p.Features),
		joinList(p.Security),
		joinList(p.Images),
		p.CreatedAt.Format(time.RFC3339),
		p.Views,
		p.Latitude,
		p.Longitude,
	)
	if err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProperty(row rowScanner) (models.Property, error) {
	var p models.Property
	var price sql.NullFloat64
	var priceRaw, amenities, features, security, images, createdAt string
	var latitude, longitude sql.NullFloat64

	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&price,
		&priceRaw,
		&p.Location,
		&p.Type,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.Area,
		&p.Status,
		&p.Condition,
		&amenities,
		&features,
		&security,
		&images,
		&createdAt,
		&p.Views,
		&latitude,
		&longitude,
	)
	if err != nil {
		return p, err
	}

	// Normalize the price: prefer the numeric column, fall back to parsing
	// the raw string, keep NaN for "unknown".
	p.PriceRaw = priceRaw
	switch {
	case price.Valid:
		p.Price = price.Float64
	case priceRaw != "":
		p.Price = pricing.Parse(priceRaw)
	default:
		p.Price = math.NaN()
	}

	p.Amenities = splitList(amenities)
	p.Features = splitList(features)
	p.Security = splitList(security)
	p.Images = splitList(images)

	if createdAt != "" {
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			p.CreatedAt = t
		}
	}

	if latitude.Valid {
		lat := latitude.Float64
		p.Latitude = &lat
	}
	if longitude.Valid {
		lon := longitude.Float64
		p.Longitude = &lon
	}

	return p, nil
}

func joinList(items []string) string {
	return strings.Join(items, listSeparator)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, listSeparator)
}
