package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"inmolista/server/internal/pricing"
)

// Property types known to the catalog.
const (
	TypeCasa        = "casa"
	TypeApartamento = "apartamento"
	TypeChalet      = "chalet"
	TypeOficina     = "oficina"
	TypeLocal       = "local"
)

// Listing statuses.
const (
	StatusDisponible = "Disponible"
	StatusVendido    = "Vendido"
	StatusNuevo      = "Nuevo"
)

type Property struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	PriceRaw    string    `json:"price_raw,omitempty"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   int       `json:"bathrooms"`
	Area        float64   `json:"area"`
	Status      string    `json:"status"`
	Condition   string    `json:"condition"`
	Amenities   []string  `json:"amenities"`
	Features    []string  `json:"features"`
	Security    []string  `json:"security"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	Views       int       `json:"views"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
}

// HasPrice reports whether the price is known. Prices that could not be
// normalized are stored as NaN and must never be excluded by range filters.
func (p *Property) HasPrice() bool {
	return !math.IsNaN(p.Price)
}

// MarshalJSON renders an unknown price as null instead of NaN, which
// encoding/json refuses to emit.
func (p Property) MarshalJSON() ([]byte, error) {
	type alias Property
	aux := struct {
		alias
		Price interface{} `json:"price"`
	}{alias: alias(p)}
	if p.HasPrice() {
		aux.Price = p.Price
	}
	return json.Marshal(aux)
}

// UnmarshalJSON accepts a price that arrives as a number, a formatted
// string, or null; strings are normalized and kept in PriceRaw.
func (p *Property) UnmarshalJSON(data []byte) error {
	type alias Property
	aux := struct {
		*alias
		Price json.RawMessage `json:"price"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.Price = math.NaN()
	if len(aux.Price) == 0 || string(aux.Price) == "null" {
		return nil
	}

	var num float64
	if err := json.Unmarshal(aux.Price, &num); err == nil {
		p.Price = num
		return nil
	}

	var raw string
	if err := json.Unmarshal(aux.Price, &raw); err != nil {
		return fmt.Errorf("invalid price value: %s", aux.Price)
	}
	p.Price = pricing.Parse(raw)
	p.PriceRaw = raw
	return nil
}
