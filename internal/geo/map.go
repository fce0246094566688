// Package geo prepares the map-data payload consumed by the map widget.
package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"inmolista/server/config"
	"inmolista/server/internal/models"
	"inmolista/server/internal/pricing"
)

const defaultZoom = 12

// MapData is the payload for the map endpoint: one GeoJSON feature per
// geocoded property plus the viewport the client should open on.
type MapData struct {
	Features *geojson.FeatureCollection `json:"features"`
	Center   []float64                  `json:"center"`
	Zoom     int                        `json:"zoom"`
}

// FeatureCollection converts the geocoded subset of props to GeoJSON.
// Properties without coordinates are skipped.
func FeatureCollection(props []models.Property) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := range props {
		p := &props[i]
		if p.Latitude == nil || p.Longitude == nil {
			continue
		}

		f := geojson.NewFeature(orb.Point{*p.Longitude, *p.Latitude})
		f.Properties["id"] = p.ID
		f.Properties["title"] = p.Title
		f.Properties["location"] = p.Location
		f.Properties["type"] = p.Type
		f.Properties["status"] = p.Status
		if p.HasPrice() {
			f.Properties["price"] = p.Price
			f.Properties["price_display"] = pricing.Format(p.Price)
		}
		fc.Append(f)
	}
	return fc
}

// Bound returns the bounding box of the geocoded properties. ok is false
// when no property carries coordinates.
func Bound(props []models.Property) (orb.Bound, bool) {
	var bound orb.Bound
	found := false
	for i := range props {
		p := &props[i]
		if p.Latitude == nil || p.Longitude == nil {
			continue
		}
		pt := orb.Point{*p.Longitude, *p.Latitude}
		if !found {
			bound = pt.Bound()
			found = true
			continue
		}
		bound = bound.Extend(pt)
	}
	return bound, found
}

// BuildMapData assembles the endpoint payload. When no property is geocoded
// the viewport falls back to the configured center for the requested
// location, or to the first supported location.
func BuildMapData(props []models.Property, location string) MapData {
	data := MapData{
		Features: FeatureCollection(props),
		Zoom:     defaultZoom,
	}

	if bound, ok := Bound(props); ok {
		center := bound.Center()
		data.Center = []float64{center.Lat(), center.Lon()}
		return data
	}

	loc := config.GetLocationByName(location)
	if loc == nil && len(config.SupportedLocations) > 0 {
		loc = &config.SupportedLocations[0]
	}
	if loc != nil {
		data.Center = loc.Center
		data.Zoom = loc.ZoomLevel
	}
	return data
}
