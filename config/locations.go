package config

// Location represents a supported market with its map defaults.
type Location struct {
	Name      string    `json:"name"`
	Center    []float64 `json:"center"`
	ZoomLevel int       `json:"zoom_level"`
}

// SupportedLocations is the list of markets served by the application.
var SupportedLocations = []Location{
	{
		Name:      "Medellín",
		Center:    []float64{6.2442, -75.5812},
		ZoomLevel: 13,
	},
	{
		Name:      "Envigado",
		Center:    []float64{6.1759, -75.5911},
		ZoomLevel: 13,
	},
	{
		Name:      "Rionegro",
		Center:    []float64{6.1553, -75.3743},
		ZoomLevel: 13,
	},
	{
		Name:      "Bogotá",
		Center:    []float64{4.7110, -74.0721},
		ZoomLevel: 12,
	},
	// Add more locations here as needed
}

// GetLocationNames returns the names of all supported locations.
func GetLocationNames() []string {
	names := make([]string, len(SupportedLocations))
	for i, loc := range SupportedLocations {
		names[i] = loc.Name
	}
	return names
}

// GetLocationByName returns a location configuration by name.
func GetLocationByName(name string) *Location {
	for _, loc := range SupportedLocations {
		if loc.Name == name {
			return &loc
		}
	}
	return nil
}
