package site

import "pottery-map/internal/catalog"

// Config holds configuration for site generation.
type Config struct {
	// Title is shown in the page header and the <title> of every page.
	Title string
	// MapCentre is where the map opens.
	MapCentre catalog.Coordinates
	// MapZoom is the initial zoom level of the map.
	MapZoom int
	// MaxClusterRadius is the marker cluster radius in pixels.
	MaxClusterRadius int
	// Language tags the pages and selects the plural rules for item counts.
	Language string
}

// DefaultConfig returns the default site configuration, centred on Stoke-on-Trent.
func DefaultConfig() Config {
	return Config{
		Title:            "Pottery Map",
		MapCentre:        catalog.Coordinates{Latitude: 53.02445128825057, Longitude: -2.1834733161173445},
		MapZoom:          10,
		MaxClusterRadius: 50,
		Language:         "en-GB",
	}
}
