package model

// GeoJSON type names as defined by RFC 7946.
const (
	geometryTypePoint     = "Point"
	featureType           = "Feature"
	featureCollectionType = "FeatureCollection"
)

// Geometry is a GeoJSON point geometry.
// Coordinates are [longitude, latitude] per RFC 7946 section 3.1.1.
type Geometry struct {
	// Type is always "Point" for this tool.
	Type string `json:"type"`

	// Coordinates is the [lon, lat] pair.
	Coordinates []float64 `json:"coordinates"`
}

// Feature is a single GeoJSON feature: one located place with its metadata.
type Feature struct {
	// Type is always "Feature".
	Type string `json:"type"`

	// Geometry is the point geometry of the feature.
	Geometry Geometry `json:"geometry"`

	// Properties holds the location's metadata mapping.
	// It always contains at least a "name" key.
	Properties map[string]string `json:"properties"`
}

// FeatureCollection is the terminal GeoJSON output of a crawl.
type FeatureCollection struct {
	// Type is always "FeatureCollection".
	Type string `json:"type"`

	// Features lists one feature per discovered location.
	// An empty crawl yields an empty (non-nil) slice so the JSON output
	// contains "features": [] rather than null.
	Features []Feature `json:"features"`
}

// NewFeatureCollection builds the output feature collection from the final
// location store. Each location with at least one point becomes one feature;
// the geometry uses only the first recorded point.
func NewFeatureCollection(locations []*Location) *FeatureCollection {
	features := make([]Feature, 0, len(locations))
	for _, loc := range locations {
		if len(loc.Points) == 0 {
			continue
		}
		features = append(features, Feature{
			Type: featureType,
			Geometry: Geometry{
				Type:        geometryTypePoint,
				Coordinates: []float64{loc.Points[0].Lon, loc.Points[0].Lat},
			},
			Properties: loc.Properties(),
		})
	}
	return &FeatureCollection{
		Type:     featureCollectionType,
		Features: features,
	}
}
