package model

// GeoPoint is a single geographic coordinate in decimal degrees.
// The field order follows the GeoJSON convention of longitude first.
type GeoPoint struct {
	// Lon is the longitude in decimal degrees.
	Lon float64 `json:"lon"`

	// Lat is the latitude in decimal degrees.
	Lat float64 `json:"lat"`
}

// Location is a discovered point of interest.
//
// Its identity is the canonical URL of its detail page: two Locations with
// the same URL describe the same place, regardless of their metadata.
// A Location always carries at least one point; the extractor never emits
// one without parseable coordinates.
//
// Design decision: The original metadata was a free-form mapping keyed by
// strings. We promote the always-present "name" key to an explicit field and
// keep an open extension map for enrichment-derived fields. This keeps the
// well-known part typed while preserving the "merge new keys over old"
// semantics of the loose mapping.
type Location struct {
	// URL is the canonical URL of the location's detail page.
	URL string `json:"url"`

	// Points is the ordered sequence of coordinates recorded for the location.
	// Only the first point is used for the output geometry.
	Points []GeoPoint `json:"points"`

	// Name is the display name taken from the location's anchor text.
	Name string `json:"name"`

	// Extra holds additional metadata merged in during enrichment,
	// such as a "description" extracted from the location's own page.
	Extra map[string]string `json:"extra,omitempty"`
}

// NewLocation creates a Location with a single point.
func NewLocation(locURL, name string, point GeoPoint) *Location {
	return &Location{
		URL:    locURL,
		Name:   name,
		Points: []GeoPoint{point},
	}
}

// Merge adds the given metadata to the location's extension map.
// Incoming keys win over existing ones; an empty or nil map is a no-op,
// so a failed enrichment leaves the location untouched.
func (l *Location) Merge(meta map[string]string) {
	if len(meta) == 0 {
		return
	}
	if l.Extra == nil {
		l.Extra = make(map[string]string, len(meta))
	}
	for k, v := range meta {
		l.Extra[k] = v
	}
}

// Properties returns the full metadata mapping for GeoJSON output:
// the name plus all enrichment-derived fields. Enrichment keys win over
// the built-in name, matching the merge semantics of the metadata map.
func (l *Location) Properties() map[string]string {
	props := make(map[string]string, len(l.Extra)+1)
	props["name"] = l.Name
	for k, v := range l.Extra {
		props[k] = v
	}
	return props
}
