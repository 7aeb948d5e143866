package models

// PlaceCandidate is one place returned by the place-search provider for a
// single category tag. Distance is in kilometres from the query point.
type PlaceCandidate struct {
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Tag      string  `json:"tag"`
}

// PlacesByCategory maps a category tag to its candidates in provider order.
// The map's keys form the closed universe a suggestion may reference.
type PlacesByCategory map[string][]PlaceCandidate
