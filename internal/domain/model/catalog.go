package model

// CatalogEntry is one product of a density catalog.
//
// @Description Product name and energy density
// @Example {"name": "rice", "kcal_per_100g": 344}
type CatalogEntry struct {
	Name        string  `bson:"name" json:"name" example:"rice"`
	KcalPer100g float64 `bson:"kcal_per_100g" json:"kcal_per_100g" example:"344"`
}

// MatchKind tells how a name was resolved against a catalog.
type MatchKind string

const (
	MatchExact     MatchKind = "exact"
	MatchSubstring MatchKind = "substring"
	MatchDefault   MatchKind = "default"
)

// Resolution is the outcome of resolving one product name.
type Resolution struct {
	Query       string    `json:"query" example:"boiled rice"`
	Key         string    `json:"key,omitempty" example:"rice"`
	KcalPer100g float64   `json:"kcal_per_100g" example:"344"`
	Match       MatchKind `json:"match" example:"substring"`
}

// Matched reports whether the name hit a catalog entry.
func (r Resolution) Matched() bool {
	return r.Match != MatchDefault
}
