package service

import (
	"math"
	"strings"
	"sync/atomic"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/metrics"
)

// DefaultDensity is used for names that match no catalog entry, in kcal per 100 g.
const DefaultDensity = 100.0

// DensityResolver maps a product name to its energy density in kcal per 100 g.
// Implementations never fail: unknown names resolve to a default.
type DensityResolver interface {
	Resolve(name string) float64
}

// LookupResolver is a DensityResolver that can explain its answer.
type LookupResolver interface {
	DensityResolver
	Lookup(name string) model.Resolution
}

// DensityFunc adapts a plain function to DensityResolver.
type DensityFunc func(name string) float64

// Resolve calls f(name).
func (f DensityFunc) Resolve(name string) float64 {
	return f(name)
}

// ResolverOption configures a CatalogResolver.
type ResolverOption func(*CatalogResolver)

// WithDefaultDensity overrides the density used for unmatched names.
// Non-positive values are ignored.
func WithDefaultDensity(kcalPer100g float64) ResolverOption {
	return func(r *CatalogResolver) {
		if kcalPer100g > 0 && !math.IsInf(kcalPer100g, 0) {
			r.defaultDensity = kcalPer100g
		}
	}
}

// CatalogResolver resolves names against an ordered density catalog.
//
// Lookup order is: exact case-folded key, then the first key in catalog
// order that contains the query or is contained in it, then the default.
// The catalog is copied on construction and never changes afterwards, so a
// resolver is safe for concurrent use.
type CatalogResolver struct {
	entries        []model.CatalogEntry
	index          map[string]float64
	defaultDensity float64
	fallbacks      atomic.Int64
}

// NewCatalogResolver builds a resolver over entries. Keys are case-folded;
// empty keys and non-positive densities are skipped and the first
// occurrence of a duplicated key wins.
func NewCatalogResolver(entries []model.CatalogEntry, opts ...ResolverOption) *CatalogResolver {
	r := &CatalogResolver{
		entries:        make([]model.CatalogEntry, 0, len(entries)),
		index:          make(map[string]float64, len(entries)),
		defaultDensity: DefaultDensity,
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, e := range entries {
		key := model.NormalizeName(e.Name)
		if key == "" || !(e.KcalPer100g > 0) || math.IsInf(e.KcalPer100g, 0) {
			continue
		}
		if _, dup := r.index[key]; dup {
			continue
		}
		r.index[key] = e.KcalPer100g
		r.entries = append(r.entries, model.CatalogEntry{Name: key, KcalPer100g: e.KcalPer100g})
	}

	return r
}

// Resolve returns the density for name.
func (r *CatalogResolver) Resolve(name string) float64 {
	return r.Lookup(name).KcalPer100g
}

// Lookup resolves name and reports which catalog entry matched.
func (r *CatalogResolver) Lookup(name string) model.Resolution {
	query := model.NormalizeName(name)
	res := model.Resolution{Query: query}

	if query != "" {
		if density, ok := r.index[query]; ok {
			res.Key = query
			res.KcalPer100g = density
			res.Match = model.MatchExact
			return res
		}

		for _, e := range r.entries {
			if strings.Contains(e.Name, query) || strings.Contains(query, e.Name) {
				res.Key = e.Name
				res.KcalPer100g = e.KcalPer100g
				res.Match = model.MatchSubstring
				return res
			}
		}
	}

	r.fallbacks.Add(1)
	metrics.RecordDensityFallback()
	res.KcalPer100g = r.defaultDensity
	res.Match = model.MatchDefault
	return res
}

// Fallbacks returns how many lookups fell back to the default density.
func (r *CatalogResolver) Fallbacks() int64 {
	return r.fallbacks.Load()
}

// Entries returns a copy of the normalized catalog in lookup order.
func (r *CatalogResolver) Entries() []model.CatalogEntry {
	return append([]model.CatalogEntry(nil), r.entries...)
}

// trackingResolver counts default-density resolutions for one allocation.
type trackingResolver struct {
	inner     DensityResolver
	lookup    LookupResolver
	fallbacks int
}

func newTrackingResolver(inner DensityResolver) *trackingResolver {
	t := &trackingResolver{inner: inner}
	if lr, ok := inner.(LookupResolver); ok {
		t.lookup = lr
	}
	return t
}

func (t *trackingResolver) Resolve(name string) float64 {
	if t.lookup == nil {
		return t.inner.Resolve(name)
	}
	res := t.lookup.Lookup(name)
	if !res.Matched() {
		t.fallbacks++
	}
	return res.KcalPer100g
}
