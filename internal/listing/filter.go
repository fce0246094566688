package listing

import (
	"math"
	"sort"
	"strings"

	"inmolista/server/internal/models"
)

// SortKey selects the ordering of a filtered listing view.
type SortKey string

const (
	SortRecent    SortKey = "recent"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortAreaDesc  SortKey = "area-desc"
	SortViewsDesc SortKey = "views-desc"
)

// All is the sentinel for categorical filters meaning "no constraint".
const All = "all"

// FilterConfig is one immutable snapshot of the active listing filters.
// Zero values and the All sentinel mean "no constraint" for their field.
// Amenities, Features and Security are collected from callers but are not
// evaluated as predicates; see DESIGN.md.
type FilterConfig struct {
	Search    string
	Type      string
	Location  string
	Status    string
	Condition string
	Bedrooms  int
	Bathrooms int
	MinArea   float64
	PriceMin  float64
	PriceMax  float64
	Amenities []string
	Features  []string
	Security  []string
}

func active(field string) bool {
	return field != "" && field != All
}

// hasPriceRange reports whether the price range predicate is in effect.
func (c FilterConfig) hasPriceRange() bool {
	return c.PriceMin != 0 || c.PriceMax != 0
}

// Matches evaluates every active predicate against p (logical AND).
func (c FilterConfig) Matches(p *models.Property) bool {
	if c.Search != "" {
		q := strings.ToLower(c.Search)
		if !strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Location), q) {
			return false
		}
	}

	if active(c.Type) && p.Type != c.Type {
		return false
	}
	if active(c.Location) && p.Location != c.Location {
		return false
	}
	if active(c.Status) && p.Status != c.Status {
		return false
	}
	if active(c.Condition) && p.Condition != c.Condition {
		return false
	}

	if c.Bedrooms > 0 && p.Bedrooms < c.Bedrooms {
		return false
	}
	if c.Bathrooms > 0 && p.Bathrooms < c.Bathrooms {
		return false
	}
	if c.MinArea > 0 && p.Area < c.MinArea {
		return false
	}

	// Unknown prices are never excluded by the range filter.
	if c.hasPriceRange() && p.HasPrice() {
		if p.Price < c.PriceMin || p.Price > c.PriceMax {
			return false
		}
	}

	return true
}

// Apply returns the ordered subset of props satisfying cfg, sorted by key.
// The input slice is never mutated.
func Apply(props []models.Property, cfg FilterConfig, key SortKey) []models.Property {
	out := make([]models.Property, 0, len(props))
	for i := range props {
		if cfg.Matches(&props[i]) {
			out = append(out, props[i])
		}
	}
	sortProperties(out, key)
	return out
}

// sortPrice maps an unknown price to +Inf so it sorts after known prices.
func sortPrice(p *models.Property) float64 {
	if !p.HasPrice() {
		return math.Inf(1)
	}
	return p.Price
}

func sortProperties(props []models.Property, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(props, func(i, j int) bool {
			return sortPrice(&props[i]) < sortPrice(&props[j])
		})
	case SortPriceDesc:
		sort.SliceStable(props, func(i, j int) bool {
			return sortPrice(&props[j]) < sortPrice(&props[i])
		})
	case SortAreaDesc:
		sort.SliceStable(props, func(i, j int) bool {
			return props[i].Area > props[j].Area
		})
	case SortViewsDesc:
		sort.SliceStable(props, func(i, j int) bool {
			return props[i].Views > props[j].Views
		})
	default: // SortRecent
		sort.SliceStable(props, func(i, j int) bool {
			return props[i].CreatedAt.After(props[j].CreatedAt)
		})
	}
}

// WidenedRange computes the fallback price range [min-1, max+1] over the
// parseable prices of the unfiltered collection. ok is false when no record
// carries a known price, in which case the widen must not fire.
func WidenedRange(props []models.Property) (lo, hi float64, ok bool) {
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for i := range props {
		if !props[i].HasPrice() {
			continue
		}
		if props[i].Price < lo {
			lo = props[i].Price
		}
		if props[i].Price > hi {
			hi = props[i].Price
		}
	}
	if hi < lo {
		return 0, 0, false
	}
	return lo - 1, hi + 1, true
}
