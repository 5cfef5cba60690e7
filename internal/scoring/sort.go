package scoring

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Veraticus/billscout/internal/model"
)

// SortKey selects the display order for scored places.
type SortKey string

// Sort keys. SortInput keeps the scorer's input order.
const (
	SortInput    SortKey = "input"
	SortDistance SortKey = "distance"
	SortPrice    SortKey = "price"
	SortQuality  SortKey = "quality"
	SortService  SortKey = "service"
)

// ParseSortKey validates a sort key name; empty means SortInput.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case "":
		return SortInput, nil
	case SortInput, SortDistance, SortPrice, SortQuality, SortService:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (use input, distance, price, quality, or service)", s)
	}
}

// SortBy returns a sorted copy of places. Distance sorts nearest first;
// scores sort highest first. Ties keep input order.
func SortBy(places []model.ScoredPlace, key SortKey) []model.ScoredPlace {
	out := slices.Clone(places)

	var compare func(a, b model.ScoredPlace) int
	switch key {
	case SortDistance:
		compare = func(a, b model.ScoredPlace) int { return cmp.Compare(a.DistanceKm, b.DistanceKm) }
	case SortPrice:
		compare = func(a, b model.ScoredPlace) int { return cmp.Compare(b.PriceScore, a.PriceScore) }
	case SortQuality:
		compare = func(a, b model.ScoredPlace) int { return cmp.Compare(b.QualityScore, a.QualityScore) }
	case SortService:
		compare = func(a, b model.ScoredPlace) int { return cmp.Compare(b.ServiceScore, a.ServiceScore) }
	default:
		return out
	}

	slices.SortStableFunc(out, compare)
	return out
}
