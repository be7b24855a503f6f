package assignment

import (
	"sort"

	"github.com/minatoh/spa-desk/internal/model"
)

// SortMode selects the ranking comparator. SortAuto is the canonical
// assignment order; the single-key modes back the manual staff views.
type SortMode string

const (
	SortAuto       SortMode = "auto"
	SortCommission SortMode = "commission"
	SortServes     SortMode = "serves"
	SortRating     SortMode = "rating"
	SortLastServed SortMode = "last_served"
)

func ParseSortMode(s string) (SortMode, bool) {
	switch SortMode(s) {
	case SortAuto, SortCommission, SortServes, SortRating, SortLastServed:
		return SortMode(s), true
	case "":
		return SortAuto, true
	}
	return "", false
}

// Rank orders candidates without mutating the input. The sort is stable:
// ties after every explicit key keep their original relative order, so the
// result is fully deterministic for a given snapshot.
func Rank(therapists []*model.Therapist, mode SortMode) []*model.Therapist {
	ranked := append([]*model.Therapist(nil), therapists...)

	switch mode {
	case SortCommission:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].CommissionRate < ranked[j].CommissionRate
		})
	case SortServes:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].TodayServes < ranked[j].TodayServes
		})
	case SortRating:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Rating > ranked[j].Rating
		})
	case SortLastServed:
		sort.SliceStable(ranked, func(i, j int) bool {
			return servedEarlier(ranked[i], ranked[j])
		})
	default:
		sort.SliceStable(ranked, func(i, j int) bool {
			return autoLess(ranked[i], ranked[j])
		})
	}
	return ranked
}

// autoLess is the canonical assignment comparator: available staff first,
// then lowest commission rate (the house favors the lower take), then fewest
// serves today, then the therapist idle longest.
func autoLess(a, b *model.Therapist) bool {
	ap, bp := availabilityRank(a), availabilityRank(b)
	if ap != bp {
		return ap < bp
	}
	if a.CommissionRate != b.CommissionRate {
		return a.CommissionRate < b.CommissionRate
	}
	if a.TodayServes != b.TodayServes {
		return a.TodayServes < b.TodayServes
	}
	return servedEarlier(a, b)
}

func availabilityRank(t *model.Therapist) int {
	switch t.Status {
	case model.TherapistStatusAvailable:
		return 0
	case model.TherapistStatusBusy, model.TherapistStatusBreak:
		return 1
	}
	return 2
}

// servedEarlier orders by LastServedTime ascending; a therapist who has never
// served sorts before any who has.
func servedEarlier(a, b *model.Therapist) bool {
	switch {
	case a.LastServedTime == nil && b.LastServedTime == nil:
		return false
	case a.LastServedTime == nil:
		return true
	case b.LastServedTime == nil:
		return false
	}
	return a.LastServedTime.Before(*b.LastServedTime)
}
