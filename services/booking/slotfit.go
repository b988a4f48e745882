package booking

import (
	"time"

	"github.com/google/uuid"

	"mentorhub/models"
)

// MinFragmentMinutes is the smallest remainder fragment worth keeping.
// Slivers below this threshold are discarded so the pool never accumulates
// unbookable scraps.
const MinFragmentMinutes = 30

// BestFitWindow returns the free window that fully contains [start, end] with
// the least excess duration. Ties go to the earliest-starting window so the
// choice is deterministic regardless of input order.
func BestFitWindow(windows []models.AvailabilityWindow, start, end time.Time) (models.AvailabilityWindow, bool) {
	var best models.AvailabilityWindow
	found := false
	for _, w := range windows {
		if w.Booked || !w.Covers(start, end) {
			continue
		}
		if !found {
			best = w
			found = true
			continue
		}
		wd, bd := w.DurationMinutes(), best.DurationMinutes()
		if wd < bd || (wd == bd && w.Start.Before(best.Start)) {
			best = w
		}
	}
	return best, found
}

// SplitResult describes what happens to a window's unused time when a
// sub-interval is reserved.
type SplitResult struct {
	Fragments        []models.AvailabilityWindow
	ReclaimedMinutes int
	DiscardedMinutes int
}

// SplitRemainder computes the remainder fragments of reserving [reqStart, reqEnd]
// out of window w. A remainder on either side survives only if it is at least
// MinFragmentMinutes long. Minute conservation holds:
//
//	reclaimed + discarded + reserved == window duration
func SplitRemainder(w models.AvailabilityWindow, reqStart, reqEnd time.Time) SplitResult {
	var res SplitResult

	beforeMinutes := int(reqStart.Sub(w.Start) / time.Minute)
	afterMinutes := int(w.End.Sub(reqEnd) / time.Minute)

	if beforeMinutes >= MinFragmentMinutes {
		res.Fragments = append(res.Fragments, models.AvailabilityWindow{
			ID:         uuid.New().String(),
			ProviderID: w.ProviderID,
			Start:      w.Start,
			End:        reqStart,
		})
		res.ReclaimedMinutes += beforeMinutes
	} else {
		res.DiscardedMinutes += beforeMinutes
	}

	if afterMinutes >= MinFragmentMinutes {
		res.Fragments = append(res.Fragments, models.AvailabilityWindow{
			ID:         uuid.New().String(),
			ProviderID: w.ProviderID,
			Start:      reqEnd,
			End:        w.End,
		})
		res.ReclaimedMinutes += afterMinutes
	} else {
		res.DiscardedMinutes += afterMinutes
	}

	return res
}
