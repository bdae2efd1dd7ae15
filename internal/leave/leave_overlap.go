package leave

import "time"

// DateRange is a closed interval of calendar days.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) Overlaps(o DateRange) bool {
	return !r.From.After(o.To) && !o.From.After(r.To)
}

// HasOverlap reports whether candidate shares at least one day with any of
// existing. Callers pass only ranges that still count (not Rejected).
func HasOverlap(candidate DateRange, existing []DateRange) bool {
	for _, e := range existing {
		if candidate.Overlaps(e) {
			return true
		}
	}
	return false
}
