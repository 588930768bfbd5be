package domain

import "time"

// TimeWindow is a half-open [Begin, End) interval. A zero Begin means the
// event has no date yet; a zero End means the event is open-ended and is
// treated as occupying the remainder of its start day.
type TimeWindow struct {
	Begin time.Time
	End   time.Time
}

func (w TimeWindow) HasBegin() bool { return !w.Begin.IsZero() }

// EffectiveEnd returns End when set, otherwise midnight (UTC) following
// Begin. An event starting exactly at midnight therefore ends a full day
// later.
func (w TimeWindow) EffectiveEnd() time.Time {
	if !w.End.IsZero() {
		return w.End
	}
	if w.Begin.IsZero() {
		return time.Time{}
	}
	b := w.Begin.UTC()
	midnight := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.AddDate(0, 0, 1)
}

// Overlaps reports whether both windows have a begin date and their
// [begin, effectiveEnd) ranges intersect. Windows without a begin date
// never overlap anything.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	if !w.HasBegin() || !other.HasBegin() {
		return false
	}
	return w.Begin.Before(other.EffectiveEnd()) && other.Begin.Before(w.EffectiveEnd())
}
