package domain

type EventStatus string

const (
	StatusPlanned   EventStatus = "planned"
	StatusConfirmed EventStatus = "confirmed"
	StatusCanceled  EventStatus = "canceled"
)

func (s EventStatus) Valid() bool {
	return s == StatusPlanned || s == StatusConfirmed || s == StatusCanceled
}

// CanTransitionTo encodes the one-way lifecycle: planned -> confirmed and
// planned -> canceled. Confirmed and canceled are terminal; resetting an
// event back to planned is an administrative operation outside this engine.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	if s == next {
		return false
	}
	switch s {
	case StatusPlanned:
		return next == StatusConfirmed || next == StatusCanceled
	default:
		return false
	}
}
