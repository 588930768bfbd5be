package domain

import "time"

// RegistrationClosure says why registration is closed right now, "" = open.
type RegistrationClosure string

const (
	ClosureNone         RegistrationClosure = ""
	ClosureCanceled     RegistrationClosure = "event_canceled"
	ClosureNoDateSet    RegistrationClosure = "no_date_set"
	ClosureEventStarted RegistrationClosure = "event_started"
	ClosureNotYetOpen   RegistrationClosure = "not_yet_open"
	ClosureClosed       RegistrationClosure = "closed"
)

// RegistrationGate evaluates the temporal registration rules for e at now.
// Capacity is deliberately not part of this: the admission engine checks the
// ledger after the gate.
func RegistrationGate(e *EffectiveEvent, now time.Time) RegistrationClosure {
	if e.Status == StatusCanceled {
		return ClosureCanceled
	}
	if !e.HasBeginDate() && !e.AllowRegistrationForEventsWithoutDate {
		return ClosureNoDateSet
	}
	if e.HasStarted(now) && !e.AllowRegistrationForStartedEvents {
		return ClosureEventStarted
	}
	if !e.RegistrationBeginDate.IsZero() && now.Before(e.RegistrationBeginDate) {
		return ClosureNotYetOpen
	}
	if !e.RegistrationDeadline.IsZero() && !now.Before(e.RegistrationDeadline) {
		return ClosureClosed
	}
	return ClosureNone
}

func CanRegisterNow(e *EffectiveEvent, now time.Time) bool {
	return RegistrationGate(e, now) == ClosureNone
}

// RegistrationOpensAt returns the gating instant, zero = always open.
func RegistrationOpensAt(e *EffectiveEvent) time.Time {
	return e.RegistrationBeginDate
}

// EffectiveUnregistrationDeadline resolves the unregistration deadline in
// priority order: the event's own deadline wins; otherwise the global
// days-before-begin policy applies when the event has a begin date; otherwise
// zero, meaning unregistration is never allowed (modulo the empty-waitlist
// exception handled by the ledger).
func EffectiveUnregistrationDeadline(e *EffectiveEvent, globalDeadlineDays int) time.Time {
	if !e.UnregistrationDeadline.IsZero() {
		return e.UnregistrationDeadline
	}
	if globalDeadlineDays > 0 && e.HasBeginDate() {
		return e.BeginDate.AddDate(0, 0, -globalDeadlineDays)
	}
	return time.Time{}
}

// CancellationDeadline is the latest instant the organizer can cancel without
// penalty: begin date minus the longest cancellation period any linked
// speaker declared. Events without a begin date have no such deadline.
func CancellationDeadline(e *EffectiveEvent) (time.Time, error) {
	if !e.HasBeginDate() {
		return time.Time{}, ErrMissingBeginDate("cancellation deadline requires a begin date")
	}
	return e.BeginDate.AddDate(0, 0, -e.MaxCancellationPeriodDays()), nil
}
