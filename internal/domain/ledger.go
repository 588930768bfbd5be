package domain

import "time"

// AttendanceCounts is the persisted per-event seat tally. RegularSeats and
// QueueSeats sum online registrations by waiting-list membership,
// OfflineSeats is the manually entered organizer count, PaidSeats sums
// registrations with a payment date.
type AttendanceCounts struct {
	RegularSeats int
	QueueSeats   int
	OfflineSeats int
	PaidSeats    int
}

// Ledger answers capacity questions for one event and applies admission
// mutations. Every mutation takes the registration id it accounts for, so
// applying the same admission twice is rejected instead of double-counted.
// Rejected operations leave the counters untouched.
type Ledger struct {
	needsRegistration    bool
	attendeesMax         int
	hasQueue             bool
	allowUnregEmptyQueue bool

	counts  AttendanceCounts
	applied map[string]bool
}

func NewLedger(e *EffectiveEvent, counts AttendanceCounts) *Ledger {
	return &Ledger{
		needsRegistration:    e.NeedsRegistration,
		attendeesMax:         e.AttendeesMax,
		hasQueue:             e.HasRegistrationQueue,
		allowUnregEmptyQueue: e.AllowUnregistrationWithEmptyWaitingList,
		counts:               counts,
		applied:              make(map[string]bool),
	}
}

func (l *Ledger) Snapshot() AttendanceCounts { return l.counts }

// RegularCount includes offline seats: they occupy regular capacity even
// though no registration record backs them.
func (l *Ledger) RegularCount() int { return l.counts.RegularSeats + l.counts.OfflineSeats }
func (l *Ledger) QueueCount() int   { return l.counts.QueueSeats }

func (l *Ledger) HasUnlimitedVacancies() bool {
	return l.needsRegistration && l.attendeesMax == 0
}

// VacanciesRegular returns the unfilled regular seats. Callers must check
// HasUnlimitedVacancies first; for an unlimited event the result is 0.
func (l *Ledger) VacanciesRegular() int {
	if l.HasUnlimitedVacancies() {
		return 0
	}
	v := l.attendeesMax - l.RegularCount()
	if v < 0 {
		return 0
	}
	return v
}

func (l *Ledger) IsFull() bool {
	return l.needsRegistration && !l.HasUnlimitedVacancies() && l.RegularCount() >= l.attendeesMax
}

func (l *Ledger) CanAdmitToRegular(seats int) bool {
	if l.HasUnlimitedVacancies() {
		return true
	}
	return l.RegularCount()+seats <= l.attendeesMax
}

func (l *Ledger) CanAdmitToQueue() bool { return l.hasQueue }

// IsUnregistrationPossible: a registration can only be withdrawn before the
// effective deadline, and while the waiting list is empty only when the event
// explicitly allows dropping out with nobody waiting to take the seat.
func (l *Ledger) IsUnregistrationPossible(now, deadline time.Time) bool {
	if !l.needsRegistration {
		return false
	}
	if deadline.IsZero() || !now.Before(deadline) {
		return false
	}
	if l.counts.QueueSeats == 0 && !l.allowUnregEmptyQueue {
		return false
	}
	return true
}

func (l *Ledger) AdmitRegular(registrationID string, seats int) error {
	if err := l.checkApply(registrationID, seats); err != nil {
		return err
	}
	if !l.CanAdmitToRegular(seats) {
		return ErrInvalidState("no regular vacancies left")
	}
	l.applied[registrationID] = true
	l.counts.RegularSeats += seats
	return nil
}

func (l *Ledger) AdmitQueued(registrationID string, seats int) error {
	if err := l.checkApply(registrationID, seats); err != nil {
		return err
	}
	if !l.hasQueue {
		return ErrInvalidState("event has no registration queue")
	}
	l.applied[registrationID] = true
	l.counts.QueueSeats += seats
	return nil
}

// RecordOffline is the administrative escape hatch: it bypasses capacity
// checks entirely and may push RegularCount above attendees_max.
func (l *Ledger) RecordOffline(seats int) error {
	if seats < 1 {
		return ErrValidation("seats must be >= 1")
	}
	l.counts.OfflineSeats += seats
	return nil
}

func (l *Ledger) ReleaseRegular(registrationID string, seats int) error {
	if err := l.checkApply(registrationID, seats); err != nil {
		return err
	}
	l.applied[registrationID] = true
	l.counts.RegularSeats -= seats
	if l.counts.RegularSeats < 0 {
		l.counts.RegularSeats = 0
	}
	return nil
}

func (l *Ledger) ReleaseQueued(registrationID string, seats int) error {
	if err := l.checkApply(registrationID, seats); err != nil {
		return err
	}
	l.applied[registrationID] = true
	l.counts.QueueSeats -= seats
	if l.counts.QueueSeats < 0 {
		l.counts.QueueSeats = 0
	}
	return nil
}

// PromoteQueued moves seats from the waiting list into the regular list when
// an unregistration freed capacity.
func (l *Ledger) PromoteQueued(registrationID string, seats int) error {
	if err := l.checkApply(registrationID, seats); err != nil {
		return err
	}
	if !l.CanAdmitToRegular(seats) {
		return ErrInvalidState("no regular vacancies left")
	}
	l.applied[registrationID] = true
	l.counts.QueueSeats -= seats
	if l.counts.QueueSeats < 0 {
		l.counts.QueueSeats = 0
	}
	l.counts.RegularSeats += seats
	return nil
}

func (l *Ledger) RecordPayment(registrationID string, seats int) error {
	if err := l.checkApply(registrationID, seats); err != nil {
		return err
	}
	l.applied[registrationID] = true
	l.counts.PaidSeats += seats
	return nil
}

func (l *Ledger) checkApply(registrationID string, seats int) error {
	if registrationID == "" {
		return ErrValidation("registration_id is required")
	}
	if seats < 1 {
		return ErrValidation("seats must be >= 1")
	}
	if l.applied[registrationID] {
		return ErrInvalidState("registration already applied to ledger")
	}
	return nil
}
