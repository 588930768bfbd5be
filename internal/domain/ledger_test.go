package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func limitedEvent(max int, queue bool) *EffectiveEvent {
	return effective(Event{
		NeedsRegistration:    true,
		AttendeesMax:         max,
		HasRegistrationQueue: queue,
	})
}

func TestLedger_Vacancies(t *testing.T) {
	t.Run("unlimited", func(t *testing.T) {
		l := NewLedger(limitedEvent(0, false), AttendanceCounts{RegularSeats: 500})
		assert.True(t, l.HasUnlimitedVacancies())
		assert.False(t, l.IsFull())
		assert.True(t, l.CanAdmitToRegular(1000))
	})

	t.Run("limited", func(t *testing.T) {
		l := NewLedger(limitedEvent(10, false), AttendanceCounts{RegularSeats: 7})
		assert.False(t, l.HasUnlimitedVacancies())
		assert.Equal(t, 3, l.VacanciesRegular())
		assert.True(t, l.CanAdmitToRegular(3))
		assert.False(t, l.CanAdmitToRegular(4))
	})

	t.Run("offline_seats_occupy_regular_capacity", func(t *testing.T) {
		l := NewLedger(limitedEvent(10, false), AttendanceCounts{RegularSeats: 5, OfflineSeats: 5})
		assert.True(t, l.IsFull())
		assert.Equal(t, 0, l.VacanciesRegular())
	})

	t.Run("oversold_reports_zero_vacancies", func(t *testing.T) {
		l := NewLedger(limitedEvent(10, false), AttendanceCounts{RegularSeats: 8, OfflineSeats: 5})
		assert.Equal(t, 0, l.VacanciesRegular())
	})

	t.Run("no_registration_never_full", func(t *testing.T) {
		l := NewLedger(effective(Event{AttendeesMax: 1}), AttendanceCounts{RegularSeats: 5})
		assert.False(t, l.IsFull())
	})
}

func TestLedger_AdmitIdempotency(t *testing.T) {
	l := NewLedger(limitedEvent(10, true), AttendanceCounts{})

	assert.NoError(t, l.AdmitRegular("reg-1", 2))
	assert.Equal(t, 2, l.RegularCount())

	err := l.AdmitRegular("reg-1", 2)
	assert.Error(t, err)
	assert.Equal(t, CodeInvalidState, err.(*AppError).Code)
	assert.Equal(t, 2, l.RegularCount())

	assert.NoError(t, l.AdmitQueued("reg-2", 1))
	assert.Error(t, l.AdmitQueued("reg-2", 1))
	assert.Equal(t, 1, l.QueueCount())
}

func TestLedger_AdmitRejectionsLeaveCountersUntouched(t *testing.T) {
	l := NewLedger(limitedEvent(2, false), AttendanceCounts{RegularSeats: 2})
	before := l.Snapshot()

	assert.Error(t, l.AdmitRegular("reg-1", 1))
	assert.Error(t, l.AdmitQueued("reg-2", 1))
	assert.Error(t, l.AdmitRegular("", 1))
	assert.Error(t, l.AdmitRegular("reg-3", 0))

	assert.Equal(t, before, l.Snapshot())
}

func TestLedger_RecordOffline_MayOversell(t *testing.T) {
	l := NewLedger(limitedEvent(2, false), AttendanceCounts{RegularSeats: 2})
	assert.NoError(t, l.RecordOffline(5))
	assert.Equal(t, 7, l.RegularCount())
	assert.True(t, l.IsFull())

	assert.Error(t, l.RecordOffline(0))
}

func TestLedger_PromoteQueued(t *testing.T) {
	l := NewLedger(limitedEvent(2, true), AttendanceCounts{RegularSeats: 1, QueueSeats: 3})
	assert.NoError(t, l.PromoteQueued("reg-q", 1))
	assert.Equal(t, 2, l.RegularCount())
	assert.Equal(t, 2, l.QueueCount())

	assert.Error(t, l.PromoteQueued("reg-q2", 1)) // regular list now full
}

func TestLedger_IsUnregistrationPossible(t *testing.T) {
	now := mustTime(t, "2026-03-01T10:00:00Z")
	deadline := now.Add(24 * time.Hour)

	t.Run("before_deadline_with_waiters", func(t *testing.T) {
		l := NewLedger(limitedEvent(5, true), AttendanceCounts{QueueSeats: 2})
		assert.True(t, l.IsUnregistrationPossible(now, deadline))
	})

	t.Run("after_deadline", func(t *testing.T) {
		l := NewLedger(limitedEvent(5, true), AttendanceCounts{QueueSeats: 2})
		assert.False(t, l.IsUnregistrationPossible(deadline, deadline))
	})

	t.Run("zero_deadline_blocks", func(t *testing.T) {
		l := NewLedger(limitedEvent(5, true), AttendanceCounts{QueueSeats: 2})
		assert.False(t, l.IsUnregistrationPossible(now, time.Time{}))
	})

	t.Run("empty_waitlist_blocks_unless_allowed", func(t *testing.T) {
		l := NewLedger(limitedEvent(5, true), AttendanceCounts{})
		assert.False(t, l.IsUnregistrationPossible(now, deadline))

		e := limitedEvent(5, true)
		e.AllowUnregistrationWithEmptyWaitingList = true
		l = NewLedger(e, AttendanceCounts{})
		assert.True(t, l.IsUnregistrationPossible(now, deadline))
	})

	t.Run("no_registration_needed_blocks", func(t *testing.T) {
		l := NewLedger(effective(Event{HasRegistrationQueue: true}), AttendanceCounts{QueueSeats: 1})
		assert.False(t, l.IsUnregistrationPossible(now, deadline))
	})
}

func TestLedger_RecordPayment(t *testing.T) {
	l := NewLedger(limitedEvent(5, false), AttendanceCounts{RegularSeats: 3})
	assert.NoError(t, l.RecordPayment("reg-1", 2))
	assert.Equal(t, 2, l.Snapshot().PaidSeats)
	assert.Error(t, l.RecordPayment("reg-1", 2))
}
