package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tt, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad time %q: %v", s, err)
	}
	return tt.UTC()
}

func TestNewSeminar_Validation(t *testing.T) {
	now := mustTime(t, "2026-03-01T10:00:00Z")
	begin := now.Add(24 * time.Hour)
	end := begin.Add(8 * time.Hour)

	t.Run("valid_complete_event", func(t *testing.T) {
		e, err := NewSeminar(RecordComplete, "", "Intro to Brewing", begin, end, 50, now)
		assert.NoError(t, err)
		assert.NotNil(t, e)
		assert.Equal(t, StatusPlanned, e.Status)
		assert.Equal(t, begin, e.BeginDate)
		assert.NotEmpty(t, e.ID)
	})

	t.Run("date_requires_topic_id", func(t *testing.T) {
		_, err := NewSeminar(RecordDate, "", "", begin, end, 0, now)
		assert.Error(t, err)
		assert.Equal(t, CodeValidation, err.(*AppError).Code)
	})

	t.Run("topic_id_only_on_dates", func(t *testing.T) {
		_, err := NewSeminar(RecordComplete, "top-1", "t", begin, end, 0, now)
		assert.Error(t, err)
	})

	t.Run("date_may_omit_title", func(t *testing.T) {
		e, err := NewSeminar(RecordDate, "top-1", "", begin, end, 0, now)
		assert.NoError(t, err)
		assert.Empty(t, e.Title)
	})

	t.Run("end_before_begin", func(t *testing.T) {
		_, err := NewSeminar(RecordComplete, "", "t", begin, begin.Add(-time.Hour), 0, now)
		assert.Error(t, err)
	})

	t.Run("end_without_begin", func(t *testing.T) {
		_, err := NewSeminar(RecordComplete, "", "t", time.Time{}, end, 0, now)
		assert.Error(t, err)
	})

	t.Run("negative_capacity", func(t *testing.T) {
		_, err := NewSeminar(RecordComplete, "", "t", begin, end, -1, now)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "attendees_max must be >= 0")
	})

	t.Run("event_without_date_is_allowed", func(t *testing.T) {
		e, err := NewSeminar(RecordTopic, "", "Planned Someday", time.Time{}, time.Time{}, 0, now)
		assert.NoError(t, err)
		assert.False(t, e.HasBeginDate())
	})
}

func TestEvent_Lifecycle_Transitions(t *testing.T) {
	now := mustTime(t, "2026-03-01T10:00:00Z")

	newPlanned := func(t *testing.T) *Event {
		t.Helper()
		e, err := NewSeminar(RecordComplete, "", "t", now.Add(time.Hour), now.Add(2*time.Hour), 0, now)
		if err != nil {
			t.Fatal(err)
		}
		return e
	}

	t.Run("confirm_success", func(t *testing.T) {
		e := newPlanned(t)
		err := e.Confirm(now)
		assert.NoError(t, err)
		assert.Equal(t, StatusConfirmed, e.Status)
		assert.NotNil(t, e.ConfirmedAt)
	})

	t.Run("cancel_success", func(t *testing.T) {
		e := newPlanned(t)
		err := e.Cancel(now)
		assert.NoError(t, err)
		assert.Equal(t, StatusCanceled, e.Status)
		assert.NotNil(t, e.CanceledAt)
	})

	t.Run("confirmed_is_terminal", func(t *testing.T) {
		e := newPlanned(t)
		_ = e.Confirm(now)
		assert.Error(t, e.Cancel(now))
		assert.Error(t, e.Confirm(now))
	})

	t.Run("cancel_canceled_fails", func(t *testing.T) {
		e := newPlanned(t)
		_ = e.Cancel(now)
		err := e.Cancel(now)
		assert.Error(t, err)
		assert.Equal(t, CodeInvalidState, err.(*AppError).Code)
	})
}

func TestEvent_MaxCancellationPeriodDays(t *testing.T) {
	e := &Event{Speakers: []Speaker{
		{ID: "s1", CancellationPeriodDays: 21},
		{ID: "s2", CancellationPeriodDays: 42},
		{ID: "s3"},
	}}
	assert.Equal(t, 42, e.MaxCancellationPeriodDays())

	t.Run("no_speakers", func(t *testing.T) {
		assert.Equal(t, 0, (&Event{}).MaxCancellationPeriodDays())
	})
}

func TestEvent_HasUnlimitedVacancies(t *testing.T) {
	assert.True(t, (&Event{NeedsRegistration: true, AttendeesMax: 0}).HasUnlimitedVacancies())
	assert.False(t, (&Event{NeedsRegistration: true, AttendeesMax: 10}).HasUnlimitedVacancies())
	assert.False(t, (&Event{NeedsRegistration: false, AttendeesMax: 0}).HasUnlimitedVacancies())
}
