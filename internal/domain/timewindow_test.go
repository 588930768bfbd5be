package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeWindow_EffectiveEnd(t *testing.T) {
	t.Run("explicit_end_wins", func(t *testing.T) {
		w := TimeWindow{
			Begin: mustTime(t, "2026-01-10T09:00:00Z"),
			End:   mustTime(t, "2026-01-10T17:00:00Z"),
		}
		assert.Equal(t, mustTime(t, "2026-01-10T17:00:00Z"), w.EffectiveEnd())
	})

	t.Run("open_ended_runs_to_next_midnight", func(t *testing.T) {
		w := TimeWindow{Begin: mustTime(t, "2026-01-10T09:00:00Z")}
		assert.Equal(t, mustTime(t, "2026-01-11T00:00:00Z"), w.EffectiveEnd())
	})

	t.Run("begin_at_midnight_ends_a_day_later", func(t *testing.T) {
		w := TimeWindow{Begin: mustTime(t, "2026-01-10T00:00:00Z")}
		assert.Equal(t, mustTime(t, "2026-01-11T00:00:00Z"), w.EffectiveEnd())
	})

	t.Run("no_begin_no_effective_end", func(t *testing.T) {
		assert.True(t, TimeWindow{}.EffectiveEnd().IsZero())
	})
}

func TestTimeWindow_Overlaps(t *testing.T) {
	a := TimeWindow{
		Begin: mustTime(t, "2026-01-10T09:00:00Z"),
		End:   mustTime(t, "2026-01-10T17:00:00Z"),
	}

	t.Run("partial_overlap", func(t *testing.T) {
		b := TimeWindow{
			Begin: mustTime(t, "2026-01-10T12:00:00Z"),
			End:   mustTime(t, "2026-01-10T18:00:00Z"),
		}
		assert.True(t, a.Overlaps(b))
	})

	t.Run("symmetry", func(t *testing.T) {
		b := TimeWindow{
			Begin: mustTime(t, "2026-01-10T12:00:00Z"),
			End:   mustTime(t, "2026-01-10T18:00:00Z"),
		}
		assert.Equal(t, a.Overlaps(b), b.Overlaps(a))
	})

	t.Run("touching_half_open_does_not_overlap", func(t *testing.T) {
		b := TimeWindow{
			Begin: mustTime(t, "2026-01-10T17:00:00Z"),
			End:   mustTime(t, "2026-01-10T19:00:00Z"),
		}
		assert.False(t, a.Overlaps(b))
		assert.False(t, b.Overlaps(a))
	})

	t.Run("disjoint_days", func(t *testing.T) {
		b := TimeWindow{
			Begin: mustTime(t, "2026-01-11T09:00:00Z"),
			End:   mustTime(t, "2026-01-11T17:00:00Z"),
		}
		assert.False(t, a.Overlaps(b))
	})

	t.Run("open_ended_occupies_rest_of_day", func(t *testing.T) {
		open := TimeWindow{Begin: mustTime(t, "2026-01-10T20:00:00Z")}
		late := TimeWindow{
			Begin: mustTime(t, "2026-01-10T22:00:00Z"),
			End:   mustTime(t, "2026-01-10T23:00:00Z"),
		}
		assert.True(t, open.Overlaps(late))
	})

	t.Run("windows_without_begin_never_overlap", func(t *testing.T) {
		assert.False(t, TimeWindow{}.Overlaps(a))
		assert.False(t, a.Overlaps(TimeWindow{}))
	})
}
