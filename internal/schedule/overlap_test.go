package schedule

import (
	"testing"
	"time"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(summary, start, end string, days ...model.Weekday) model.MeetingEntry {
	return model.MeetingEntry{
		Summary:    summary,
		Start:      start,
		End:        end,
		DaysOfWeek: model.Weekdays(days),
		EndSem:     "2025-12-12",
	}
}

func TestEntriesOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b model.MeetingEntry
		want bool
	}{
		{
			name: "identical times on same days",
			a:    entry("MATH 51-3", "2025-09-22T13:00:00", "2025-09-22T14:05:00", model.Monday, model.Wednesday),
			b:    entry("PHYS 32-2", "2025-09-22T13:00:00", "2025-09-22T14:05:00", model.Monday, model.Wednesday),
			want: true,
		},
		{
			name: "disjoint days never conflict",
			a:    entry("MATH 51-3", "2025-09-22T13:00:00", "2025-09-22T14:05:00", model.Monday, model.Wednesday, model.Friday),
			b:    entry("PHYS 32-2", "2025-09-22T13:00:00", "2025-09-22T14:05:00", model.Tuesday, model.Thursday),
			want: false,
		},
		{
			name: "back to back is not a conflict",
			a:    entry("A", "2025-09-22T08:00:00", "2025-09-22T09:05:00", model.Monday),
			b:    entry("B", "2025-09-22T09:05:00", "2025-09-22T10:00:00", model.Monday),
			want: false,
		},
		{
			name: "partial overlap",
			a:    entry("A", "2025-09-22T08:00:00", "2025-09-22T09:30:00", model.Monday),
			b:    entry("B", "2025-09-22T09:00:00", "2025-09-22T10:00:00", model.Monday),
			want: true,
		},
		{
			name: "containment",
			a:    entry("A", "2025-09-22T08:00:00", "2025-09-22T12:00:00", model.Friday),
			b:    entry("B", "2025-09-22T09:00:00", "2025-09-22T10:00:00", model.Friday, model.Monday),
			want: true,
		},
		{
			name: "different first dates are compared literally",
			a:    entry("A", "2025-09-22T13:00:00", "2025-09-22T14:05:00", model.Monday, model.Wednesday),
			b:    entry("B", "2025-09-24T13:00:00", "2025-09-24T14:05:00", model.Monday, model.Wednesday),
			want: false,
		},
		{
			name: "empty day set",
			a:    entry("A", "2025-09-22T13:00:00", "2025-09-22T14:05:00"),
			b:    entry("B", "2025-09-22T13:00:00", "2025-09-22T14:05:00", model.Monday),
			want: false,
		},
		{
			name: "lower case day codes",
			a:    entry("A", "2025-09-22T13:00:00", "2025-09-22T14:05:00", "mo"),
			b:    entry("B", "2025-09-22T13:30:00", "2025-09-22T14:05:00", model.Monday),
			want: true,
		},
		{
			name: "missing end",
			a:    entry("A", "2025-09-22T13:00:00", "", model.Monday),
			b:    entry("B", "2025-09-22T13:00:00", "2025-09-22T14:05:00", model.Monday),
			want: false,
		},
		{
			name: "missing start",
			a:    entry("A", "", "2025-09-22T14:05:00", model.Monday),
			b:    entry("B", "2025-09-22T13:00:00", "2025-09-22T14:05:00", model.Monday),
			want: false,
		},
		{
			name: "unparseable start",
			a:    entry("A", "Monday 1pm", "2025-09-22T14:05:00", model.Monday),
			b:    entry("B", "2025-09-22T13:00:00", "2025-09-22T14:05:00", model.Monday),
			want: false,
		},
		{
			name: "offsets on both sides",
			a:    entry("A", "2025-09-22T13:00:00-07:00", "2025-09-22T14:05:00-07:00", model.Monday),
			b:    entry("B", "2025-09-22T20:30:00Z", "2025-09-22T21:30:00Z", model.Monday),
			want: true,
		},
		{
			name: "naive mixed with offset fails open",
			a:    entry("A", "2025-09-22T13:00:00", "2025-09-22T14:05:00", model.Monday),
			b:    entry("B", "2025-09-22T13:00:00Z", "2025-09-22T14:05:00Z", model.Monday),
			want: false,
		},
		{
			name: "minutes without seconds",
			a:    entry("A", "2025-09-22T13:00", "2025-09-22T14:05", model.Monday),
			b:    entry("B", "2025-09-22 13:30:00", "2025-09-22 14:30:00", model.Monday),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EntriesOverlap(tt.a, tt.b))
			assert.Equal(t, tt.want, EntriesOverlap(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestEntriesOverlap_DisjointDaysIgnoreTimes(t *testing.T) {
	days := []model.Weekday{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday}
	for i, d1 := range days {
		for j, d2 := range days {
			if i == j {
				continue
			}
			a := entry("A", "2025-09-22T08:00:00", "2025-09-22T18:00:00", d1)
			b := entry("B", "2025-09-22T08:00:00", "2025-09-22T18:00:00", d2)
			assert.False(t, EntriesOverlap(a, b), "%s vs %s", d1, d2)
		}
	}
}

func TestEntriesOverlap_MalformedFailsOpen(t *testing.T) {
	good := entry("B", "2025-09-22T13:00:00", "2025-09-22T14:05:00", model.Monday)
	malformed := []model.MeetingEntry{
		entry("A", "2025-09-22T13:00:00", "", model.Monday),
		entry("A", "", "", model.Monday),
		entry("A", "2025-09-22T13:00:00", "soon", model.Monday),
		entry("A", "2025-13-40T13:00:00", "2025-09-22T14:05:00", model.Monday),
		entry("A", " 2025-09-22T13:00:00", "2025-09-22T14:05:00", model.Monday),
	}
	for _, m := range malformed {
		assert.False(t, EntriesOverlap(m, good))
		assert.False(t, EntriesOverlap(good, m))
		assert.False(t, EntriesOverlap(m, m))
	}
}

func TestEntriesOverlap_TimeOfDayMode(t *testing.T) {
	a := entry("A", "2025-09-22T13:00:00", "2025-09-22T14:05:00", model.Monday, model.Wednesday)
	b := entry("B", "2025-09-24T13:30:00", "2025-09-24T14:30:00", model.Wednesday)

	assert.False(t, entriesOverlap(a, b, ModeDateTime))
	assert.True(t, entriesOverlap(a, b, ModeTimeOfDay))
	assert.True(t, entriesOverlap(b, a, ModeTimeOfDay))

	back := entry("C", "2025-09-24T14:05:00", "2025-09-24T15:00:00", model.Monday)
	assert.False(t, entriesOverlap(a, back, ModeTimeOfDay))

	otherDays := entry("D", "2025-09-23T13:00:00", "2025-09-23T14:05:00", model.Tuesday)
	assert.False(t, entriesOverlap(a, otherDays, ModeTimeOfDay))
}

func TestEntriesOverlap_TimeOfDayMode_Offsets(t *testing.T) {
	// 13:00-07:00 это 20:00Z
	pacific := entry("A", "2025-09-22T13:00:00-07:00", "2025-09-22T14:05:00-07:00", model.Monday)
	utc := entry("B", "2025-09-24T20:30:00Z", "2025-09-24T21:30:00Z", model.Monday)

	assert.True(t, entriesOverlap(pacific, utc, ModeTimeOfDay))
	assert.True(t, entriesOverlap(utc, pacific, ModeTimeOfDay))

	sameDate := entry("C", "2025-09-22T20:30:00Z", "2025-09-22T21:30:00Z", model.Monday)
	assert.Equal(t, entriesOverlap(pacific, sameDate, ModeDateTime), entriesOverlap(pacific, sameDate, ModeTimeOfDay))

	later := entry("D", "2025-09-24T21:05:00Z", "2025-09-24T22:00:00Z", model.Monday)
	assert.False(t, entriesOverlap(pacific, later, ModeTimeOfDay))
}

func TestEntriesOverlap_TimeOfDayMode_PastMidnight(t *testing.T) {
	late := entry("A", "2025-09-22T23:00:00", "2025-09-23T01:00:00", model.Monday)
	inside := entry("B", "2025-09-22T23:30:00", "2025-09-23T00:30:00", model.Monday)

	assert.True(t, entriesOverlap(late, inside, ModeDateTime))
	assert.True(t, entriesOverlap(late, inside, ModeTimeOfDay))
	assert.True(t, entriesOverlap(inside, late, ModeTimeOfDay))

	evening := entry("C", "2025-09-29T22:00:00", "2025-09-29T23:15:00", model.Monday)
	assert.True(t, entriesOverlap(late, evening, ModeTimeOfDay))

	before := entry("D", "2025-09-29T21:00:00", "2025-09-29T23:00:00", model.Monday)
	assert.False(t, entriesOverlap(late, before, ModeTimeOfDay))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	assert.NoError(t, err)
	assert.Equal(t, ModeDateTime, m)

	m, err = ParseMode("TIME_OF_DAY")
	assert.NoError(t, err)
	assert.Equal(t, ModeTimeOfDay, m)
	assert.Equal(t, "time_of_day", m.String())

	_, err = ParseMode("weekly")
	assert.Error(t, err)
}

func TestParseTimeIn(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	got, ok := ParseTimeIn("2025-09-22T13:00:00", la)
	require.True(t, ok)
	assert.Equal(t, la, got.Location())
	assert.Equal(t, 13, got.Hour())

	got, ok = ParseTimeIn("2025-09-22T13:00:00Z", la)
	require.True(t, ok)
	assert.Equal(t, time.UTC, got.Location())

	_, ok = ParseTimeIn("tomorrow", la)
	assert.False(t, ok)
}
