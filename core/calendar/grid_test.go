package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/pomodoro"
	"github.com/trezcool/taskademic/core/task"
)

func due(s string) *core.Date {
	d, err := core.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestMonthGrid_layout(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    time.Month
		wantLead int
		wantLen  int
	}{
		{name: "june 2025 starts on sunday", year: 2025, month: time.June, wantLead: 0, wantLen: 35},
		{name: "march 2025 starts on saturday", year: 2025, month: time.March, wantLead: 6, wantLen: 42},
		{name: "february 2026 fits 4 weeks", year: 2026, month: time.February, wantLead: 0, wantLen: 28},
		{name: "leap february", year: 2024, month: time.February, wantLead: 4, wantLen: 35},
		{name: "december", year: 2025, month: time.December, wantLead: 1, wantLen: 35},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := MonthGrid(tt.year, tt.month, nil, nil)

			assert.Len(t, cells, tt.wantLen)
			assert.Zero(t, len(cells)%7)

			var lead int
			for lead < len(cells) && cells[lead].Blank {
				lead++
			}
			assert.Equal(t, tt.wantLead, lead)
			assert.Equal(t, int(core.NewDate(tt.year, tt.month, 1).Weekday()), lead)

			days := core.DaysIn(tt.year, tt.month)
			for d := 1; d <= days; d++ {
				c := cells[lead+d-1]
				require.False(t, c.Blank)
				assert.Equal(t, d, c.Day)
				assert.Equal(t, core.NewDate(tt.year, tt.month, d), c.Date)
				assert.Equal(t, 0, c.FocusMinutes)
				assert.Empty(t, c.Tasks)
			}
			for _, c := range cells[lead+days:] {
				assert.True(t, c.Blank)
				assert.True(t, c.Date.IsZero())
			}
		})
	}
}

func TestMonthGrid_allMonths(t *testing.T) {
	for year := 1999; year <= 2031; year++ {
		for month := time.January; month <= time.December; month++ {
			cells := MonthGrid(year, month, nil, nil)
			if len(cells)%7 != 0 {
				t.Fatalf("MonthGrid(%d, %s): %d cells, want a multiple of 7", year, month, len(cells))
			}
			lead := int(core.NewDate(year, month, 1).Weekday())
			if lead > 0 && !cells[lead-1].Blank || cells[lead].Blank || cells[lead].Day != 1 {
				t.Fatalf("MonthGrid(%d, %s): day 1 not at index %d", year, month, lead)
			}
		}
	}
}

func TestMonthGrid_attribution(t *testing.T) {
	plus2 := time.FixedZone("UTC+2", 2*60*60)
	tasks := []task.Task{
		{ID: "t1", Title: "essay", DueDate: due("2025-03-15")},
		{ID: "t2", Title: "lab", DueDate: due("2025-03-15"), Completed: true},
		{ID: "t3", Title: "no due date"},
		{ID: "t4", Title: "april", DueDate: due("2025-04-01")},
		{ID: "t5", Title: "first", DueDate: due("2025-03-01")},
	}
	sessions := []pomodoro.Session{
		{ID: "s1", StartedAt: time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC), DurationMinutes: 25},
		{ID: "s2", StartedAt: time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC), DurationMinutes: 50},
		// 2025-03-15 locally, even though it is already the 16th in UTC
		{ID: "s3", StartedAt: time.Date(2025, 3, 15, 23, 30, 0, 0, plus2).In(plus2), DurationMinutes: 5},
		{ID: "s4", StartedAt: time.Date(2025, 2, 28, 23, 0, 0, 0, time.UTC), DurationMinutes: 90},
		{ID: "s5", StartedAt: time.Date(2025, 3, 31, 7, 0, 0, 0, time.UTC), DurationMinutes: 0},
	}

	cells := MonthGrid(2025, time.March, tasks, sessions)
	lead := int(time.Saturday)

	ides := cells[lead+14]
	assert.Equal(t, "2025-03-15", ides.Date.String())
	assert.Equal(t, 80, ides.FocusMinutes)
	if assert.Len(t, ides.Tasks, 2) {
		assert.Equal(t, "t1", ides.Tasks[0].ID)
		assert.Equal(t, "t2", ides.Tasks[1].ID)
	}

	first := cells[lead]
	assert.Equal(t, 0, first.FocusMinutes)
	if assert.Len(t, first.Tasks, 1) {
		assert.Equal(t, "t5", first.Tasks[0].ID)
	}

	var total, dueCount int
	for _, c := range cells {
		total += c.FocusMinutes
		dueCount += len(c.Tasks)
	}
	assert.Equal(t, 80, total)
	assert.Equal(t, 3, dueCount)
}

func TestMonthGrid_idempotent(t *testing.T) {
	tasks := []task.Task{{ID: "t1", DueDate: due("2025-05-10")}}
	sessions := []pomodoro.Session{{ID: "s1", StartedAt: time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC), DurationMinutes: 25}}
	assert.Equal(t, MonthGrid(2025, time.May, tasks, sessions), MonthGrid(2025, time.May, tasks, sessions))
}

func TestFocusByDay(t *testing.T) {
	from, to := *due("2025-03-30"), *due("2025-04-02")
	sessions := []pomodoro.Session{
		{StartedAt: time.Date(2025, 3, 29, 10, 0, 0, 0, time.UTC), DurationMinutes: 25},
		{StartedAt: time.Date(2025, 3, 30, 10, 0, 0, 0, time.UTC), DurationMinutes: 25},
		{StartedAt: time.Date(2025, 3, 30, 18, 0, 0, 0, time.UTC), DurationMinutes: 50},
		{StartedAt: time.Date(2025, 4, 2, 23, 59, 0, 0, time.UTC), DurationMinutes: 15},
		{StartedAt: time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC), DurationMinutes: 15},
	}

	got := FocusByDay(from, to, sessions)
	want := []DayFocus{
		{Date: *due("2025-03-30"), Minutes: 75, Sessions: 2},
		{Date: *due("2025-03-31")},
		{Date: *due("2025-04-01")},
		{Date: *due("2025-04-02"), Minutes: 15, Sessions: 1},
	}
	assert.Equal(t, want, got)

	assert.Nil(t, FocusByDay(to, from, sessions))
	assert.Len(t, FocusByDay(from, from, nil), 1)
}
