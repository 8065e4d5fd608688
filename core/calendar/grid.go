// Package calendar folds tasks and focus sessions into per-day rollups.
package calendar

import (
	"time"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/pomodoro"
	"github.com/trezcool/taskademic/core/task"
)

// DayCell is one cell of a month grid. Blank cells pad the grid to whole weeks.
type DayCell struct {
	Date         core.Date   `json:"date"`
	Day          int         `json:"day"`
	Tasks        []task.Task `json:"tasks"`
	FocusMinutes int         `json:"focus_minutes"`
	Blank        bool        `json:"blank"`
}

// DayFocus is the focus time of one day.
type DayFocus struct {
	Date     core.Date `json:"date"`
	Minutes  int       `json:"minutes"`
	Sessions int       `json:"sessions"`
}

// MonthGrid lays out the given month as whole weeks starting on Sunday.
// Tasks land on the cell of their due date and sessions add their duration to the cell of the
// date they started on; anything dated outside the month is left out.
func MonthGrid(year int, month time.Month, tasks []task.Task, sessions []pomodoro.Session) []DayCell {
	first := core.NewDate(year, month, 1)
	year, month = first.Year, first.Month
	lead := int(first.Weekday())
	days := core.DaysIn(year, month)

	size := lead + days
	if rem := size % 7; rem != 0 {
		size += 7 - rem
	}

	cells := make([]DayCell, size)
	for i := range cells {
		cells[i].Blank = true
	}
	for d := 1; d <= days; d++ {
		cells[lead+d-1] = DayCell{
			Date:  core.NewDate(year, month, d),
			Day:   d,
			Tasks: []task.Task{},
		}
	}

	cellOf := func(d core.Date) *DayCell {
		if !d.InMonth(year, month) {
			return nil
		}
		return &cells[lead+d.Day-1]
	}
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		if c := cellOf(*t.DueDate); c != nil {
			c.Tasks = append(c.Tasks, t)
		}
	}
	for _, s := range sessions {
		if c := cellOf(s.Date()); c != nil {
			c.FocusMinutes += s.DurationMinutes
		}
	}
	return cells
}

// FocusByDay sums session durations per day, one entry per day from `from` to `to` inclusive.
// It returns nil if `to` is before `from`.
func FocusByDay(from, to core.Date, sessions []pomodoro.Session) []DayFocus {
	if to.Before(from) {
		return nil
	}
	days := make([]DayFocus, to.DaysSince(from)+1)
	for i := range days {
		days[i].Date = from.AddDays(i)
	}
	for _, s := range sessions {
		d := s.Date()
		if d.Before(from) || d.After(to) {
			continue
		}
		day := &days[d.DaysSince(from)]
		day.Minutes += s.DurationMinutes
		day.Sessions++
	}
	return days
}
