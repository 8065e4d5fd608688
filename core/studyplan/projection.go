// Package studyplan projects study progress and pace for exam plans.
package studyplan

import (
	"math"
	"sort"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/exam"
	"github.com/trezcool/taskademic/core/pomodoro"
	"github.com/trezcool/taskademic/core/task"
)

type Urgency string

const (
	UrgencyGreen  Urgency = "green"
	UrgencyYellow Urgency = "yellow"
	UrgencyRed    Urgency = "red"
	UrgencyPast   Urgency = "past"
)

// urgency thresholds, in days remaining
const (
	redDays    = 2
	yellowDays = 7
)

// Projection is an exam plan with its progress and suggested pace as of a given day.
type Projection struct {
	exam.Plan
	ActualMinutes          int     `json:"actual_minutes"`
	TotalMinutes           float64 `json:"total_minutes"`
	RemainingMinutes       float64 `json:"remaining_minutes"`
	DaysRemaining          int     `json:"days_remaining"`
	SuggestedMinutesPerDay int     `json:"suggested_minutes_per_day"`
	ProgressPercent        int     `json:"progress_percent"`
	Urgency                Urgency `json:"urgency"`
	IsPast                 bool    `json:"is_past"`
}

// Project computes a Projection per plan as of `today`, upcoming exams first then past ones,
// each group by ascending exam date.
//
// A session counts toward a plan when its task belongs to the plan's course. Sessions without a
// task, on tasks without a course, or toward plans without a course never count.
func Project(plans []exam.Plan, sessions []pomodoro.Session, tasks []task.Task, today core.Date) []Projection {
	minutesByCourse := studiedMinutes(sessions, tasks)

	projs := make([]Projection, 0, len(plans))
	for _, p := range plans {
		var actual int
		if p.CourseID != "" {
			actual = minutesByCourse[p.CourseID]
		}
		projs = append(projs, project(p, actual, today))
	}

	sort.SliceStable(projs, func(i, j int) bool {
		if projs[i].IsPast != projs[j].IsPast {
			return !projs[i].IsPast
		}
		return projs[i].ExamDate.Before(projs[j].ExamDate)
	})
	return projs
}

func project(p exam.Plan, actual int, today core.Date) Projection {
	proj := Projection{
		Plan:          p,
		ActualMinutes: actual,
		TotalMinutes:  p.StudyHours * 60,
		IsPast:        p.ExamDate.Before(today),
	}

	proj.DaysRemaining = p.ExamDate.DaysSince(today)
	if proj.DaysRemaining < 1 {
		proj.DaysRemaining = 1
	}
	proj.RemainingMinutes = math.Max(0, proj.TotalMinutes-float64(actual))

	if !proj.IsPast {
		proj.SuggestedMinutesPerDay = int(math.Ceil(proj.RemainingMinutes / float64(proj.DaysRemaining)))
	}
	if proj.TotalMinutes > 0 {
		proj.ProgressPercent = int(math.Min(100, math.Round(float64(actual)/proj.TotalMinutes*100)))
	}

	switch {
	case proj.IsPast:
		proj.Urgency = UrgencyPast
	case proj.DaysRemaining <= redDays:
		proj.Urgency = UrgencyRed
	case proj.DaysRemaining <= yellowDays:
		proj.Urgency = UrgencyYellow
	default:
		proj.Urgency = UrgencyGreen
	}
	return proj
}

// studiedMinutes sums session durations by the course of their task.
func studiedMinutes(sessions []pomodoro.Session, tasks []task.Task) map[string]int {
	courseOf := make(map[string]string, len(tasks))
	for _, t := range tasks {
		if t.CourseID != "" {
			courseOf[t.ID] = t.CourseID
		}
	}
	minutes := make(map[string]int)
	for _, s := range sessions {
		if s.TaskID == "" {
			continue
		}
		if courseID, ok := courseOf[s.TaskID]; ok {
			minutes[courseID] += s.DurationMinutes
		}
	}
	return minutes
}
