package calendar

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/plan"
	"github.com/trezcool/taskademic/core/pomodoro"
	"github.com/trezcool/taskademic/core/task"
	"github.com/trezcool/taskademic/core/user"
)

// MaxFocusRangeDays bounds the range of a focus chart.
const MaxFocusRangeDays = 366

var (
	errInvalidMonth = "month must be between 1 and 12"
	errInvalidYear  = "year must be between 1 and 9999"
	errInvalidRange = "invalid range"
)

// Month is the calendar of one month.
type Month struct {
	Year         int        `json:"year"`
	Month        time.Month `json:"month"`
	Cells        []DayCell  `json:"cells"`
	FocusMinutes int        `json:"focus_minutes"`
	TasksDue     int        `json:"tasks_due"`
}

type (
	Service interface {
		Month(ctx context.Context, owner user.User, year int, month time.Month) (Month, error)
		// Focus backs the performance charts, a premium feature.
		Focus(ctx context.Context, owner user.User, from, to core.Date) ([]DayFocus, error)
	}

	service struct {
		taskRepo    task.Repository
		sessionRepo pomodoro.Repository
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(taskRepo task.Repository, sessionRepo pomodoro.Repository) Service {
	return &service{taskRepo: taskRepo, sessionRepo: sessionRepo}
}

func (svc *service) Month(ctx context.Context, owner user.User, year int, month time.Month) (Month, error) {
	if month < time.January || month > time.December {
		return Month{}, core.NewFieldError("month", errInvalidMonth)
	}
	if year < 1 || year > 9999 {
		return Month{}, core.NewFieldError("year", errInvalidYear)
	}
	from := core.NewDate(year, month, 1)
	to := core.NewDate(year, month, core.DaysIn(year, month))

	tasks, err := svc.taskRepo.QueryTasks(ctx, owner.ID, &task.QueryFilter{DueFrom: from, DueTo: to}, nil)
	if err != nil {
		return Month{}, errors.Wrap(err, "querying tasks")
	}
	sessions, err := svc.sessionRepo.QuerySessions(ctx, owner.ID, &pomodoro.QueryFilter{From: from, To: to})
	if err != nil {
		return Month{}, errors.Wrap(err, "querying sessions")
	}

	m := Month{Year: year, Month: month, Cells: MonthGrid(year, month, tasks, sessions)}
	for _, c := range m.Cells {
		m.FocusMinutes += c.FocusMinutes
		m.TasksDue += len(c.Tasks)
	}
	return m, nil
}

func (svc *service) Focus(ctx context.Context, owner user.User, from, to core.Date) ([]DayFocus, error) {
	if err := owner.Entitlements().RequireFeature(plan.FeaturePerformanceCharts); err != nil {
		return nil, err
	}
	if from.IsZero() || to.IsZero() || to.Before(from) || to.DaysSince(from) >= MaxFocusRangeDays {
		return nil, core.NewFieldError("to", errInvalidRange)
	}
	sessions, err := svc.sessionRepo.QuerySessions(ctx, owner.ID, &pomodoro.QueryFilter{From: from, To: to})
	if err != nil {
		return nil, errors.Wrap(err, "querying sessions")
	}
	return FocusByDay(from, to, sessions), nil
}
