package pomodoro

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/taskademic/core"
)

// MaxDurationMinutes caps a single session to one day.
const MaxDurationMinutes = 24 * 60

// Session is one completed focus period.
type Session struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"-"`
	TaskID          string    `json:"task_id,omitempty"`
	StartedAt       time.Time `json:"started_at"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"` // UTC
}

// Date is the calendar date the session counts for: the date part of StartedAt, as recorded.
func (s Session) Date() core.Date {
	return core.DateOf(s.StartedAt)
}

type NewSession struct {
	TaskID          string    `json:"task_id" validate:"omitempty,uuid"`
	StartedAt       time.Time `json:"started_at" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"gte=0,lte=1440"`
}

func (ns *NewSession) Validate(validate *validator.Validate) error {
	ns.TaskID = core.CleanString(ns.TaskID, true /* lower */)
	return validate.Struct(ns)
}

// QueryFilter selects sessions started between From and To, both inclusive and optional.
type QueryFilter struct {
	From   core.Date `query:"from"`
	To     core.Date `query:"to"`
	TaskID string    `query:"task"`
}

func (qf *QueryFilter) Clean() {
	qf.TaskID = core.CleanString(qf.TaskID, true /* lower */)
}

// Includes reports whether s matches the filter.
func (qf *QueryFilter) Includes(s Session) bool {
	if qf == nil {
		return true
	}
	d := s.Date()
	if !qf.From.IsZero() && d.Before(qf.From) {
		return false
	}
	if !qf.To.IsZero() && d.After(qf.To) {
		return false
	}
	return qf.TaskID == "" || s.TaskID == qf.TaskID
}
