package task

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/taskademic/core"
)

type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Task struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"-"`
	CourseID    string     `json:"course_id,omitempty"`
	ParentID    string     `json:"parent_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *core.Date `json:"due_date"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority,omitempty"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"` // UTC
	UpdatedAt   time.Time  `json:"updated_at"` // UTC
}

// IsActive reports whether the task counts against the active tasks limit.
func (t Task) IsActive() bool {
	return !t.Completed
}

// NewTask contains information needed to create a new Task.
type NewTask struct {
	Title       string     `json:"title" validate:"required,title"`
	Description string     `json:"description" validate:"description"`
	CourseID    string     `json:"course_id" validate:"omitempty,uuid"`
	ParentID    string     `json:"parent_id" validate:"omitempty,uuid"`
	DueDate     *core.Date `json:"due_date"`
	Priority    Priority   `json:"priority" validate:"omitempty,oneof=low medium high"`
	Tags        []string   `json:"tags" validate:"omitempty,max=10,dive,max=30"`
}

func (nt *NewTask) Validate(validate *validator.Validate) error {
	nt.Title = core.CleanString(nt.Title)
	nt.Description = core.CleanString(nt.Description)
	nt.CourseID = core.CleanString(nt.CourseID, true /* lower */)
	nt.ParentID = core.CleanString(nt.ParentID, true /* lower */)
	nt.Priority = Priority(core.CleanString(string(nt.Priority), true /* lower */))
	nt.Tags = core.CleanStrings(nt.Tags, true /* lower */)
	if nt.DueDate != nil && nt.DueDate.IsZero() {
		nt.DueDate = nil
	}
	return validate.Struct(nt)
}

// UpdateTask replaces the editable fields of an existing Task.
type UpdateTask struct {
	NewTask
	Completed bool `json:"completed"`
}

func (ut *UpdateTask) Validate(validate *validator.Validate) error {
	return ut.NewTask.Validate(validate)
}

// QueryFilter filters tasks. Only Completed, CourseID and ParentID are basic filters,
// the others are advanced ones.
type QueryFilter struct {
	Completed *bool     `query:"completed"`
	CourseID  string    `query:"course"`
	ParentID  string    `query:"parent"`
	Priority  Priority  `query:"priority"`
	Tag       string    `query:"tag"`
	Search    string    `query:"search"`
	DueFrom   core.Date `query:"due_from"`
	DueTo     core.Date `query:"due_to"`
}

func (qf *QueryFilter) Clean() {
	qf.CourseID = core.CleanString(qf.CourseID, true /* lower */)
	qf.ParentID = core.CleanString(qf.ParentID, true /* lower */)
	qf.Priority = Priority(core.CleanString(string(qf.Priority), true /* lower */))
	qf.Tag = core.CleanString(qf.Tag, true /* lower */)
	qf.Search = core.CleanString(qf.Search)
}

// IsAdvanced reports whether any advanced filter is set.
func (qf *QueryFilter) IsAdvanced() bool {
	return qf.Priority != PriorityNone || qf.Tag != "" || qf.Search != "" || !qf.DueFrom.IsZero() || !qf.DueTo.IsZero()
}
