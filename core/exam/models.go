package exam

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/taskademic/core"
)

// Plan is a study target ahead of an exam.
type Plan struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"-"`
	CourseID   string    `json:"course_id,omitempty"`
	Name       string    `json:"name"`
	ExamDate   core.Date `json:"exam_date"`
	StudyHours float64   `json:"study_hours"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

type NewPlan struct {
	CourseID   string    `json:"course_id" validate:"omitempty,uuid"`
	Name       string    `json:"name" validate:"required,title"`
	ExamDate   core.Date `json:"exam_date" validate:"required"`
	StudyHours float64   `json:"study_hours" validate:"gt=0,lte=1000"`
}

func (np *NewPlan) Validate(validate *validator.Validate) error {
	np.CourseID = core.CleanString(np.CourseID, true /* lower */)
	np.Name = core.CleanString(np.Name)
	return validate.Struct(np)
}

// UpdatePlan replaces all editable fields of a Plan.
type UpdatePlan NewPlan

func (up *UpdatePlan) Validate(validate *validator.Validate) error {
	return (*NewPlan)(up).Validate(validate)
}
