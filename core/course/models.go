package course

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/taskademic/core"
)

// DefaultColor is given to courses created without one.
const DefaultColor = "#4F46E5"

type Course struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"-"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name  string `json:"name" validate:"required,title"`
	Color string `json:"color" validate:"omitempty,hexcolor6"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Color = core.CleanString(nc.Color, true /* lower */)
	return validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
// Empty fields are left unchanged.
type UpdateCourse struct {
	Name  string `json:"name" validate:"omitempty,title"`
	Color string `json:"color" validate:"omitempty,hexcolor6"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate) error {
	uc.Name = core.CleanString(uc.Name)
	uc.Color = core.CleanString(uc.Color, true /* lower */)
	return validate.Struct(uc)
}

type QueryFilter struct {
	Search string `query:"search"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
