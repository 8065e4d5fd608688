package course

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/plan"
	"github.com/trezcool/taskademic/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("course not found")
)

type (
	// Repository scopes every call to the courses of one owner.
	Repository interface {
		CountCourses(ctx context.Context, ownerID string, exec ...core.DBExecutor) (int, error)
		CreateCourse(ctx context.Context, c Course, exec ...core.DBExecutor) (Course, error)
		QueryCourses(ctx context.Context, ownerID string, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Course, error)
		GetCourse(ctx context.Context, ownerID, id string, exec ...core.DBExecutor) (Course, error)
		UpdateCourse(ctx context.Context, c Course, exec ...core.DBExecutor) (Course, error)
		// DeleteCourse deletes the course; its tasks and exam plans are kept, without a course.
		DeleteCourse(ctx context.Context, ownerID, id string, exec ...core.DBExecutor) error
	}

	Service interface {
		Create(ctx context.Context, owner user.User, nc NewCourse) (Course, error)
		Query(ctx context.Context, owner user.User, filter *QueryFilter, ordering []core.DBOrdering) ([]Course, error)
		Get(ctx context.Context, owner user.User, id string) (Course, error)
		Update(ctx context.Context, owner user.User, id string, uc UpdateCourse) (Course, error)
		Delete(ctx context.Context, owner user.User, id string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create creates a Course if the owner's plan allows one more.
func (svc *service) Create(ctx context.Context, owner user.User, nc NewCourse) (Course, error) {
	count, err := svc.repo.CountCourses(ctx, owner.ID)
	if err != nil {
		return Course{}, errors.Wrap(err, "counting courses")
	}
	if err = owner.Entitlements().RequireCapacity(plan.Courses, count); err != nil {
		return Course{}, err
	}

	now := time.Now().UTC()
	c := Course{
		OwnerID:   owner.ID,
		Name:      nc.Name,
		Color:     nc.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if c.Color == "" {
		c.Color = DefaultColor
	}
	return svc.repo.CreateCourse(ctx, c)
}

func (svc *service) Query(ctx context.Context, owner user.User, filter *QueryFilter, ordering []core.DBOrdering) ([]Course, error) {
	ordering = core.CleanOrderings(ordering, "name", "created_at", "updated_at")
	return svc.repo.QueryCourses(ctx, owner.ID, filter, ordering)
}

func (svc *service) Get(ctx context.Context, owner user.User, id string) (Course, error) {
	return svc.repo.GetCourse(ctx, owner.ID, id)
}

func (svc *service) Update(ctx context.Context, owner user.User, id string, uc UpdateCourse) (Course, error) {
	c, err := svc.repo.GetCourse(ctx, owner.ID, id)
	if err != nil {
		return Course{}, err
	}
	if uc.Name != "" {
		c.Name = uc.Name
	}
	if uc.Color != "" {
		c.Color = uc.Color
	}
	c.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateCourse(ctx, c)
}

func (svc *service) Delete(ctx context.Context, owner user.User, id string) error {
	return svc.repo.DeleteCourse(ctx, owner.ID, id)
}
