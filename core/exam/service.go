package exam

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/course"
	"github.com/trezcool/taskademic/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("exam plan not found")

	errCourseNotFound = "course not found"
)

type (
	Repository interface {
		CreatePlan(ctx context.Context, p Plan, exec ...core.DBExecutor) (Plan, error)
		// QueryPlans returns the owner's plans by ascending exam date.
		QueryPlans(ctx context.Context, ownerID string, exec ...core.DBExecutor) ([]Plan, error)
		GetPlan(ctx context.Context, ownerID, id string, exec ...core.DBExecutor) (Plan, error)
		UpdatePlan(ctx context.Context, p Plan, exec ...core.DBExecutor) (Plan, error)
		DeletePlan(ctx context.Context, ownerID, id string, exec ...core.DBExecutor) error
	}

	Service interface {
		Create(ctx context.Context, owner user.User, np NewPlan) (Plan, error)
		Query(ctx context.Context, owner user.User) ([]Plan, error)
		Get(ctx context.Context, owner user.User, id string) (Plan, error)
		Update(ctx context.Context, owner user.User, id string, up UpdatePlan) (Plan, error)
		Delete(ctx context.Context, owner user.User, id string) error
	}

	service struct {
		repo       Repository
		courseRepo course.Repository
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(repo Repository, courseRepo course.Repository) Service {
	return &service{repo: repo, courseRepo: courseRepo}
}

func (svc *service) checkCourse(ctx context.Context, owner user.User, courseID string) error {
	if courseID == "" {
		return nil
	}
	if _, err := svc.courseRepo.GetCourse(ctx, owner.ID, courseID); err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return core.NewFieldError("course_id", errCourseNotFound)
		}
		return errors.Wrap(err, "finding course")
	}
	return nil
}

func (svc *service) Create(ctx context.Context, owner user.User, np NewPlan) (Plan, error) {
	if err := svc.checkCourse(ctx, owner, np.CourseID); err != nil {
		return Plan{}, err
	}
	now := time.Now().UTC()
	return svc.repo.CreatePlan(ctx, Plan{
		OwnerID:    owner.ID,
		CourseID:   np.CourseID,
		Name:       np.Name,
		ExamDate:   np.ExamDate,
		StudyHours: np.StudyHours,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func (svc *service) Query(ctx context.Context, owner user.User) ([]Plan, error) {
	return svc.repo.QueryPlans(ctx, owner.ID)
}

func (svc *service) Get(ctx context.Context, owner user.User, id string) (Plan, error) {
	return svc.repo.GetPlan(ctx, owner.ID, id)
}

func (svc *service) Update(ctx context.Context, owner user.User, id string, up UpdatePlan) (Plan, error) {
	p, err := svc.repo.GetPlan(ctx, owner.ID, id)
	if err != nil {
		return Plan{}, err
	}
	if err = svc.checkCourse(ctx, owner, up.CourseID); err != nil {
		return Plan{}, err
	}
	p.CourseID = up.CourseID
	p.Name = up.Name
	p.ExamDate = up.ExamDate
	p.StudyHours = up.StudyHours
	p.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdatePlan(ctx, p)
}

func (svc *service) Delete(ctx context.Context, owner user.User, id string) error {
	return svc.repo.DeletePlan(ctx, owner.ID, id)
}
