package pomodoro

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/plan"
	"github.com/trezcool/taskademic/core/task"
	"github.com/trezcool/taskademic/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("session not found")

	errTaskNotFound = "task not found"
)

type (
	Repository interface {
		CreateSession(ctx context.Context, s Session, exec ...core.DBExecutor) (Session, error)
		// QuerySessions returns the owner's sessions, most recent first.
		QuerySessions(ctx context.Context, ownerID string, filter *QueryFilter, exec ...core.DBExecutor) ([]Session, error)
		GetSession(ctx context.Context, ownerID, id string, exec ...core.DBExecutor) (Session, error)
		DeleteSession(ctx context.Context, ownerID, id string, exec ...core.DBExecutor) error
	}

	Service interface {
		Create(ctx context.Context, owner user.User, ns NewSession) (Session, error)
		Query(ctx context.Context, owner user.User, filter *QueryFilter) ([]Session, error)
		Delete(ctx context.Context, owner user.User, id string) error
	}

	service struct {
		repo     Repository
		taskRepo task.Repository
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(repo Repository, taskRepo task.Repository) Service {
	return &service{repo: repo, taskRepo: taskRepo}
}

// Create records a session. Linking it to a task requires the pomodoro_link feature.
func (svc *service) Create(ctx context.Context, owner user.User, ns NewSession) (Session, error) {
	if ns.TaskID != "" {
		if err := owner.Entitlements().RequireFeature(plan.FeaturePomodoroLink); err != nil {
			return Session{}, err
		}
		if _, err := svc.taskRepo.GetTask(ctx, owner.ID, ns.TaskID); err != nil {
			if errors.Cause(err) == task.ErrNotFound {
				return Session{}, core.NewFieldError("task_id", errTaskNotFound)
			}
			return Session{}, errors.Wrap(err, "finding task")
		}
	}
	if ns.DurationMinutes < 0 {
		ns.DurationMinutes = 0
	}
	return svc.repo.CreateSession(ctx, Session{
		OwnerID:         owner.ID,
		TaskID:          ns.TaskID,
		StartedAt:       ns.StartedAt,
		DurationMinutes: ns.DurationMinutes,
		CreatedAt:       time.Now().UTC(),
	})
}

func (svc *service) Query(ctx context.Context, owner user.User, filter *QueryFilter) ([]Session, error) {
	return svc.repo.QuerySessions(ctx, owner.ID, filter)
}

func (svc *service) Delete(ctx context.Context, owner user.User, id string) error {
	return svc.repo.DeleteSession(ctx, owner.ID, id)
}
