package studyplan

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/exam"
	"github.com/trezcool/taskademic/core/pomodoro"
	"github.com/trezcool/taskademic/core/task"
	"github.com/trezcool/taskademic/core/user"
)

type (
	Service interface {
		// Projections projects all exam plans of the owner as of `today`.
		Projections(ctx context.Context, owner user.User, today core.Date) ([]Projection, error)
	}

	service struct {
		examRepo    exam.Repository
		sessionRepo pomodoro.Repository
		taskRepo    task.Repository
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(examRepo exam.Repository, sessionRepo pomodoro.Repository, taskRepo task.Repository) Service {
	return &service{examRepo: examRepo, sessionRepo: sessionRepo, taskRepo: taskRepo}
}

func (svc *service) Projections(ctx context.Context, owner user.User, today core.Date) ([]Projection, error) {
	plans, err := svc.examRepo.QueryPlans(ctx, owner.ID)
	if err != nil {
		return nil, errors.Wrap(err, "querying exam plans")
	}
	if len(plans) == 0 {
		return []Projection{}, nil
	}
	sessions, err := svc.sessionRepo.QuerySessions(ctx, owner.ID, nil)
	if err != nil {
		return nil, errors.Wrap(err, "querying sessions")
	}
	tasks, err := svc.taskRepo.QueryTasks(ctx, owner.ID, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "querying tasks")
	}
	return Project(plans, sessions, tasks, today), nil
}
