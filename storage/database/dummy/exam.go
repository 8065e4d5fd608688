package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/exam"
)

type examRepository struct {
	db *DB
}

var _ exam.Repository = (*examRepository)(nil) // interface compliance check

func NewExamRepository(db *DB) exam.Repository {
	return &examRepository{db: db}
}

func (repo *examRepository) CreatePlan(_ context.Context, p exam.Plan, _ ...core.DBExecutor) (exam.Plan, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	p.ID = newID()
	repo.db.exams[p.ID] = &p
	return p, nil
}

func (repo *examRepository) QueryPlans(_ context.Context, ownerID string, _ ...core.DBExecutor) ([]exam.Plan, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	plans := make([]exam.Plan, 0)
	for _, p := range repo.db.exams {
		if p.OwnerID == ownerID {
			plans = append(plans, *p)
		}
	}
	sort.Slice(plans, func(i, j int) bool {
		if c := plans[i].ExamDate.Compare(plans[j].ExamDate); c != 0 {
			return c < 0
		}
		return plans[i].CreatedAt.Before(plans[j].CreatedAt)
	})
	return plans, nil
}

func (repo *examRepository) GetPlan(_ context.Context, ownerID, id string, _ ...core.DBExecutor) (exam.Plan, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.exams[id]; ok && p.OwnerID == ownerID {
		return *p, nil
	}
	return exam.Plan{}, exam.ErrNotFound
}

func (repo *examRepository) UpdatePlan(_ context.Context, p exam.Plan, _ ...core.DBExecutor) (exam.Plan, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.exams[p.ID]
	if !ok || orig.OwnerID != p.OwnerID {
		return exam.Plan{}, exam.ErrNotFound
	}
	p.CreatedAt = orig.CreatedAt
	repo.db.exams[p.ID] = &p
	return p, nil
}

func (repo *examRepository) DeletePlan(_ context.Context, ownerID, id string, _ ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if p, ok := repo.db.exams[id]; !ok || p.OwnerID != ownerID {
		return exam.ErrNotFound
	}
	delete(repo.db.exams, id)
	return nil
}
