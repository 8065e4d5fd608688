package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/task"
)

var priorityRanks = map[task.Priority]int{
	task.PriorityLow:    1,
	task.PriorityMedium: 2,
	task.PriorityHigh:   3,
}

type taskRepository struct {
	db *DB
}

var _ task.Repository = (*taskRepository)(nil) // interface compliance check

func NewTaskRepository(db *DB) task.Repository {
	return &taskRepository{db: db}
}

func (repo *taskRepository) CountActiveTasks(_ context.Context, ownerID string, _ ...core.DBExecutor) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var count int
	for _, t := range repo.db.tasks {
		if t.OwnerID == ownerID && t.IsActive() {
			count++
		}
	}
	return count, nil
}

func (repo *taskRepository) CreateTask(_ context.Context, t task.Task, _ ...core.DBExecutor) (task.Task, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	t.ID = newID()
	t = copyTask(t)
	repo.db.tasks[t.ID] = &t
	return copyTask(t), nil
}

func matchTask(t task.Task, filter *task.QueryFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Completed != nil && t.Completed != *filter.Completed {
		return false
	}
	if filter.CourseID != "" && t.CourseID != filter.CourseID {
		return false
	}
	if filter.ParentID != "" && t.ParentID != filter.ParentID {
		return false
	}
	if filter.Priority != task.PriorityNone && t.Priority != filter.Priority {
		return false
	}
	if filter.Tag != "" {
		var tagged bool
		for _, tag := range t.Tags {
			if tag == filter.Tag {
				tagged = true
				break
			}
		}
		if !tagged {
			return false
		}
	}
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(t.Title), search) && !strings.Contains(strings.ToLower(t.Description), search) {
			return false
		}
	}
	if !filter.DueFrom.IsZero() && (t.DueDate == nil || t.DueDate.Before(filter.DueFrom)) {
		return false
	}
	if !filter.DueTo.IsZero() && (t.DueDate == nil || t.DueDate.After(filter.DueTo)) {
		return false
	}
	return true
}

func (repo *taskRepository) QueryTasks(_ context.Context, ownerID string, filter *task.QueryFilter, ordering []core.DBOrdering, _ ...core.DBExecutor) ([]task.Task, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	tasks := make([]task.Task, 0)
	for _, t := range repo.db.tasks {
		if t.OwnerID == ownerID && matchTask(*t, filter) {
			tasks = append(tasks, copyTask(*t))
		}
	}

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.Before(tasks[j].CreatedAt) })
	sortBy(tasks, ordering, func(t task.Task, field string) interface{} {
		switch field {
		case "title":
			return t.Title
		case "due_date":
			if t.DueDate == nil {
				return core.Date{}
			}
			return *t.DueDate
		case "priority":
			return priorityRanks[t.Priority]
		case "completed":
			return t.Completed
		case "created_at":
			return t.CreatedAt
		case "updated_at":
			return t.UpdatedAt
		}
		return nil
	})
	return tasks, nil
}

func (repo *taskRepository) GetTask(_ context.Context, ownerID, id string, _ ...core.DBExecutor) (task.Task, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if t, ok := repo.db.tasks[id]; ok && t.OwnerID == ownerID {
		return copyTask(*t), nil
	}
	return task.Task{}, task.ErrNotFound
}

func (repo *taskRepository) UpdateTask(_ context.Context, t task.Task, _ ...core.DBExecutor) (task.Task, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.tasks[t.ID]
	if !ok || orig.OwnerID != t.OwnerID {
		return task.Task{}, task.ErrNotFound
	}
	t.CreatedAt = orig.CreatedAt
	t = copyTask(t)
	repo.db.tasks[t.ID] = &t
	return copyTask(t), nil
}

func (repo *taskRepository) DeleteTask(_ context.Context, ownerID, id string, _ ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	t, ok := repo.db.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return task.ErrNotFound
	}

	deleted := map[string]bool{id: true}
	for sid, sub := range repo.db.tasks {
		if sub.ParentID == id {
			deleted[sid] = true
		}
	}
	for tid := range deleted {
		delete(repo.db.tasks, tid)
	}
	for _, s := range repo.db.sessions {
		if deleted[s.TaskID] {
			s.TaskID = ""
		}
	}
	return nil
}

func copyTask(t task.Task) task.Task {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	t.Tags = append([]string{}, t.Tags...)
	return t
}
