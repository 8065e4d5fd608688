package task

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/course"
	"github.com/trezcool/taskademic/core/plan"
	"github.com/trezcool/taskademic/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("task not found")

	errCourseNotFound  = "course not found"
	errParentNotFound  = "parent task not found"
	errParentIsSubtask = "subtasks cannot have subtasks"
	errParentIsItself  = "a task cannot be its own parent"
	errHasSubtasks     = "tasks with subtasks cannot become subtasks"
)

type (
	// Repository scopes every call to the tasks of one owner.
	Repository interface {
		// CountActiveTasks counts the owner's tasks that are not completed.
		CountActiveTasks(ctx context.Context, ownerID string, exec ...core.DBExecutor) (int, error)
		CreateTask(ctx context.Context, t Task, exec ...core.DBExecutor) (Task, error)
		QueryTasks(ctx context.Context, ownerID string, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Task, error)
		GetTask(ctx context.Context, ownerID, id string, exec ...core.DBExecutor) (Task, error)
		UpdateTask(ctx context.Context, t Task, exec ...core.DBExecutor) (Task, error)
		// DeleteTask deletes the task along with its subtasks; linked sessions are kept, unlinked.
		DeleteTask(ctx context.Context, ownerID, id string, exec ...core.DBExecutor) error
	}

	Service interface {
		Create(ctx context.Context, owner user.User, nt NewTask) (Task, error)
		Query(ctx context.Context, owner user.User, filter *QueryFilter, ordering []core.DBOrdering) ([]Task, error)
		Get(ctx context.Context, owner user.User, id string) (Task, error)
		Update(ctx context.Context, owner user.User, id string, ut UpdateTask) (Task, error)
		Toggle(ctx context.Context, owner user.User, id string) (Task, error)
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

// checkFeatures refuses premium fields the owner's plan does not unlock.
// Only values that differ from `orig` are checked, so that a downgraded user can still
// edit tasks created while on premium.
func (svc *service) checkFeatures(owner user.User, nt NewTask, orig *Task) error {
	ents := owner.Entitlements()
	changed := func(f plan.Feature, set, same bool) error {
		if set && (orig == nil || !same) {
			return ents.RequireFeature(f)
		}
		return nil
	}

	var origPriority Priority
	var origParent string
	var origTags []string
	if orig != nil {
		origPriority, origParent, origTags = orig.Priority, orig.ParentID, orig.Tags
	}
	if err := changed(plan.FeaturePriorities, nt.Priority != PriorityNone, nt.Priority == origPriority); err != nil {
		return err
	}
	if err := changed(plan.FeatureTags, len(nt.Tags) > 0, sameTags(nt.Tags, origTags)); err != nil {
		return err
	}
	return changed(plan.FeatureSubtasks, nt.ParentID != "", nt.ParentID == origParent)
}

// checkRelations ensures the course and the parent task exist and belong to the owner.
func (svc *service) checkRelations(ctx context.Context, owner user.User, nt NewTask, self *Task) error {
	if nt.CourseID != "" {
		if _, err := svc.courseRepo.GetCourse(ctx, owner.ID, nt.CourseID); err != nil {
			if errors.Cause(err) == course.ErrNotFound {
				return core.NewFieldError("course_id", errCourseNotFound)
			}
			return errors.Wrap(err, "finding course")
		}
	}
	if nt.ParentID == "" {
		return nil
	}
	if self != nil && nt.ParentID == self.ID {
		return core.NewFieldError("parent_id", errParentIsItself)
	}
	parent, err := svc.repo.GetTask(ctx, owner.ID, nt.ParentID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return core.NewFieldError("parent_id", errParentNotFound)
		}
		return errors.Wrap(err, "finding parent task")
	}
	if parent.ParentID != "" {
		return core.NewFieldError("parent_id", errParentIsSubtask)
	}
	if self != nil && self.ParentID == "" {
		subtasks, err := svc.repo.QueryTasks(ctx, owner.ID, &QueryFilter{ParentID: self.ID}, nil)
		if err != nil {
			return errors.Wrap(err, "querying subtasks")
		}
		if len(subtasks) > 0 {
			return core.NewFieldError("parent_id", errHasSubtasks)
		}
	}
	return nil
}

// checkCapacity refuses one more active task if the owner's plan is at its limit.
func (svc *service) checkCapacity(ctx context.Context, owner user.User) error {
	count, err := svc.repo.CountActiveTasks(ctx, owner.ID)
	if err != nil {
		return errors.Wrap(err, "counting active tasks")
	}
	return owner.Entitlements().RequireCapacity(plan.ActiveTasks, count)
}

func (svc *service) Create(ctx context.Context, owner user.User, nt NewTask) (Task, error) {
	if err := svc.checkFeatures(owner, nt, nil); err != nil {
		return Task{}, err
	}
	if err := svc.checkCapacity(ctx, owner); err != nil {
		return Task{}, err
	}
	if err := svc.checkRelations(ctx, owner, nt, nil); err != nil {
		return Task{}, err
	}

	now := time.Now().UTC()
	t := Task{
		OwnerID:     owner.ID,
		CourseID:    nt.CourseID,
		ParentID:    nt.ParentID,
		Title:       nt.Title,
		Description: nt.Description,
		DueDate:     nt.DueDate,
		Priority:    nt.Priority,
		Tags:        nt.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return svc.repo.CreateTask(ctx, t)
}

// Query lists the owner's tasks. Advanced filters require the advanced_filters feature.
func (svc *service) Query(ctx context.Context, owner user.User, filter *QueryFilter, ordering []core.DBOrdering) ([]Task, error) {
	if filter != nil && filter.IsAdvanced() {
		if err := owner.Entitlements().RequireFeature(plan.FeatureAdvancedFilters); err != nil {
			return nil, err
		}
	}
	ordering = core.CleanOrderings(ordering, "title", "due_date", "priority", "completed", "created_at", "updated_at")
	return svc.repo.QueryTasks(ctx, owner.ID, filter, ordering)
}

func (svc *service) Get(ctx context.Context, owner user.User, id string) (Task, error) {
	return svc.repo.GetTask(ctx, owner.ID, id)
}

func (svc *service) Update(ctx context.Context, owner user.User, id string, ut UpdateTask) (Task, error) {
	t, err := svc.repo.GetTask(ctx, owner.ID, id)
	if err != nil {
		return Task{}, err
	}
	if err = svc.checkFeatures(owner, ut.NewTask, &t); err != nil {
		return Task{}, err
	}
	if t.Completed && !ut.Completed {
		// re-opening adds an active task
		if err = svc.checkCapacity(ctx, owner); err != nil {
			return Task{}, err
		}
	}
	if err = svc.checkRelations(ctx, owner, ut.NewTask, &t); err != nil {
		return Task{}, err
	}

	t.CourseID = ut.CourseID
	t.ParentID = ut.ParentID
	t.Title = ut.Title
	t.Description = ut.Description
	t.DueDate = ut.DueDate
	t.Priority = ut.Priority
	t.Tags = ut.Tags
	if t.Tags == nil {
		t.Tags = []string{}
	}
	t.Completed = ut.Completed
	t.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTask(ctx, t)
}

// Toggle flips the completion state of a task.
func (svc *service) Toggle(ctx context.Context, owner user.User, id string) (Task, error) {
	t, err := svc.repo.GetTask(ctx, owner.ID, id)
	if err != nil {
		return Task{}, err
	}
	if t.Completed {
		if err = svc.checkCapacity(ctx, owner); err != nil {
			return Task{}, err
		}
	}
	t.Completed = !t.Completed
	t.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTask(ctx, t)
}

func (svc *service) Delete(ctx context.Context, owner user.User, id string) error {
	return svc.repo.DeleteTask(ctx, owner.ID, id)
}

func sameTags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(b))
	for _, tag := range b {
		set[tag] = struct{}{}
	}
	for _, tag := range a {
		if _, ok := set[tag]; !ok {
			return false
		}
	}
	return true
}
