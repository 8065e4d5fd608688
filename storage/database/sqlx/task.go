package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/task"
)

const taskColumns = `id, owner_id, course_id, parent_id, title, description, due_date, completed, priority, tags, created_at, updated_at`

// priority ordering follows the rank of the enum, not its name.
const priorityRank = "CASE priority WHEN 'low' THEN 1 WHEN 'medium' THEN 2 WHEN 'high' THEN 3 END"

type taskRow struct {
	ID          string         `db:"id"`
	OwnerID     string         `db:"owner_id"`
	CourseID    null.String    `db:"course_id"`
	ParentID    null.String    `db:"parent_id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	DueDate     core.Date      `db:"due_date"`
	Completed   bool           `db:"completed"`
	Priority    null.String    `db:"priority"`
	Tags        pq.StringArray `db:"tags"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func toTaskRow(t task.Task) taskRow {
	row := taskRow{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		CourseID:    null.NewString(t.CourseID, t.CourseID != ""),
		ParentID:    null.NewString(t.ParentID, t.ParentID != ""),
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    null.NewString(string(t.Priority), t.Priority != task.PriorityNone),
		Tags:        t.Tags,
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
	if t.DueDate != nil {
		row.DueDate = *t.DueDate
	}
	if row.Tags == nil {
		row.Tags = []string{}
	}
	return row
}

func (r taskRow) toTask() task.Task {
	t := task.Task{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		CourseID:    r.CourseID.String,
		ParentID:    r.ParentID.String,
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		Priority:    task.Priority(r.Priority.String),
		Tags:        r.Tags,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
	if !r.DueDate.IsZero() {
		due := r.DueDate
		t.DueDate = &due
	}
	return t
}

type taskRepository struct {
	repository
}

var _ task.Repository = (*taskRepository)(nil) // interface compliance check

func NewTaskRepository(exec core.DBExecutor) task.Repository {
	return &taskRepository{repository{exec: exec}}
}

func (repo *taskRepository) CountActiveTasks(ctx context.Context, ownerID string, exec ...core.DBExecutor) (int, error) {
	n, err := repo.count(ctx, exec, "SELECT COUNT(*) FROM task WHERE owner_id = :owner_id AND NOT completed", map[string]interface{}{"owner_id": ownerID})
	if err != nil {
		return 0, errors.Wrap(err, "counting active tasks")
	}
	return n, nil
}

func (repo *taskRepository) CreateTask(ctx context.Context, t task.Task, exec ...core.DBExecutor) (task.Task, error) {
	t.ID = uuid.New().String()
	q := "INSERT INTO task (" + taskColumns + `) VALUES (
		:id, :owner_id, :course_id, :parent_id, :title, :description, :due_date, :completed, :priority, :tags, :created_at, :updated_at
	)`
	row := toTaskRow(t)
	if _, err := repo.execute(ctx, exec, q, row); err != nil {
		return task.Task{}, errors.Wrap(err, "inserting task")
	}
	return row.toTask(), nil
}

func (repo *taskRepository) QueryTasks(ctx context.Context, ownerID string, filter *task.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]task.Task, error) {
	w := newWhere("owner_id = :owner_id", map[string]interface{}{"owner_id": ownerID})
	if filter != nil {
		if filter.Completed != nil {
			w.and("completed = :completed", "completed", *filter.Completed)
		}
		if filter.CourseID != "" {
			if !isUUID(filter.CourseID) {
				return []task.Task{}, nil
			}
			w.and("course_id = :course_id", "course_id", filter.CourseID)
		}
		if filter.ParentID != "" {
			if !isUUID(filter.ParentID) {
				return []task.Task{}, nil
			}
			w.and("parent_id = :parent_id", "parent_id", filter.ParentID)
		}
		if filter.Priority != task.PriorityNone {
			w.and("priority = :priority", "priority", string(filter.Priority))
		}
		if filter.Tag != "" {
			w.and(":tag = ANY(tags)", "tag", filter.Tag)
		}
		if filter.Search != "" {
			w.and("(title ILIKE :search OR description ILIKE :search)", "search", "%"+filter.Search+"%")
		}
		if !filter.DueFrom.IsZero() {
			w.and("due_date >= :due_from", "due_from", filter.DueFrom)
		}
		if !filter.DueTo.IsZero() {
			w.and("due_date <= :due_to", "due_to", filter.DueTo)
		}
	}

	for i, ord := range ordering {
		if ord.Field == "priority" {
			ordering[i].Field = priorityRank
		}
	}
	q := "SELECT " + taskColumns + " FROM task" + w.String() + core.OrderBy(ordering, core.DBOrdering{Field: "created_at", Ascending: true})

	var rows []taskRow
	if err := repo.selectAll(ctx, exec, &rows, q, w.params); err != nil {
		return nil, errors.Wrap(err, "querying tasks")
	}
	tasks := make([]task.Task, 0, len(rows))
	for _, r := range rows {
		tasks = append(tasks, r.toTask())
	}
	return tasks, nil
}

func (repo *taskRepository) GetTask(ctx context.Context, ownerID, id string, exec ...core.DBExecutor) (task.Task, error) {
	if !isUUID(id) {
		return task.Task{}, task.ErrNotFound
	}
	q := "SELECT " + taskColumns + " FROM task WHERE id = :id AND owner_id = :owner_id"
	var rows []taskRow
	if err := repo.selectAll(ctx, exec, &rows, q, map[string]interface{}{"id": id, "owner_id": ownerID}); err != nil {
		return task.Task{}, errors.Wrap(err, "finding task")
	}
	if len(rows) == 0 {
		return task.Task{}, task.ErrNotFound
	}
	return rows[0].toTask(), nil
}

func (repo *taskRepository) UpdateTask(ctx context.Context, t task.Task, exec ...core.DBExecutor) (task.Task, error) {
	q := `UPDATE task SET
		course_id = :course_id, parent_id = :parent_id, title = :title, description = :description,
		due_date = :due_date, completed = :completed, priority = :priority, tags = :tags, updated_at = :updated_at
		WHERE id = :id AND owner_id = :owner_id`
	row := toTaskRow(t)
	n, err := repo.execute(ctx, exec, q, row)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "updating task")
	}
	if n == 0 {
		return task.Task{}, task.ErrNotFound
	}
	return row.toTask(), nil
}

// DeleteTask relies on ON DELETE CASCADE for subtasks and ON DELETE SET NULL for sessions.
func (repo *taskRepository) DeleteTask(ctx context.Context, ownerID, id string, exec ...core.DBExecutor) error {
	if !isUUID(id) {
		return task.ErrNotFound
	}
	n, err := repo.execute(ctx, exec, "DELETE FROM task WHERE id = :id AND owner_id = :owner_id", map[string]interface{}{"id": id, "owner_id": ownerID})
	if err != nil {
		return errors.Wrap(err, "deleting task")
	}
	if n == 0 {
		return task.ErrNotFound
	}
	return nil
}
