package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/course"
)

const courseColumns = `id, owner_id, name, color, created_at, updated_at`

type courseRow struct {
	ID        string    `db:"id"`
	OwnerID   string    `db:"owner_id"`
	Name      string    `db:"name"`
	Color     string    `db:"color"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func toCourseRow(c course.Course) courseRow {
	return courseRow{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Name:      c.Name,
		Color:     c.Color,
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
}

func (r courseRow) toCourse() course.Course {
	return course.Course{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Name:      r.Name,
		Color:     r.Color,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

type courseRepository struct {
	repository
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(exec core.DBExecutor) course.Repository {
	return &courseRepository{repository{exec: exec}}
}

func (repo *courseRepository) CountCourses(ctx context.Context, ownerID string, exec ...core.DBExecutor) (int, error) {
	n, err := repo.count(ctx, exec, "SELECT COUNT(*) FROM course WHERE owner_id = :owner_id", map[string]interface{}{"owner_id": ownerID})
	if err != nil {
		return 0, errors.Wrap(err, "counting courses")
	}
	return n, nil
}

func (repo *courseRepository) CreateCourse(ctx context.Context, c course.Course, exec ...core.DBExecutor) (course.Course, error) {
	c.ID = uuid.New().String()
	q := "INSERT INTO course (" + courseColumns + ") VALUES (:id, :owner_id, :name, :color, :created_at, :updated_at)"
	row := toCourseRow(c)
	if _, err := repo.execute(ctx, exec, q, row); err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return row.toCourse(), nil
}

func (repo *courseRepository) QueryCourses(ctx context.Context, ownerID string, filter *course.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]course.Course, error) {
	w := newWhere("owner_id = :owner_id", map[string]interface{}{"owner_id": ownerID})
	if filter != nil && filter.Search != "" {
		w.and("name ILIKE :search", "search", "%"+filter.Search+"%")
	}

	q := "SELECT " + courseColumns + " FROM course" + w.String() + core.OrderBy(ordering, core.DBOrdering{Field: "created_at", Ascending: true})
	var rows []courseRow
	if err := repo.selectAll(ctx, exec, &rows, q, w.params); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, r := range rows {
		courses = append(courses, r.toCourse())
	}
	return courses, nil
}

func (repo *courseRepository) GetCourse(ctx context.Context, ownerID, id string, exec ...core.DBExecutor) (course.Course, error) {
	if !isUUID(id) {
		return course.Course{}, course.ErrNotFound
	}
	q := "SELECT " + courseColumns + " FROM course WHERE id = :id AND owner_id = :owner_id"
	var rows []courseRow
	if err := repo.selectAll(ctx, exec, &rows, q, map[string]interface{}{"id": id, "owner_id": ownerID}); err != nil {
		return course.Course{}, errors.Wrap(err, "finding course")
	}
	if len(rows) == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return rows[0].toCourse(), nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, c course.Course, exec ...core.DBExecutor) (course.Course, error) {
	q := "UPDATE course SET name = :name, color = :color, updated_at = :updated_at WHERE id = :id AND owner_id = :owner_id"
	row := toCourseRow(c)
	n, err := repo.execute(ctx, exec, q, row)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if n == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return row.toCourse(), nil
}

// DeleteCourse relies on ON DELETE SET NULL to detach tasks and exam plans.
func (repo *courseRepository) DeleteCourse(ctx context.Context, ownerID, id string, exec ...core.DBExecutor) error {
	if !isUUID(id) {
		return course.ErrNotFound
	}
	n, err := repo.execute(ctx, exec, "DELETE FROM course WHERE id = :id AND owner_id = :owner_id", map[string]interface{}{"id": id, "owner_id": ownerID})
	if err != nil {
		return errors.Wrap(err, "deleting course")
	}
	if n == 0 {
		return course.ErrNotFound
	}
	return nil
}
