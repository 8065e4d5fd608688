package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/exam"
)

const examColumns = `id, owner_id, course_id, name, exam_date, study_hours, created_at, updated_at`

type examRow struct {
	ID         string      `db:"id"`
	OwnerID    string      `db:"owner_id"`
	CourseID   null.String `db:"course_id"`
	Name       string      `db:"name"`
	ExamDate   core.Date   `db:"exam_date"`
	StudyHours float64     `db:"study_hours"`
	CreatedAt  time.Time   `db:"created_at"`
	UpdatedAt  time.Time   `db:"updated_at"`
}

func toExamRow(p exam.Plan) examRow {
	return examRow{
		ID:         p.ID,
		OwnerID:    p.OwnerID,
		CourseID:   null.NewString(p.CourseID, p.CourseID != ""),
		Name:       p.Name,
		ExamDate:   p.ExamDate,
		StudyHours: p.StudyHours,
		CreatedAt:  p.CreatedAt.UTC(),
		UpdatedAt:  p.UpdatedAt.UTC(),
	}
}

func (r examRow) toPlan() exam.Plan {
	return exam.Plan{
		ID:         r.ID,
		OwnerID:    r.OwnerID,
		CourseID:   r.CourseID.String,
		Name:       r.Name,
		ExamDate:   r.ExamDate,
		StudyHours: r.StudyHours,
		CreatedAt:  r.CreatedAt.UTC(),
		UpdatedAt:  r.UpdatedAt.UTC(),
	}
}

type examRepository struct {
	repository
}

var _ exam.Repository = (*examRepository)(nil) // interface compliance check

func NewExamRepository(exec core.DBExecutor) exam.Repository {
	return &examRepository{repository{exec: exec}}
}

func (repo *examRepository) CreatePlan(ctx context.Context, p exam.Plan, exec ...core.DBExecutor) (exam.Plan, error) {
	p.ID = uuid.New().String()
	q := "INSERT INTO exam_plan (" + examColumns + ") VALUES (:id, :owner_id, :course_id, :name, :exam_date, :study_hours, :created_at, :updated_at)"
	row := toExamRow(p)
	if _, err := repo.execute(ctx, exec, q, row); err != nil {
		return exam.Plan{}, errors.Wrap(err, "inserting exam plan")
	}
	return row.toPlan(), nil
}

func (repo *examRepository) QueryPlans(ctx context.Context, ownerID string, exec ...core.DBExecutor) ([]exam.Plan, error) {
	q := "SELECT " + examColumns + " FROM exam_plan WHERE owner_id = :owner_id ORDER BY exam_date ASC, created_at ASC"
	var rows []examRow
	if err := repo.selectAll(ctx, exec, &rows, q, map[string]interface{}{"owner_id": ownerID}); err != nil {
		return nil, errors.Wrap(err, "querying exam plans")
	}
	plans := make([]exam.Plan, 0, len(rows))
	for _, r := range rows {
		plans = append(plans, r.toPlan())
	}
	return plans, nil
}

func (repo *examRepository) GetPlan(ctx context.Context, ownerID, id string, exec ...core.DBExecutor) (exam.Plan, error) {
	if !isUUID(id) {
		return exam.Plan{}, exam.ErrNotFound
	}
	q := "SELECT " + examColumns + " FROM exam_plan WHERE id = :id AND owner_id = :owner_id"
	var rows []examRow
	if err := repo.selectAll(ctx, exec, &rows, q, map[string]interface{}{"id": id, "owner_id": ownerID}); err != nil {
		return exam.Plan{}, errors.Wrap(err, "finding exam plan")
	}
	if len(rows) == 0 {
		return exam.Plan{}, exam.ErrNotFound
	}
	return rows[0].toPlan(), nil
}

func (repo *examRepository) UpdatePlan(ctx context.Context, p exam.Plan, exec ...core.DBExecutor) (exam.Plan, error) {
	q := `UPDATE exam_plan SET
		course_id = :course_id, name = :name, exam_date = :exam_date, study_hours = :study_hours, updated_at = :updated_at
		WHERE id = :id AND owner_id = :owner_id`
	row := toExamRow(p)
	n, err := repo.execute(ctx, exec, q, row)
	if err != nil {
		return exam.Plan{}, errors.Wrap(err, "updating exam plan")
	}
	if n == 0 {
		return exam.Plan{}, exam.ErrNotFound
	}
	return row.toPlan(), nil
}

func (repo *examRepository) DeletePlan(ctx context.Context, ownerID, id string, exec ...core.DBExecutor) error {
	if !isUUID(id) {
		return exam.ErrNotFound
	}
	n, err := repo.execute(ctx, exec, "DELETE FROM exam_plan WHERE id = :id AND owner_id = :owner_id", map[string]interface{}{"id": id, "owner_id": ownerID})
	if err != nil {
		return errors.Wrap(err, "deleting exam plan")
	}
	if n == 0 {
		return exam.ErrNotFound
	}
	return nil
}
