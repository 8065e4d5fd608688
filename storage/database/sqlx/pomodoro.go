package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/pomodoro"
)

const sessionColumns = `id, owner_id, task_id, started_at, duration_minutes, created_at`

// sessionRow.StartedAt is stored without time zone: the wall clock of the client is kept as is.
type sessionRow struct {
	ID              string      `db:"id"`
	OwnerID         string      `db:"owner_id"`
	TaskID          null.String `db:"task_id"`
	StartedAt       time.Time   `db:"started_at"`
	DurationMinutes int         `db:"duration_minutes"`
	CreatedAt       time.Time   `db:"created_at"`
}

func toSessionRow(s pomodoro.Session) sessionRow {
	return sessionRow{
		ID:              s.ID,
		OwnerID:         s.OwnerID,
		TaskID:          null.NewString(s.TaskID, s.TaskID != ""),
		StartedAt:       wallClock(s.StartedAt),
		DurationMinutes: s.DurationMinutes,
		CreatedAt:       s.CreatedAt.UTC(),
	}
}

func (r sessionRow) toSession() pomodoro.Session {
	return pomodoro.Session{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		TaskID:          r.TaskID.String,
		StartedAt:       r.StartedAt,
		DurationMinutes: r.DurationMinutes,
		CreatedAt:       r.CreatedAt.UTC(),
	}
}

// wallClock returns t's wall clock in UTC, i.e. 23:30+02:00 becomes 23:30Z.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

type sessionRepository struct {
	repository
}

var _ pomodoro.Repository = (*sessionRepository)(nil) // interface compliance check

func NewSessionRepository(exec core.DBExecutor) pomodoro.Repository {
	return &sessionRepository{repository{exec: exec}}
}

func (repo *sessionRepository) CreateSession(ctx context.Context, s pomodoro.Session, exec ...core.DBExecutor) (pomodoro.Session, error) {
	s.ID = uuid.New().String()
	q := "INSERT INTO pomodoro_session (" + sessionColumns + ") VALUES (:id, :owner_id, :task_id, :started_at, :duration_minutes, :created_at)"
	if _, err := repo.execute(ctx, exec, q, toSessionRow(s)); err != nil {
		return pomodoro.Session{}, errors.Wrap(err, "inserting session")
	}
	return s, nil
}

func (repo *sessionRepository) QuerySessions(ctx context.Context, ownerID string, filter *pomodoro.QueryFilter, exec ...core.DBExecutor) ([]pomodoro.Session, error) {
	w := newWhere("owner_id = :owner_id", map[string]interface{}{"owner_id": ownerID})
	if filter != nil {
		if !filter.From.IsZero() {
			w.and("started_at >= :from", "from", filter.From.Time())
		}
		if !filter.To.IsZero() {
			w.and("started_at < :to", "to", filter.To.AddDays(1).Time())
		}
		if filter.TaskID != "" {
			if !isUUID(filter.TaskID) {
				return []pomodoro.Session{}, nil
			}
			w.and("task_id = :task_id", "task_id", filter.TaskID)
		}
	}

	q := "SELECT " + sessionColumns + " FROM pomodoro_session" + w.String() + " ORDER BY started_at DESC"
	var rows []sessionRow
	if err := repo.selectAll(ctx, exec, &rows, q, w.params); err != nil {
		return nil, errors.Wrap(err, "querying sessions")
	}
	sessions := make([]pomodoro.Session, 0, len(rows))
	for _, r := range rows {
		sessions = append(sessions, r.toSession())
	}
	return sessions, nil
}

func (repo *sessionRepository) GetSession(ctx context.Context, ownerID, id string, exec ...core.DBExecutor) (pomodoro.Session, error) {
	if !isUUID(id) {
		return pomodoro.Session{}, pomodoro.ErrNotFound
	}
	q := "SELECT " + sessionColumns + " FROM pomodoro_session WHERE id = :id AND owner_id = :owner_id"
	var rows []sessionRow
	if err := repo.selectAll(ctx, exec, &rows, q, map[string]interface{}{"id": id, "owner_id": ownerID}); err != nil {
		return pomodoro.Session{}, errors.Wrap(err, "finding session")
	}
	if len(rows) == 0 {
		return pomodoro.Session{}, pomodoro.ErrNotFound
	}
	return rows[0].toSession(), nil
}

func (repo *sessionRepository) DeleteSession(ctx context.Context, ownerID, id string, exec ...core.DBExecutor) error {
	if !isUUID(id) {
		return pomodoro.ErrNotFound
	}
	n, err := repo.execute(ctx, exec, "DELETE FROM pomodoro_session WHERE id = :id AND owner_id = :owner_id", map[string]interface{}{"id": id, "owner_id": ownerID})
	if err != nil {
		return errors.Wrap(err, "deleting session")
	}
	if n == 0 {
		return pomodoro.ErrNotFound
	}
	return nil
}
