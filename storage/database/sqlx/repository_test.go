package sqlxrepos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/task"
)

func TestBind(t *testing.T) {
	w := newWhere("owner_id = :owner_id", map[string]interface{}{"owner_id": "o1"})
	w.and("(title ILIKE :search OR description ILIKE :search)", "search", "%exam%")
	w.and("id NOT IN (:excluded)", "excluded", []string{"a", "b"})

	q, args, err := bind("SELECT id FROM task"+w.String(), w.params)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id FROM task WHERE owner_id = $1 AND (title ILIKE $2 OR description ILIKE $3) AND id NOT IN ($4, $5)",
		q,
	)
	assert.Equal(t, []interface{}{"o1", "%exam%", "%exam%", "a", "b"}, args)
}

func TestBind_struct(t *testing.T) {
	due := core.NewDate(2025, time.March, 15)
	row := toTaskRow(task.Task{ID: "t1", OwnerID: "o1", Title: "essay", DueDate: &due})

	q, args, err := bind("UPDATE task SET title = :title, due_date = :due_date, tags = :tags WHERE id = :id", row)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE task SET title = $1, due_date = $2, tags = $3 WHERE id = $4", q)
	require.Len(t, args, 4)
	assert.Equal(t, "essay", args[0])
	assert.Equal(t, due, args[1])
	assert.Equal(t, "t1", args[3])
}

func TestTaskRow(t *testing.T) {
	due := core.NewDate(2025, time.March, 15)
	orig := task.Task{
		ID:        "t1",
		OwnerID:   "o1",
		Title:     "essay",
		DueDate:   &due,
		Priority:  task.PriorityHigh,
		Tags:      []string{"exam"},
		CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC),
	}

	row := toTaskRow(orig)
	assert.False(t, row.CourseID.Valid)
	assert.True(t, row.Priority.Valid)
	assert.Equal(t, orig, row.toTask())

	orig.DueDate, orig.Priority, orig.Tags = nil, task.PriorityNone, nil
	got := toTaskRow(orig).toTask()
	assert.Nil(t, got.DueDate)
	assert.Equal(t, task.PriorityNone, got.Priority)
	assert.Equal(t, []string{}, got.Tags)
}

func TestWallClock(t *testing.T) {
	plus2 := time.FixedZone("UTC+2", 2*60*60)
	started := time.Date(2025, 3, 15, 23, 30, 0, 0, plus2)

	got := wallClock(started)
	assert.Equal(t, time.Date(2025, 3, 15, 23, 30, 0, 0, time.UTC), got)
	assert.Equal(t, core.DateOf(started), core.DateOf(got))
}
