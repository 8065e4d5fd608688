// Package export writes user data to spreadsheets.
package export

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/taskademic/core/course"
	"github.com/trezcool/taskademic/core/pomodoro"
	"github.com/trezcool/taskademic/core/task"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	tasksSheet    = "Tasks"
	sessionsSheet = "Sessions"
)

var (
	taskHeader    = []interface{}{"id", "title", "course", "parent_id", "due_date", "priority", "tags", "completed", "description", "created_at"}
	sessionHeader = []interface{}{"id", "started_at", "duration_minutes", "task", "course"}
)

// Workbook writes tasks and focus sessions to an XLSX workbook, one sheet each.
func Workbook(tasks []task.Task, sessions []pomodoro.Session, courses []course.Course) ([]byte, error) {
	courseNames := make(map[string]string, len(courses))
	for _, c := range courses {
		courseNames[c.ID] = c.Name
	}
	taskByID := make(map[string]task.Task, len(tasks))
	for _, t := range tasks {
		taskByID[t.ID] = t
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), tasksSheet); err != nil {
		return nil, errors.Wrap(err, "naming tasks sheet")
	}
	rows := make([][]interface{}, 0, len(tasks))
	for _, t := range tasks {
		var due string
		if t.DueDate != nil {
			due = t.DueDate.String()
		}
		rows = append(rows, []interface{}{
			t.ID,
			t.Title,
			courseNames[t.CourseID],
			t.ParentID,
			due,
			string(t.Priority),
			strings.Join(t.Tags, ", "),
			t.Completed,
			t.Description,
			t.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	if err := writeSheet(f, tasksSheet, taskHeader, rows); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(sessionsSheet); err != nil {
		return nil, errors.Wrap(err, "creating sessions sheet")
	}
	rows = make([][]interface{}, 0, len(sessions))
	for _, s := range sessions {
		t := taskByID[s.TaskID]
		rows = append(rows, []interface{}{
			s.ID,
			s.StartedAt.Format("2006-01-02 15:04:05"),
			s.DurationMinutes,
			t.Title,
			courseNames[t.CourseID],
		})
	}
	if err := writeSheet(f, sessionsSheet, sessionHeader, rows); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, errors.Wrap(err, "writing workbook")
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.Wrapf(err, "writing %s header", sheet)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrapf(err, "writing %s row %d", sheet, i+2)
		}
		row := row
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "writing %s row %d", sheet, i+2)
		}
	}
	return nil
}
