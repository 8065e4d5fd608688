package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/plan"
	"github.com/trezcool/taskademic/core/task"
	"github.com/trezcool/taskademic/core/user"
	"github.com/trezcool/taskademic/tests"
)

func Test_taskApi_create(t *testing.T) {
	resetDB()
	free := testutil.CreateUser(t, usrRepo, "Free", "free", "", "", user.StudentRoles, true, plan.Free)
	premium := testutil.CreateUser(t, usrRepo, "Premium", "premium", "", "", user.StudentRoles, true, plan.Premium)
	freeToken, premiumToken := getToken(t, free), getToken(t, premium)

	math := testutil.CreateCourse(t, courseRepo, premium, "Math")
	parent := testutil.CreateTask(t, taskRepo, premium, task.Task{Title: "Project"})
	subtask := testutil.CreateTask(t, taskRepo, premium, task.Task{Title: "Draft", ParentID: parent.ID})
	freeParent := testutil.CreateTask(t, taskRepo, free, task.Task{Title: "Mine"})

	runHTTPTests(t, []httpTest{
		{name: "auth required", method: http.MethodPost, path: "/v1/tasks", wantCode: http.StatusUnauthorized},
		{
			name: "title required", method: http.MethodPost, path: "/v1/tasks", token: freeToken,
			body: marshalObj(t, task.NewTask{}), wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"title": "this field is required"}),
		},
		{
			name: "free: priority", method: http.MethodPost, path: "/v1/tasks", token: freeToken,
			body:     marshalObj(t, task.NewTask{Title: "Read", Priority: task.PriorityHigh}),
			wantCode: http.StatusForbidden, wantData: marshalObj(t, featureErr(plan.FeaturePriorities)),
		},
		{
			name: "free: tags", method: http.MethodPost, path: "/v1/tasks", token: freeToken,
			body:     marshalObj(t, task.NewTask{Title: "Read", Tags: []string{"exam"}}),
			wantCode: http.StatusForbidden, wantData: marshalObj(t, featureErr(plan.FeatureTags)),
		},
		{
			name: "free: subtask", method: http.MethodPost, path: "/v1/tasks", token: freeToken,
			body:     marshalObj(t, task.NewTask{Title: "Read", ParentID: freeParent.ID}),
			wantCode: http.StatusForbidden, wantData: marshalObj(t, featureErr(plan.FeatureSubtasks)),
		},
		{
			name: "someone else's course", method: http.MethodPost, path: "/v1/tasks", token: freeToken,
			body:     marshalObj(t, task.NewTask{Title: "Read", CourseID: math.ID}),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, map[string]string{"course_id": "course not found"}),
		},
		{
			name: "unknown parent", method: http.MethodPost, path: "/v1/tasks", token: premiumToken,
			body:     marshalObj(t, task.NewTask{Title: "Read", ParentID: freeParent.ID}),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, map[string]string{"parent_id": "parent task not found"}),
		},
		{
			name: "subtask of a subtask", method: http.MethodPost, path: "/v1/tasks", token: premiumToken,
			body:     marshalObj(t, task.NewTask{Title: "Read", ParentID: subtask.ID}),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, map[string]string{"parent_id": "subtasks cannot have subtasks"}),
		},
	})

	t.Run("free: plain task", func(t *testing.T) {
		due := core.NewDate(2025, 6, 2)
		rec := serve(http.MethodPost, "/v1/tasks", freeToken, marshalObj(t, task.NewTask{Title: " Read ch. 3 ", DueDate: &due}))
		require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
		var got task.Task
		decode(t, rec, &got)
		assert.Equal(t, "Read ch. 3", got.Title)
		require.NotNil(t, got.DueDate)
		assert.Equal(t, due, *got.DueDate)
		assert.Equal(t, []string{}, got.Tags)
		assert.False(t, got.Completed)
	})

	t.Run("premium: everything", func(t *testing.T) {
		data := task.NewTask{
			Title:    "Exercises",
			CourseID: math.ID,
			ParentID: parent.ID,
			Priority: "HIGH",
			Tags:     []string{"Exam", "exam", "hw"},
		}
		rec := serve(http.MethodPost, "/v1/tasks", premiumToken, marshalObj(t, data))
		require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
		var got task.Task
		decode(t, rec, &got)
		assert.Equal(t, math.ID, got.CourseID)
		assert.Equal(t, parent.ID, got.ParentID)
		assert.Equal(t, task.PriorityHigh, got.Priority)
		assert.ElementsMatch(t, []string{"exam", "hw"}, got.Tags)
	})
}

func Test_taskApi_activeLimit(t *testing.T) {
	resetDB()
	usr := testutil.CreateUser(t, usrRepo, "Free", "free", "", "", user.StudentRoles, true, plan.Free)
	token := getToken(t, usr)

	var tasks []task.Task
	for i := 0; i < plan.FreeMaxActiveTasks; i++ {
		tasks = append(tasks, testutil.CreateTask(t, taskRepo, usr, task.Task{Title: fmt.Sprintf("Task %d", i)}))
	}
	create := func() int {
		return serve(http.MethodPost, "/v1/tasks", token, marshalObj(t, task.NewTask{Title: "One more"})).Code
	}
	toggle := func(id string) int {
		return serve(http.MethodPost, "/v1/tasks/"+id+"/toggle", token).Code
	}

	t.Run("at the limit", func(t *testing.T) {
		rec := serve(http.MethodPost, "/v1/tasks", token, marshalObj(t, task.NewTask{Title: "One more"}))
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marshalObj(t, limitErr(plan.ActiveTasks))}, rec)
	})

	t.Run("completing frees a slot", func(t *testing.T) {
		require.Equal(t, http.StatusOK, toggle(tasks[0].ID))
		assert.Equal(t, http.StatusCreated, create())
	})

	t.Run("re-opening at the limit", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, toggle(tasks[0].ID))

		got, err := taskRepo.GetTask(ctxBg(), usr.ID, tasks[0].ID)
		require.NoError(t, err)
		assert.True(t, got.Completed)
	})

	t.Run("re-opening via update at the limit", func(t *testing.T) {
		data := task.UpdateTask{NewTask: task.NewTask{Title: tasks[0].Title}, Completed: false}
		rec := serve(http.MethodPut, "/v1/tasks/"+tasks[0].ID, token, marshalObj(t, data))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("deleting frees a slot", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, serve(http.MethodDelete, "/v1/tasks/"+tasks[1].ID, token).Code)
		assert.Equal(t, http.StatusOK, toggle(tasks[0].ID))
	})
}

func Test_taskApi_query(t *testing.T) {
	resetDB()
	free := testutil.CreateUser(t, usrRepo, "Free", "free", "", "", user.StudentRoles, true, plan.Free)
	premium := testutil.CreateUser(t, usrRepo, "Premium", "premium", "", "", user.StudentRoles, true, plan.Premium)

	read := testutil.CreateTask(t, taskRepo, premium, task.Task{Title: "Read", Tags: []string{"exam"}, Priority: task.PriorityHigh})
	write := testutil.CreateTask(t, taskRepo, premium, task.Task{Title: "Write", Tags: []string{"hw"}})
	testutil.CreateTask(t, taskRepo, free, task.Task{Title: "Other", Tags: []string{}})

	titles := func(t *testing.T, path, token string) []string {
		rec := serve(http.MethodGet, path, token)
		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
		var got []task.Task
		decode(t, rec, &got)
		res := make([]string, 0, len(got))
		for _, tsk := range got {
			res = append(res, tsk.Title)
		}
		return res
	}

	t.Run("own tasks only", func(t *testing.T) {
		assert.Equal(t, []string{"Read", "Write"}, titles(t, "/v1/tasks?ordering=title", getToken(t, premium)))
	})
	t.Run("advanced filters are premium", func(t *testing.T) {
		rec := serve(http.MethodGet, "/v1/tasks?tag=exam", getToken(t, free))
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marshalObj(t, featureErr(plan.FeatureAdvancedFilters))}, rec)
	})
	t.Run("by tag", func(t *testing.T) {
		assert.Equal(t, []string{read.Title}, titles(t, "/v1/tasks?tag=exam", getToken(t, premium)))
	})
	t.Run("by priority", func(t *testing.T) {
		assert.Equal(t, []string{read.Title}, titles(t, "/v1/tasks?priority=high", getToken(t, premium)))
	})
	t.Run("by search", func(t *testing.T) {
		assert.Equal(t, []string{write.Title}, titles(t, "/v1/tasks?search=wri", getToken(t, premium)))
	})
}

func Test_taskApi_update(t *testing.T) {
	resetDB()
	usr := testutil.CreateUser(t, usrRepo, "Hero", "hero", "", "", user.StudentRoles, true, plan.Free)
	token := getToken(t, usr)

	// created while on premium
	tsk := testutil.CreateTask(t, taskRepo, usr, task.Task{Title: "Read", Priority: task.PriorityHigh, Tags: []string{"exam"}})

	t.Run("downgraded user keeps premium values", func(t *testing.T) {
		data := task.UpdateTask{NewTask: task.NewTask{Title: "Read more", Priority: task.PriorityHigh, Tags: []string{"exam"}}}
		rec := serve(http.MethodPut, "/v1/tasks/"+tsk.ID, token, marshalObj(t, data))
		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
		var got task.Task
		decode(t, rec, &got)
		assert.Equal(t, "Read more", got.Title)
		assert.Equal(t, task.PriorityHigh, got.Priority)
	})

	t.Run("downgraded user cannot change premium values", func(t *testing.T) {
		data := task.UpdateTask{NewTask: task.NewTask{Title: "Read more", Priority: task.PriorityLow, Tags: []string{"exam"}}}
		rec := serve(http.MethodPut, "/v1/tasks/"+tsk.ID, token, marshalObj(t, data))
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marshalObj(t, featureErr(plan.FeaturePriorities))}, rec)
	})

	t.Run("clearing premium values", func(t *testing.T) {
		data := task.UpdateTask{NewTask: task.NewTask{Title: "Read more"}, Completed: true}
		rec := serve(http.MethodPut, "/v1/tasks/"+tsk.ID, token, marshalObj(t, data))
		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
		var got task.Task
		decode(t, rec, &got)
		assert.Equal(t, task.PriorityNone, got.Priority)
		assert.Equal(t, []string{}, got.Tags)
		assert.True(t, got.Completed)
	})

	t.Run("unknown task", func(t *testing.T) {
		data := task.UpdateTask{NewTask: task.NewTask{Title: "Read"}}
		rec := serve(http.MethodPut, "/v1/tasks/lol", token, marshalObj(t, data))
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Error: "task not found"})}, rec)
	})
}

func Test_taskApi_subtasks(t *testing.T) {
	resetDB()
	usr := testutil.CreateUser(t, usrRepo, "Hero", "hero", "", "", user.StudentRoles, true, plan.Premium)
	token := getToken(t, usr)
	parent := testutil.CreateTask(t, taskRepo, usr, task.Task{Title: "Project"})
	child := testutil.CreateTask(t, taskRepo, usr, task.Task{Title: "Draft", ParentID: parent.ID})
	other := testutil.CreateTask(t, taskRepo, usr, task.Task{Title: "Other"})

	update := func(id, parentID string) *httpTest {
		return &httpTest{
			method: http.MethodPut,
			path:   "/v1/tasks/" + id,
			token:  token,
			body:   marshalObj(t, task.UpdateTask{NewTask: task.NewTask{Title: "X", ParentID: parentID}}),
		}
	}

	tests := []struct {
		name     string
		req      *httpTest
		wantCode int
		wantErr  string
	}{
		{name: "own parent", req: update(other.ID, other.ID), wantCode: http.StatusBadRequest, wantErr: "a task cannot be its own parent"},
		{name: "parent under other", req: update(parent.ID, other.ID), wantCode: http.StatusBadRequest, wantErr: "tasks with subtasks cannot become subtasks"},
		{name: "move subtask", req: update(child.ID, other.ID), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(tt.req.method, tt.req.path, tt.req.token, tt.req.body)
			var wantData []byte
			if tt.wantErr != "" {
				wantData = marshalObj(t, map[string]string{"parent_id": tt.wantErr})
			}
			checkCodeAndData(t, httpTest{wantCode: tt.wantCode, wantData: wantData}, rec)
		})
	}

	t.Run("deleting a parent deletes its subtasks", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, serve(http.MethodDelete, "/v1/tasks/"+other.ID, token).Code)
		_, err := taskRepo.GetTask(ctxBg(), usr.ID, child.ID)
		assert.Equal(t, task.ErrNotFound, err)
	})
}
