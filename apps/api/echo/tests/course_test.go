package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/taskademic/core/course"
	"github.com/trezcool/taskademic/core/plan"
	"github.com/trezcool/taskademic/core/task"
	"github.com/trezcool/taskademic/core/user"
	"github.com/trezcool/taskademic/tests"
)

type entitlementErr struct {
	Error    string `json:"error"`
	Feature  string `json:"feature,omitempty"`
	Resource string `json:"resource,omitempty"`
}

func featureErr(f plan.Feature) entitlementErr {
	return entitlementErr{Error: (&plan.FeatureError{Feature: f}).Error(), Feature: string(f)}
}

func limitErr(r plan.Resource) entitlementErr {
	return entitlementErr{Error: plan.LimitMessage(r), Resource: string(r)}
}

func Test_courseApi_limit(t *testing.T) {
	resetDB()
	free := testutil.CreateUser(t, usrRepo, "Free", "free", "", "", user.StudentRoles, true, plan.Free)
	premium := testutil.CreateUser(t, usrRepo, "Premium", "premium", "", "", user.StudentRoles, true, plan.Premium)

	create := func(t *testing.T, usr user.User, name string) int {
		rec := serve(http.MethodPost, "/v1/courses", getToken(t, usr), marshalObj(t, course.NewCourse{Name: name}))
		return rec.Code
	}

	for i := 0; i < plan.FreeMaxCourses; i++ {
		require.Equal(t, http.StatusCreated, create(t, free, fmt.Sprintf("Course %d", i)))
	}

	t.Run("free plan at the limit", func(t *testing.T) {
		rec := serve(http.MethodPost, "/v1/courses", getToken(t, free), marshalObj(t, course.NewCourse{Name: "One too many"}))
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marshalObj(t, limitErr(plan.Courses))}, rec)

		count, err := courseRepo.CountCourses(ctxBg(), free.ID)
		require.NoError(t, err)
		assert.Equal(t, plan.FreeMaxCourses, count)
	})

	t.Run("deleting frees a slot", func(t *testing.T) {
		courses, err := courseRepo.QueryCourses(ctxBg(), free.ID, nil, nil)
		require.NoError(t, err)
		rec := serve(http.MethodDelete, "/v1/courses/"+courses[0].ID, getToken(t, free))
		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, http.StatusCreated, create(t, free, "Replacement"))
	})

	t.Run("premium is unlimited", func(t *testing.T) {
		for i := 0; i < plan.FreeMaxCourses*2; i++ {
			require.Equal(t, http.StatusCreated, create(t, premium, fmt.Sprintf("Course %d", i)))
		}
	})

	t.Run("downgrade keeps existing courses", func(t *testing.T) {
		usr, err := usrRepo.GetUser(ctxBg(), user.GetFilter{ID: premium.ID})
		require.NoError(t, err)
		usr.Plan = plan.Free
		_, err = usrRepo.UpdateUser(ctxBg(), usr)
		require.NoError(t, err)

		assert.Equal(t, http.StatusForbidden, create(t, premium, "Nope"))
		rec := serve(http.MethodGet, "/v1/courses", getToken(t, premium))
		require.Equal(t, http.StatusOK, rec.Code)
		var got []course.Course
		decode(t, rec, &got)
		assert.Len(t, got, plan.FreeMaxCourses*2)
	})
}

func Test_courseApi_crud(t *testing.T) {
	resetDB()
	usr := testutil.CreateUser(t, usrRepo, "Hero", "hero", "", "", user.StudentRoles, true, plan.Free)
	other := testutil.CreateUser(t, usrRepo, "King", "king", "", "", user.StudentRoles, true, plan.Free)
	math := testutil.CreateCourse(t, courseRepo, usr, "Math")
	otherCourse := testutil.CreateCourse(t, courseRepo, other, "History")
	token := getToken(t, usr)

	runHTTPTests(t, []httpTest{
		{name: "auth required", path: "/v1/courses", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)},
		{
			name: "missing name", method: http.MethodPost, path: "/v1/courses", token: token,
			body: marshalObj(t, course.NewCourse{Color: "#ffffff"}), wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"name": "this field is required"}),
		},
		{
			name: "invalid color", method: http.MethodPost, path: "/v1/courses", token: token,
			body: marshalObj(t, course.NewCourse{Name: "Physics", Color: "red"}), wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"color": "must be a color of the form #RRGGBB"}),
		},
		{name: "list own courses only", path: "/v1/courses", token: token, wantCode: http.StatusOK, wantData: marshalList(t, math)},
		{name: "get", path: "/v1/courses/" + math.ID, token: token, wantCode: http.StatusOK, wantData: marshalObj(t, math)},
		{
			name: "someone else's", path: "/v1/courses/" + otherCourse.ID, token: token, wantCode: http.StatusNotFound,
			wantData: marshalObj(t, httpErr{Error: course.ErrNotFound.Error()}),
		},
		{name: "unknown", path: "/v1/courses/lol", token: token, wantCode: http.StatusNotFound},
	})

	t.Run("update color only", func(t *testing.T) {
		rec := serve(http.MethodPut, "/v1/courses/"+math.ID, token, marshalObj(t, course.UpdateCourse{Color: "#ABCDEF"}))
		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
		var got course.Course
		decode(t, rec, &got)
		assert.Equal(t, "Math", got.Name)
		assert.Equal(t, "#abcdef", got.Color)
	})

	t.Run("delete keeps tasks", func(t *testing.T) {
		tsk := testutil.CreateTask(t, taskRepo, usr, task.Task{Title: "Homework", CourseID: math.ID})
		rec := serve(http.MethodDelete, "/v1/courses/"+math.ID, token)
		require.Equal(t, http.StatusNoContent, rec.Code)

		got, err := taskRepo.GetTask(ctxBg(), usr.ID, tsk.ID)
		require.NoError(t, err)
		assert.Empty(t, got.CourseID)
	})
}
