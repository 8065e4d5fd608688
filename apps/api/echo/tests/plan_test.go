package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/taskademic/apps/api/echo"
	"github.com/trezcool/taskademic/core/plan"
	"github.com/trezcool/taskademic/core/user"
	"github.com/trezcool/taskademic/tests"
)

func Test_planApi(t *testing.T) {
	resetDB()
	free := testutil.CreateUser(t, usrRepo, "Free", "free", "", "", user.StudentRoles, true, plan.Free)
	premium := testutil.CreateUser(t, usrRepo, "Premium", "premium", "", "", user.StudentRoles, true, plan.Premium)
	unknown := testutil.CreateUser(t, usrRepo, "Gold", "gold", "", "", user.StudentRoles, true, plan.Plan("gold"))

	rec := serve(http.MethodGet, "/v1/plan", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tests := []struct {
		name        string
		usr         user.User
		wantPlan    plan.Plan
		wantLocked  []plan.Feature
		wantCourses string
	}{
		{
			name:     "free",
			usr:      free,
			wantPlan: plan.Free,
			wantLocked: []plan.Feature{
				plan.FeatureSubtasks, plan.FeatureTags, plan.FeaturePriorities, plan.FeaturePerformanceCharts,
				plan.FeatureAdvancedFilters, plan.FeatureExport, plan.FeaturePomodoroLink,
			},
			wantCourses: "5",
		},
		{name: "premium", usr: premium, wantPlan: plan.Premium, wantCourses: "null"},
		{
			name:     "unknown plan gets the free entitlements",
			usr:      unknown,
			wantPlan: plan.Plan("gold"),
			wantLocked: []plan.Feature{
				plan.FeatureSubtasks, plan.FeatureTags, plan.FeaturePriorities, plan.FeaturePerformanceCharts,
				plan.FeatureAdvancedFilters, plan.FeatureExport, plan.FeaturePomodoroLink,
			},
			wantCourses: "5",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(http.MethodGet, "/v1/plan", getToken(t, tt.usr))
			require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

			var got struct {
				echoapi.PlanResponse
				Limits map[string]interface{} `json:"limits"`
			}
			decode(t, rec, &got)
			assert.Equal(t, tt.wantPlan, got.Plan)
			assert.Len(t, got.Features, len(plan.Features))

			var locked []plan.Feature
			for _, f := range plan.Features {
				if !got.Features[f] {
					locked = append(locked, f)
				}
			}
			assert.Equal(t, tt.wantLocked, locked)

			if tt.wantCourses == "null" {
				assert.Nil(t, got.Limits[string(plan.Courses)])
			} else {
				assert.EqualValues(t, plan.FreeMaxCourses, got.Limits[string(plan.Courses)])
			}
		})
	}
}
