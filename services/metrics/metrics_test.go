package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/taskademic/core/plan"
)

func TestEntitlementDenied(t *testing.T) {
	export := entitlementDenials.WithLabelValues("feature", string(plan.FeatureExport))
	courses := entitlementDenials.WithLabelValues("limit", string(plan.Courses))
	exportBefore, coursesBefore := testutil.ToFloat64(export), testutil.ToFloat64(courses)

	EntitlementDenied(&plan.FeatureError{Feature: plan.FeatureExport})
	EntitlementDenied(errors.Wrap(&plan.LimitError{Resource: plan.Courses}, "creating course"))
	EntitlementDenied(errors.New("not an entitlement error"))
	EntitlementDenied(nil)

	assert.Equal(t, exportBefore+1, testutil.ToFloat64(export))
	assert.Equal(t, coursesBefore+1, testutil.ToFloat64(courses))
}

func TestHandler(t *testing.T) {
	ProjectionsServed(3)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "taskademic_projections_total"))
}
