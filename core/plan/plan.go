// Package plan models subscription tiers and what each of them is entitled to.
//
// Every function of this package is pure: decisions are taken from the plan tier,
// the feature or resource asked about and, for limits, a count provided by the caller.
// Counting is the caller's job; a count fetched before a concurrent insert may be stale.
package plan

import (
	"github.com/pkg/errors"
)

// Plan is a subscription tier. Stored on the user profile.
type Plan string

const (
	Free    Plan = "free"
	Premium Plan = "premium"
)

var (
	Plans = []Plan{Free, Premium}

	ErrInvalidPlan = errors.New("invalid plan")
)

func (p Plan) IsValid() bool {
	return p == Free || p == Premium
}

// Parse parses a plan tier name, i.e. "premium".
func Parse(s string) (Plan, error) {
	if p := Plan(s); p.IsValid() {
		return p, nil
	}
	return "", ErrInvalidPlan
}

// Feature is a named capability of the app.
type Feature string

const (
	// available on every plan
	FeatureTasks        Feature = "tasks"
	FeatureCourses      Feature = "courses"
	FeaturePomodoro     Feature = "pomodoro"
	FeatureCalendar     Feature = "calendar"
	FeatureStudyPlanner Feature = "study_planner"

	// premium only
	FeatureSubtasks          Feature = "subtasks"
	FeatureTags              Feature = "tags"
	FeaturePriorities        Feature = "priorities"
	FeaturePerformanceCharts Feature = "performance_charts"
	FeatureAdvancedFilters   Feature = "advanced_filters"
	FeatureExport            Feature = "export"
	FeaturePomodoroLink      Feature = "pomodoro_link"
)

var (
	Features = []Feature{
		FeatureTasks,
		FeatureCourses,
		FeaturePomodoro,
		FeatureCalendar,
		FeatureStudyPlanner,
		FeatureSubtasks,
		FeatureTags,
		FeaturePriorities,
		FeaturePerformanceCharts,
		FeatureAdvancedFilters,
		FeatureExport,
		FeaturePomodoroLink,
	}

	premiumFeatures = map[Feature]struct{}{
		FeatureSubtasks:          {},
		FeatureTags:              {},
		FeaturePriorities:        {},
		FeaturePerformanceCharts: {},
		FeatureAdvancedFilters:   {},
		FeatureExport:            {},
		FeaturePomodoroLink:      {},
	}

	featureLabels = map[Feature]string{
		FeatureSubtasks:          "Subtasks",
		FeatureTags:              "Tags",
		FeaturePriorities:        "Priorities",
		FeaturePerformanceCharts: "Performance charts",
		FeatureAdvancedFilters:   "Advanced filters",
		FeatureExport:            "Export",
		FeaturePomodoroLink:      "Linking Pomodoro sessions to tasks",
	}
)

// IsPremium reports whether f is gated behind the premium plan.
func (f Feature) IsPremium() bool {
	_, ok := premiumFeatures[f]
	return ok
}

func (f Feature) Label() string {
	if label, ok := featureLabels[f]; ok {
		return label
	}
	return string(f)
}

// Resource is a countable entity capped on the free plan.
type Resource string

const (
	Courses     Resource = "courses"
	ActiveTasks Resource = "active_tasks"
)

var Resources = []Resource{Courses, ActiveTasks}

func (r Resource) Label() string {
	switch r {
	case ActiveTasks:
		return "active tasks"
	default:
		return string(r)
	}
}
