// Package metrics holds the prometheus collectors of the API.
package metrics

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trezcool/taskademic/core/plan"
)

var (
	// entitlementDenials counts refused actions by kind (feature, limit) and feature or resource name
	entitlementDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taskademic_entitlement_denials_total",
		Help: "Total actions refused by the user's plan, by kind and name",
	}, []string{"kind", "name"})

	// projectionsServed counts exam plan projections computed
	projectionsServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taskademic_projections_total",
		Help: "Total exam plan projections computed",
	})
)

// EntitlementDenied counts err if it is a *plan.FeatureError or a *plan.LimitError.
func EntitlementDenied(err error) {
	switch e := errors.Cause(err).(type) {
	case *plan.FeatureError:
		entitlementDenials.WithLabelValues("feature", string(e.Feature)).Inc()
	case *plan.LimitError:
		entitlementDenials.WithLabelValues("limit", string(e.Resource)).Inc()
	}
}

func ProjectionsServed(n int) {
	projectionsServed.Add(float64(n))
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
