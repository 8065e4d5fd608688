package plan

import (
	"github.com/pkg/errors"
)

// FeatureError is returned when a locked feature is used.
type FeatureError struct {
	Feature Feature
}

func (e *FeatureError) Error() string {
	return e.Feature.Label() + " is a Premium feature. Upgrade to Premium to use it."
}

// LimitError is returned when a resource limit would be exceeded.
type LimitError struct {
	Resource Resource
}

func (e *LimitError) Error() string {
	return LimitMessage(e.Resource)
}

// IsEntitlementError reports whether the cause of err is a *FeatureError or a *LimitError.
func IsEntitlementError(err error) bool {
	switch errors.Cause(err).(type) {
	case *FeatureError, *LimitError:
		return true
	}
	return false
}
