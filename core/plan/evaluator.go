package plan

import "fmt"

// CanAccess reports whether plan `p` unlocks feature `f`.
// Premium unlocks everything; free unlocks every feature that is not premium-gated.
func CanAccess(p Plan, f Feature) bool {
	if p == Premium {
		return true
	}
	return !f.IsPremium()
}

// IsWithinLimit reports whether plan `p` may add one more `r` to the `count` it already has.
// It is a pre-insert check: a count equal to the limit is not within it.
// count must be >= 0.
func IsWithinLimit(p Plan, r Resource, count int) bool {
	return LimitOf(r, p).Allows(count)
}

// LimitMessage explains the free plan limit on `r` to the user.
func LimitMessage(r Resource) string {
	l := LimitOf(r, Free)
	switch r {
	case Courses:
		return fmt.Sprintf("The free plan is limited to %d courses. Upgrade to Premium for unlimited courses.", l.Max)
	case ActiveTasks:
		return fmt.Sprintf(
			"The free plan is limited to %d active tasks. Complete some tasks or upgrade to Premium for unlimited tasks.",
			l.Max,
		)
	default:
		return fmt.Sprintf("The free plan is limited to %d %s. Upgrade to Premium to remove this limit.", l.Max, r.Label())
	}
}

// Entitlements binds the decisions above to one plan tier, typically the current user's.
type Entitlements struct {
	Plan Plan
}

func For(p Plan) Entitlements {
	return Entitlements{Plan: p}
}

func (e Entitlements) CanAccess(f Feature) bool {
	return CanAccess(e.Plan, f)
}

func (e Entitlements) IsWithinLimit(r Resource, count int) bool {
	return IsWithinLimit(e.Plan, r, count)
}

// RequireFeature returns a *FeatureError if `f` is locked.
func (e Entitlements) RequireFeature(f Feature) error {
	if !e.CanAccess(f) {
		return &FeatureError{Feature: f}
	}
	return nil
}

// RequireCapacity returns a *LimitError if one more `r` can't be added to `count`.
func (e Entitlements) RequireCapacity(r Resource, count int) error {
	if !e.IsWithinLimit(r, count) {
		return &LimitError{Resource: r}
	}
	return nil
}

// Features maps every known feature to whether it is unlocked.
func (e Entitlements) Features() map[Feature]bool {
	feats := make(map[Feature]bool, len(Features))
	for _, f := range Features {
		feats[f] = e.CanAccess(f)
	}
	return feats
}

func (e Entitlements) Limits() map[Resource]Limit {
	lims := make(map[Resource]Limit, len(Resources))
	for _, r := range Resources {
		lims[r] = LimitOf(r, e.Plan)
	}
	return lims
}
