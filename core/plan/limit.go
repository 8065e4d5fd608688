package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	FreeMaxCourses     = 5
	FreeMaxActiveTasks = 50
)

// Limit caps the number of items of a resource.
type Limit struct {
	Max       int
	Unbounded bool
}

// Allows reports whether one more item may be added to `count` existing ones.
func (l Limit) Allows(count int) bool {
	return l.Unbounded || count < l.Max
}

// MarshalJSON renders an unbounded limit as null.
func (l Limit) MarshalJSON() ([]byte, error) {
	if l.Unbounded {
		return []byte("null"), nil
	}
	return json.Marshal(l.Max)
}

// UnmarshalJSON reads null as an unbounded limit.
func (l *Limit) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*l = Limit{Unbounded: true}
		return nil
	}
	var max int
	if err := json.Unmarshal(data, &max); err != nil {
		return err
	}
	*l = Limit{Max: max}
	return nil
}

func (l Limit) String() string {
	if l.Unbounded {
		return "unlimited"
	}
	return fmt.Sprint(l.Max)
}

// limits is built once and never mutated. Premium must be >= free for every resource.
var limits = map[Resource]map[Plan]Limit{
	Courses: {
		Free:    {Max: FreeMaxCourses},
		Premium: {Unbounded: true},
	},
	ActiveTasks: {
		Free:    {Max: FreeMaxActiveTasks},
		Premium: {Unbounded: true},
	},
}

// LimitOf returns the cap on `r` for plan `p`.
// Unknown plans get the free limits; unknown resources allow nothing.
func LimitOf(r Resource, p Plan) Limit {
	byPlan, ok := limits[r]
	if !ok {
		return Limit{}
	}
	if l, ok := byPlan[p]; ok {
		return l
	}
	return byPlan[Free]
}
