package dummydb

import (
	"sort"
	"strings"
	"time"

	"github.com/trezcool/taskademic/core"
)

// sortBy stable-sorts items on the given orderings, reading field values with `value`.
func sortBy[T any](items []T, ordering []core.DBOrdering, value func(item T, field string) interface{}) {
	if len(ordering) == 0 {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		for _, ord := range ordering {
			c := compare(value(items[i], ord.Field), value(items[j], ord.Field))
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}

// compare orders two values of the same type. Nil and zero dates sort last, as NULLs do in Postgres.
func compare(a, b interface{}) int {
	switch av := a.(type) {
	case string:
		return strings.Compare(strings.ToLower(av), strings.ToLower(b.(string)))
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		}
		return 1
	case int:
		return av - b.(int)
	case time.Time:
		bv := b.(time.Time)
		switch {
		case av.Before(bv):
			return -1
		case av.After(bv):
			return 1
		}
		return 0
	case core.Date:
		bv := b.(core.Date)
		switch {
		case av.IsZero() && bv.IsZero():
			return 0
		case av.IsZero():
			return 1
		case bv.IsZero():
			return -1
		}
		return av.Compare(bv)
	}
	return 0
}
