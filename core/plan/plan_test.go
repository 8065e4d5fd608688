package plan

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

var gatedFeatures = []Feature{
	FeatureSubtasks,
	FeatureTags,
	FeaturePriorities,
	FeaturePerformanceCharts,
	FeatureAdvancedFilters,
	FeatureExport,
	FeaturePomodoroLink,
}

func TestCanAccess(t *testing.T) {
	for _, f := range Features {
		t.Run(string(f), func(t *testing.T) {
			if !CanAccess(Premium, f) {
				t.Errorf("CanAccess(premium, %s) = false, want true", f)
			}
			want := !f.IsPremium()
			if got := CanAccess(Free, f); got != want {
				t.Errorf("CanAccess(free, %s) = %v, want %v", f, got, want)
			}
		})
	}
}

func TestPremiumFeatures(t *testing.T) {
	var gated int
	for _, f := range Features {
		if f.IsPremium() {
			gated++
		}
	}
	if gated != len(gatedFeatures) {
		t.Errorf("gated features = %d, want %d", gated, len(gatedFeatures))
	}
	for _, f := range gatedFeatures {
		if CanAccess(Free, f) {
			t.Errorf("CanAccess(free, %s) = true, want false", f)
		}
	}
	if !CanAccess(Free, FeatureCalendar) {
		t.Error("CanAccess(free, calendar) = false, want true")
	}
}

func TestIsWithinLimit(t *testing.T) {
	tests := []struct {
		name  string
		plan  Plan
		res   Resource
		count int
		want  bool
	}{
		{name: "free courses: none yet", plan: Free, res: Courses, count: 0, want: true},
		{name: "free courses: one left", plan: Free, res: Courses, count: FreeMaxCourses - 1, want: true},
		{name: "free courses: at limit", plan: Free, res: Courses, count: FreeMaxCourses, want: false},
		{name: "free courses: over limit", plan: Free, res: Courses, count: FreeMaxCourses + 3, want: false},
		{name: "free tasks: one left", plan: Free, res: ActiveTasks, count: FreeMaxActiveTasks - 1, want: true},
		{name: "free tasks: at limit", plan: Free, res: ActiveTasks, count: FreeMaxActiveTasks, want: false},
		{name: "premium courses: at free limit", plan: Premium, res: Courses, count: FreeMaxCourses, want: true},
		{name: "premium courses: huge", plan: Premium, res: Courses, count: math.MaxInt32, want: true},
		{name: "premium tasks: huge", plan: Premium, res: ActiveTasks, count: 10000, want: true},
		{name: "unknown plan is free", plan: Plan("gold"), res: Courses, count: FreeMaxCourses, want: false},
		{name: "unknown resource", plan: Premium, res: Resource("projects"), count: 0, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWithinLimit(tt.plan, tt.res, tt.count); got != tt.want {
				t.Errorf("IsWithinLimit(%s, %s, %d) = %v, want %v", tt.plan, tt.res, tt.count, got, tt.want)
			}
		})
	}
}

func TestLimitOf_monotonic(t *testing.T) {
	for _, r := range Resources {
		free, premium := LimitOf(r, Free), LimitOf(r, Premium)
		if free.Unbounded || free.Max <= 0 {
			t.Errorf("LimitOf(%s, free) = %v, want a positive finite limit", r, free)
		}
		if !premium.Unbounded && premium.Max < free.Max {
			t.Errorf("LimitOf(%s, premium) = %v, want >= %v", r, premium, free)
		}
		for n := 0; n <= free.Max+1; n++ {
			if IsWithinLimit(Free, r, n) && !IsWithinLimit(Premium, r, n) {
				t.Errorf("IsWithinLimit(%s, %d): free allows but premium denies", r, n)
			}
		}
	}
}

func TestLimitMessage(t *testing.T) {
	for _, r := range Resources {
		t.Run(string(r), func(t *testing.T) {
			msg := LimitMessage(r)
			if !strings.Contains(msg, strconv.Itoa(LimitOf(r, Free).Max)) {
				t.Errorf("LimitMessage(%s) = %q, want it to mention the free limit", r, msg)
			}
			if err := (&LimitError{Resource: r}); err.Error() != msg {
				t.Errorf("LimitError.Error() = %q, want %q", err.Error(), msg)
			}
		})
	}
}

func TestLimit_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(For(Free).Limits())
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if got, want := string(data), `{"active_tasks":50,"courses":5}`; got != want {
		t.Errorf("json.Marshal() = %s, want %s", got, want)
	}

	data, err = json.Marshal(For(Premium).Limits())
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if got, want := string(data), `{"active_tasks":null,"courses":null}`; got != want {
		t.Errorf("json.Marshal() = %s, want %s", got, want)
	}
}

func TestLimit_UnmarshalJSON(t *testing.T) {
	for _, p := range []Plan{Free, Premium} {
		t.Run(string(p), func(t *testing.T) {
			want := For(p).Limits()
			data, err := json.Marshal(want)
			if err != nil {
				t.Fatalf("json.Marshal() error = %v", err)
			}
			var got map[Resource]Limit
			if err = json.Unmarshal(data, &got); err != nil {
				t.Fatalf("json.Unmarshal() error = %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("json.Unmarshal() = %v, want %v", got, want)
			}
			for r, l := range want {
				if got[r] != l {
					t.Errorf("json.Unmarshal()[%s] = %+v, want %+v", r, got[r], l)
				}
			}
		})
	}

	var l Limit
	if err := json.Unmarshal([]byte(`"lots"`), &l); err == nil {
		t.Errorf("json.Unmarshal() of a string: want an error")
	}
}

func TestEntitlements(t *testing.T) {
	free, premium := For(Free), For(Premium)

	if err := free.RequireFeature(FeatureExport); err == nil {
		t.Error("free.RequireFeature(export) = nil, want *FeatureError")
	} else if fErr, ok := err.(*FeatureError); !ok || fErr.Feature != FeatureExport {
		t.Errorf("free.RequireFeature(export) = %#v, want *FeatureError{export}", err)
	}
	if err := free.RequireFeature(FeatureTasks); err != nil {
		t.Errorf("free.RequireFeature(tasks) = %v, want nil", err)
	}
	if err := premium.RequireFeature(FeatureExport); err != nil {
		t.Errorf("premium.RequireFeature(export) = %v, want nil", err)
	}

	err := free.RequireCapacity(Courses, FreeMaxCourses)
	if !IsEntitlementError(errors.Wrap(err, "creating course")) {
		t.Errorf("IsEntitlementError(%v) = false, want true", err)
	}
	if err := premium.RequireCapacity(Courses, FreeMaxCourses); err != nil {
		t.Errorf("premium.RequireCapacity(courses) = %v, want nil", err)
	}
	if IsEntitlementError(errors.New("lol")) {
		t.Error("IsEntitlementError(lol) = true, want false")
	}

	feats := free.Features()
	if len(feats) != len(Features) {
		t.Fatalf("len(Features()) = %d, want %d", len(feats), len(Features))
	}
	for _, f := range gatedFeatures {
		if feats[f] {
			t.Errorf("free.Features()[%s] = true, want false", f)
		}
	}
	for f, ok := range premium.Features() {
		if !ok {
			t.Errorf("premium.Features()[%s] = false, want true", f)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		s       string
		want    Plan
		wantErr error
	}{
		{s: "free", want: Free},
		{s: "premium", want: Premium},
		{s: "Premium", wantErr: ErrInvalidPlan},
		{s: "", wantErr: ErrInvalidPlan},
	}
	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			got, err := Parse(tt.s)
			if err != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse() = %v, want %v", got, tt.want)
			}
		})
	}
}
