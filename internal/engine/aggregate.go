package engine

import (
	"math"
	"sort"
	"time"
)

// Response is one employee's survey submission with its hierarchy assignment
// resolved at submission time. Sub-scores are 1–5; a domain the employee
// skipped is simply absent from Scores.
type Response struct {
	SubmittedAt  time.Time
	EmployeeRef  string // anonymous reference, may be empty
	TeamID       string
	DepartmentID string
	DivisionID   string
	Scores       map[Domain]int
}

// Grouping selects the granularity Aggregate rolls responses up to.
type Grouping int

const (
	GroupOrg Grouping = iota
	GroupDivision
	GroupDepartment
	GroupTeam
)

// Filter narrows the response set before aggregation. Zero time bounds and
// empty ids match everything.
type Filter struct {
	From         time.Time
	To           time.Time
	DivisionID   string
	DepartmentID string
	TeamID       string
}

func (f Filter) matches(r Response) bool {
	if !f.From.IsZero() && r.SubmittedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !r.SubmittedAt.Before(f.To) {
		return false
	}
	if f.DivisionID != "" && r.DivisionID != f.DivisionID {
		return false
	}
	if f.DepartmentID != "" && r.DepartmentID != f.DepartmentID {
		return false
	}
	if f.TeamID != "" && r.TeamID != f.TeamID {
		return false
	}
	return true
}

// GroupAggregate holds the per-group roll-up for one period. DomainAverages
// stays on the 1–5 survey scale; a domain with no answers in the group is
// absent from the map, never zero.
type GroupAggregate struct {
	Key            string // group id, empty at org granularity
	DomainAverages map[Domain]float64
	ResponseCount  int
	Responders     int // distinct responding employees
}

func groupKey(r Response, by Grouping) string {
	switch by {
	case GroupDivision:
		return r.DivisionID
	case GroupDepartment:
		return r.DepartmentID
	case GroupTeam:
		return r.TeamID
	default:
		return ""
	}
}

// Aggregate rolls responses up to the requested granularity. Groups with no
// matching responses do not appear in the result. Output order is
// deterministic (sorted by group key).
func Aggregate(responses []Response, by Grouping, f Filter) []GroupAggregate {
	type acc struct {
		sums   map[Domain]int
		counts map[Domain]int
		total  int
		refs   map[string]struct{}
		anon   int
	}

	groups := make(map[string]*acc)
	for _, r := range responses {
		if !f.matches(r) {
			continue
		}
		key := groupKey(r, by)
		a, ok := groups[key]
		if !ok {
			a = &acc{
				sums:   make(map[Domain]int),
				counts: make(map[Domain]int),
				refs:   make(map[string]struct{}),
			}
			groups[key] = a
		}
		a.total++
		if r.EmployeeRef != "" {
			a.refs[r.EmployeeRef] = struct{}{}
		} else {
			a.anon++
		}
		for d, v := range r.Scores {
			a.sums[d] += v
			a.counts[d]++
		}
	}

	out := make([]GroupAggregate, 0, len(groups))
	for key, a := range groups {
		avgs := make(map[Domain]float64, len(a.sums))
		for d, sum := range a.sums {
			avgs[d] = float64(sum) / float64(a.counts[d])
		}
		out = append(out, GroupAggregate{
			Key:            key,
			DomainAverages: avgs,
			ResponseCount:  a.total,
			Responders:     len(a.refs) + a.anon,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// ParticipationRate returns responders/eligible as a percentage clamped to
// [0,100]. A zero eligible headcount has no defined rate and returns nil.
func ParticipationRate(responders, eligible int) *float64 {
	if eligible <= 0 {
		return nil
	}
	rate := clamp(float64(responders)/float64(eligible)*100, 0, 100)
	return &rate
}

// WeekStart returns the Monday 00:00 UTC that opens the calendar week
// containing t. Trend buckets are keyed by this value.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

// StdDev returns the population standard deviation of values, the documented
// default for the ranker's optional dispersion input. Fewer than two values
// have no spread and return 0.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

// WeekBucket is one calendar week of responses rolled up org-wide.
type WeekBucket struct {
	Start          time.Time
	DomainAverages map[Domain]float64
	ResponseCount  int
	Responders     int
}

// WeeklySeries buckets responses into Monday-anchored UTC calendar weeks,
// ordered chronologically. A response's bucket depends only on its
// submission timestamp.
func WeeklySeries(responses []Response, f Filter) []WeekBucket {
	byWeek := make(map[time.Time][]Response)
	for _, r := range responses {
		if !f.matches(r) {
			continue
		}
		ws := WeekStart(r.SubmittedAt)
		byWeek[ws] = append(byWeek[ws], r)
	}

	out := make([]WeekBucket, 0, len(byWeek))
	for ws, rs := range byWeek {
		aggs := Aggregate(rs, GroupOrg, Filter{})
		b := WeekBucket{Start: ws}
		if len(aggs) == 1 {
			b.DomainAverages = aggs[0].DomainAverages
			b.ResponseCount = aggs[0].ResponseCount
			b.Responders = aggs[0].Responders
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}
