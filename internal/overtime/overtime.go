// Package overtime splits logged hours into base and overtime portions
// against a daily per-employee threshold.
package overtime

import (
	"sort"

	"github.com/markargand/labourlog/internal/clock"
	"github.com/markargand/labourlog/internal/entry"
)

// Split is the base/overtime allocation of one entry's hours.
type Split struct {
	Base float64
	OT   float64
}

// Allocation maps entry id to its split.
type Allocation map[string]Split

// Scope selects which entries count toward a day's cumulative hours.
type Scope string

const (
	// ScopeVisible allocates over exactly the entries passed in.
	ScopeVisible Scope = "visible"
	// ScopeFullDay allocates over every known entry of the same employee and day.
	ScopeFullDay Scope = "day"
)

// ParseScope converts s to a Scope, defaulting to ScopeVisible for "".
func ParseScope(s string) (Scope, bool) {
	switch Scope(s) {
	case "", ScopeVisible:
		return ScopeVisible, true
	case ScopeFullDay:
		return ScopeFullDay, true
	}
	return "", false
}

type dayKey struct {
	employeeID string
	date       string
}

// Allocate splits each entry's hours into base and overtime.
//
// Entries are grouped by (employee, date) and walked in start-time order;
// ties keep their input order. Within a group the first thresholdHours
// count as base and the rest as overtime. The result covers exactly the
// entries given, so callers decide the scope by what they pass in.
//
// Arithmetic runs in hundredths of an hour so base+ot equals hours exactly.
func Allocate(entries []entry.TimeEntry, thresholdHours float64) Allocation {
	groups := make(map[dayKey][]entry.TimeEntry)
	var order []dayKey
	for _, e := range entries {
		k := dayKey{employeeID: e.EmployeeID, date: e.Date}
		if _, exists := groups[k]; !exists {
			order = append(order, k)
		}
		groups[k] = append(groups[k], e)
	}

	threshold := clock.Hundredths(thresholdHours)
	alloc := make(Allocation, len(entries))

	for _, k := range order {
		group := groups[k]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].StartMinutes() < group[j].StartMinutes()
		})

		var cumulative int64
		for _, e := range group {
			hours := clock.Hundredths(e.Hours)
			base := clamp(threshold-cumulative, 0, hours)
			alloc[e.ID] = Split{
				Base: clock.FromHundredths(base),
				OT:   clock.FromHundredths(hours - base),
			}
			cumulative += hours
		}
	}

	return alloc
}

// AllocateScoped allocates over visible using the given scope.
// With ScopeFullDay, entries from all that share a visible entry's
// (employee, day) also count toward that day's cumulative total, but only
// visible entries appear in the result.
func AllocateScoped(visible, all []entry.TimeEntry, thresholdHours float64, scope Scope) Allocation {
	if scope != ScopeFullDay {
		return Allocate(visible, thresholdHours)
	}

	days := make(map[dayKey]bool, len(visible))
	ids := make(map[string]bool, len(visible))
	for _, e := range visible {
		days[dayKey{employeeID: e.EmployeeID, date: e.Date}] = true
		ids[e.ID] = true
	}

	var pool []entry.TimeEntry
	for _, e := range all {
		if days[dayKey{employeeID: e.EmployeeID, date: e.Date}] {
			pool = append(pool, e)
		}
	}

	full := Allocate(pool, thresholdHours)
	alloc := make(Allocation, len(visible))
	for id, s := range full {
		if ids[id] {
			alloc[id] = s
		}
	}
	return alloc
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
