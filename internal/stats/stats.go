// Package stats folds allocated entries into totals and weekly reports.
package stats

import (
	"sort"

	"github.com/markargand/labourlog/internal/clock"
	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/overtime"
	"github.com/markargand/labourlog/internal/timeutil"
)

// Breakdown contains the summed hours of one group
type Breakdown struct {
	Key        string // Employee display name or project code; "" for missing references
	Hours      float64
	Base       float64
	OT         float64
	EntryCount int
}

// Totals contains aggregated hours for a set of entries
type Totals struct {
	Hours      float64
	Base       float64
	OT         float64
	EntryCount int
	ByProject  []Breakdown // keyed by project code
	ByEmployee []Breakdown // keyed by employee display name
}

// WeeklyReport contains the hours of every entry in one ISO week
type WeeklyReport struct {
	Week       string
	Totals     Breakdown
	ByEmployee []Breakdown
	ByProject  []Breakdown
}

// sums accumulates in hundredths of an hour so totals stay exact
type sums struct {
	hours, base, ot int64
	count           int
}

func (s *sums) add(e entry.TimeEntry, split overtime.Split) {
	s.hours += clock.Hundredths(e.Hours)
	s.base += clock.Hundredths(split.Base)
	s.ot += clock.Hundredths(split.OT)
	s.count++
}

func (s sums) breakdown(key string) Breakdown {
	return Breakdown{
		Key:        key,
		Hours:      clock.FromHundredths(s.hours),
		Base:       clock.FromHundredths(s.base),
		OT:         clock.FromHundredths(s.ot),
		EntryCount: s.count,
	}
}

type grouping map[string]*sums

func (g grouping) add(key string, e entry.TimeEntry, split overtime.Split) {
	if _, exists := g[key]; !exists {
		g[key] = &sums{}
	}
	g[key].add(e, split)
}

// sorted returns breakdowns ordered by hours descending, then key
func (g grouping) sorted() []Breakdown {
	breakdowns := make([]Breakdown, 0, len(g))
	for key, s := range g {
		breakdowns = append(breakdowns, s.breakdown(key))
	}
	sort.Slice(breakdowns, func(i, j int) bool {
		if breakdowns[i].Hours != breakdowns[j].Hours {
			return breakdowns[i].Hours > breakdowns[j].Hours
		}
		return breakdowns[i].Key < breakdowns[j].Key
	})
	return breakdowns
}

// CalculateTotals sums hours, base and overtime across entries, with
// per-project and per-employee partial sums. Entries missing from alloc
// contribute their hours but no base or overtime.
func CalculateTotals(entries []entry.TimeEntry, alloc overtime.Allocation, dir *entry.Directory) Totals {
	var total sums
	byProject := grouping{}
	byEmployee := grouping{}

	for _, e := range entries {
		split := alloc[e.ID]
		total.add(e, split)
		byProject.add(dir.ProjectCode(e.ProjectID), e, split)
		byEmployee.add(dir.EmployeeName(e.EmployeeID), e, split)
	}

	t := total.breakdown("")
	return Totals{
		Hours:      t.Hours,
		Base:       t.Base,
		OT:         t.OT,
		EntryCount: t.EntryCount,
		ByProject:  byProject.sorted(),
		ByEmployee: byEmployee.sorted(),
	}
}

// CalculateWeekly aggregates the entries whose ISO week label equals week,
// grouped by employee display name and by project code.
func CalculateWeekly(entries []entry.TimeEntry, alloc overtime.Allocation, dir *entry.Directory, week string) WeeklyReport {
	var total sums
	byEmployee := grouping{}
	byProject := grouping{}

	for _, e := range InWeek(entries, week) {
		split := alloc[e.ID]
		total.add(e, split)
		byEmployee.add(dir.EmployeeName(e.EmployeeID), e, split)
		byProject.add(dir.ProjectCode(e.ProjectID), e, split)
	}

	return WeeklyReport{
		Week:       week,
		Totals:     total.breakdown(week),
		ByEmployee: byEmployee.sorted(),
		ByProject:  byProject.sorted(),
	}
}

// InWeek returns the entries whose ISO week label equals week.
func InWeek(entries []entry.TimeEntry, week string) []entry.TimeEntry {
	var out []entry.TimeEntry
	for _, e := range entries {
		if timeutil.WeekLabelForDate(e.Date) == week {
			out = append(out, e)
		}
	}
	return out
}
