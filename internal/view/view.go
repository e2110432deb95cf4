// Package view derives column lists and aggregates from the task
// collection. Everything here is a pure function of its inputs; no
// side effects and no persistence.
package view

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/mtlprog/taskboard/internal/domain"
)

// PriorityAll is the priority filter value that matches every task.
const PriorityAll = "all"

// dateOnly is the layout of the calendar-day portion of a timestamp.
const dateOnly = "2006-01-02"

// Filter holds the active search, priority, and sort state applied to
// column views.
type Filter struct {
	Search        string
	Priority      string // PriorityAll or a priority key
	SortByDueDate bool
}

// ColumnTasks returns the tasks of one column after applying the
// filter. With SortByDueDate set, tasks order ascending by due date;
// tasks without a due date sort after all dated tasks, keeping their
// filtered order among themselves.
func ColumnTasks(tasks []domain.Task, status domain.Status, f Filter) []domain.Task {
	query := strings.ToLower(strings.TrimSpace(f.Search))

	var out []domain.Task
	for _, t := range tasks {
		if t.Status != status {
			continue
		}
		if query != "" && !matchesSearch(t, query) {
			continue
		}
		if f.Priority != "" && f.Priority != PriorityAll && string(t.Priority) != f.Priority {
			continue
		}
		out = append(out, t)
	}

	if f.SortByDueDate {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].DueDate, out[j].DueDate
			if a == "" {
				return false
			}
			if b == "" {
				return true
			}
			// ISO date strings order lexically.
			return a < b
		})
	}

	return out
}

// matchesSearch reports whether the task's title, description, or any
// tag contains the lowercased query.
func matchesSearch(t domain.Task, query string) bool {
	if strings.Contains(strings.ToLower(t.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), query) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// BoardStats aggregates the board's headline numbers.
type BoardStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	InProgress     int `json:"inProgress"`
	CompletionRate int `json:"completionRate"`
}

// Stats computes the board statistics. CompletionRate is the rounded
// done/total percentage, 0 for an empty board.
func Stats(tasks []domain.Task) BoardStats {
	stats := BoardStats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case domain.StatusDone:
			stats.Completed++
		case domain.StatusDoing:
			stats.InProgress++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return stats
}

// PriorityShare is the percentage share of each priority level.
type PriorityShare struct {
	High   float64 `json:"high"`
	Medium float64 `json:"medium"`
	Low    float64 `json:"low"`
}

// PriorityDistribution computes the share of each priority over the
// whole collection. An empty collection yields all zeros (the divisor
// is floored at 1).
func PriorityDistribution(tasks []domain.Task) PriorityShare {
	var high, medium, low int
	for _, t := range tasks {
		switch t.Priority {
		case domain.PriorityHigh:
			high++
		case domain.PriorityMedium:
			medium++
		case domain.PriorityLow:
			low++
		}
	}

	total := len(tasks)
	if total == 0 {
		total = 1
	}
	return PriorityShare{
		High:   float64(high) / float64(total) * 100,
		Medium: float64(medium) / float64(total) * 100,
		Low:    float64(low) / float64(total) * 100,
	}
}

// TrendPoint is one day of the completion trend.
type TrendPoint struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// SevenDayTrend counts, for each of the 7 calendar days ending at now
// (oldest first), the done tasks whose UpdatedAt falls on that day.
// A task moved to done but never edited carries no UpdatedAt and so
// never shows up here; that matches the board's edit-only stamping.
func SevenDayTrend(tasks []domain.Task, now time.Time) []TrendPoint {
	points := make([]TrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		date := day.Format(dateOnly)

		count := 0
		for _, t := range tasks {
			if t.Status != domain.StatusDone || t.UpdatedAt == nil {
				continue
			}
			if t.UpdatedAt.Format(dateOnly) == date {
				count++
			}
		}

		points = append(points, TrendPoint{Day: day.Format("Mon"), Count: count})
	}
	return points
}

// WeekTotal sums the trend counts.
func WeekTotal(points []TrendPoint) int {
	total := 0
	for _, p := range points {
		total += p.Count
	}
	return total
}

// DailyAverage is the mean of the trend counts over the 7 days.
func DailyAverage(points []TrendPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	return float64(WeekTotal(points)) / float64(len(points))
}
