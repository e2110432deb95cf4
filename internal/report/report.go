// Package report transforms the task collection and board statistics
// into neutral tabular structures consumed by external exporters:
// CSV text, a JSON dump, and tabular PDF renderers.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mtlprog/taskboard/internal/domain"
	"github.com/mtlprog/taskboard/internal/view"
)

// duePlaceholder stands in for a missing due date in report rows.
const duePlaceholder = "-"

// Report is the neutral structure behind the tabular exports: a
// metrics summary plus one section per column in fixed order.
type Report struct {
	GeneratedAt time.Time   `json:"generatedAt"`
	Metrics     []MetricRow `json:"metrics"`
	Sections    []Section   `json:"sections"`
}

// MetricRow is one line of the metrics summary table.
type MetricRow struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Section lists the tasks of one column.
type Section struct {
	Column string `json:"column"`
	Title  string `json:"title"`
	Rows   []Row  `json:"rows"`
}

// Row is one task line within a section.
type Row struct {
	Title    string `json:"title"`
	Priority string `json:"priority"`
	DueDate  string `json:"dueDate"`
}

// Build assembles the report from the current collection and stats.
func Build(tasks []domain.Task, stats view.BoardStats, now time.Time) Report {
	r := Report{
		GeneratedAt: now,
		Metrics: []MetricRow{
			{Name: "Total Tasks", Value: fmt.Sprintf("%d", stats.Total)},
			{Name: "In Progress", Value: fmt.Sprintf("%d", stats.InProgress)},
			{Name: "Completed", Value: fmt.Sprintf("%d", stats.Completed)},
			{Name: "Progress", Value: fmt.Sprintf("%d%%", stats.CompletionRate)},
		},
	}

	for _, status := range domain.Columns() {
		section := Section{Column: string(status), Title: status.Title()}
		for _, t := range tasks {
			if t.Status != status {
				continue
			}
			due := t.DueDate
			if due == "" {
				due = duePlaceholder
			}
			section.Rows = append(section.Rows, Row{
				Title:    t.Title,
				Priority: string(t.Priority),
				DueDate:  due,
			})
		}
		r.Sections = append(r.Sections, section)
	}

	return r
}

// BoardCSV serializes the collection in the board export format:
// every field double-quoted, tags joined with "; ".
func BoardCSV(tasks []domain.Task) string {
	lines := []string{"Title,Priority,Status,Due Date,Tags"}
	for _, t := range tasks {
		lines = append(lines, joinQuoted(
			t.Title,
			string(t.Priority),
			string(t.Status),
			t.DueDate,
			strings.Join(t.Tags, "; "),
		))
	}
	return strings.Join(lines, "\n")
}

// FullCSV serializes the collection with every field for the
// "download my data" export.
func FullCSV(tasks []domain.Task) string {
	lines := []string{"Title,Description,Priority,Status,Due Date,Tags,Created At"}
	for _, t := range tasks {
		lines = append(lines, joinQuoted(
			t.Title,
			t.Description,
			string(t.Priority),
			string(t.Status),
			t.DueDate,
			strings.Join(t.Tags, "; "),
			t.CreatedAt.Format("2006-01-02"),
		))
	}
	return strings.Join(lines, "\n")
}

// TasksJSON serializes the full collection, pretty-printed.
func TasksJSON(tasks []domain.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return json.MarshalIndent(tasks, "", "  ")
}

// joinQuoted builds one CSV line with each field double-quoted and
// inner quotes doubled.
func joinQuoted(fields ...string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
