package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mtlprog/taskboard/internal/report"
	"github.com/mtlprog/taskboard/internal/view"
)

// exportFilename builds the dated attachment name the exports use.
func exportFilename(ext string) string {
	return fmt.Sprintf("tasks-%s.%s", time.Now().Format("2006-01-02"), ext)
}

// handleExportCSV serves the board CSV export.
// @Summary Export board CSV
// @Description Download the task collection as CSV (Title, Priority, Status, Due Date, Tags)
// @Tags export
// @Produce text/csv
// @Success 200 {string} string
// @Router /export/csv [get]
func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	csv := report.BoardCSV(h.store.Tasks())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename("csv")))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		slog.Error("failed to write CSV export", "error", err)
	}
}

// handleExportFullCSV serves the full-data CSV export.
// @Summary Export full CSV
// @Description Download every task field as CSV, including description, tags, and creation date
// @Tags export
// @Produce text/csv
// @Success 200 {string} string
// @Router /export/full-csv [get]
func (h *Handler) handleExportFullCSV(w http.ResponseWriter, r *http.Request) {
	csv := report.FullCSV(h.store.Tasks())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename("csv")))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		slog.Error("failed to write CSV export", "error", err)
	}
}

// handleExportJSON serves the raw JSON dump of the collection.
// @Summary Export JSON
// @Description Download the full task collection, pretty-printed
// @Tags export
// @Produce json
// @Success 200 {array} dto.TaskInfo
// @Router /export/json [get]
func (h *Handler) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := report.TasksJSON(h.store.Tasks())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to encode tasks")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename("json")))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write JSON export", "error", err)
	}
}

// handleReport returns the neutral report structure consumed by
// external tabular renderers.
// @Summary Report structure
// @Description Get the metrics table and per-column sections behind the PDF export
// @Tags export
// @Produce json
// @Success 200 {object} report.Report
// @Router /report [get]
func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	tasks := h.store.Tasks()

	respondJSON(w, http.StatusOK, report.Build(tasks, view.Stats(tasks), time.Now()))
}
