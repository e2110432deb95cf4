package handler

import (
	"net/http"
	"time"

	"github.com/mtlprog/taskboard/internal/domain"
	"github.com/mtlprog/taskboard/internal/handler/dto"
	"github.com/mtlprog/taskboard/internal/view"
)

// activityDisplayCap is how many entries the activity endpoint shows.
// Storage keeps the full history.
const activityDisplayCap = 20

// columnFilter parses the filter query parameters shared by the board
// and column views.
func columnFilter(r *http.Request) view.Filter {
	query := r.URL.Query()

	priority := query.Get("priority")
	if priority == "" {
		priority = view.PriorityAll
	}

	return view.Filter{
		Search:        query.Get("search"),
		Priority:      priority,
		SortByDueDate: query.Get("sortByDueDate") == "true",
	}
}

// handleBoard returns the per-column task lists and board stats.
// @Summary Board view
// @Description Get the filtered task list of every column plus board statistics
// @Tags board
// @Produce json
// @Param search query string false "Case-insensitive search over title, description, tags"
// @Param priority query string false "Priority filter: all (default), low, medium, high"
// @Param sortByDueDate query bool false "Sort each column ascending by due date"
// @Success 200 {object} dto.BoardResponse
// @Router /board [get]
func (h *Handler) handleBoard(w http.ResponseWriter, r *http.Request) {
	tasks := h.store.Tasks()
	filter := columnFilter(r)

	columns := make([]dto.ColumnInfo, 0, 3)
	for _, status := range domain.Columns() {
		columnTasks := view.ColumnTasks(tasks, status, filter)
		columns = append(columns, dto.ColumnInfo{
			Key:   string(status),
			Title: status.Title(),
			Count: len(columnTasks),
			Tasks: dto.ToTaskInfos(columnTasks),
		})
	}

	respondJSON(w, http.StatusOK, dto.BoardResponse{
		Columns: columns,
		Stats:   view.Stats(tasks),
	})
}

// handleActivity returns the most recent activity entries.
// @Summary Recent activity
// @Description Get the newest 20 activity entries (storage keeps the full history)
// @Tags board
// @Produce json
// @Success 200 {object} dto.ActivityResponse
// @Router /activity [get]
func (h *Handler) handleActivity(w http.ResponseWriter, r *http.Request) {
	entries := h.store.Activities()
	total := len(entries)
	if total > activityDisplayCap {
		entries = entries[:activityDisplayCap]
	}

	respondJSON(w, http.StatusOK, dto.ActivityResponse{
		Activities: dto.ToActivityInfos(entries),
		Total:      total,
	})
}

// handleAnalytics returns the board's derived analytics.
// @Summary Analytics
// @Description Get board stats, priority distribution, and the 7-day completion trend
// @Tags board
// @Produce json
// @Success 200 {object} dto.AnalyticsResponse
// @Router /analytics [get]
func (h *Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	tasks := h.store.Tasks()
	trend := view.SevenDayTrend(tasks, time.Now())

	respondJSON(w, http.StatusOK, dto.AnalyticsResponse{
		Stats:        view.Stats(tasks),
		Priority:     view.PriorityDistribution(tasks),
		Trend:        trend,
		WeekTotal:    view.WeekTotal(trend),
		DailyAverage: view.DailyAverage(trend),
	})
}
