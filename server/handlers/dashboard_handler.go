package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	services "sd-server/service"
)

const (
	DAY_QUERY_ARG = "day"
)

// SeriesResponse pairs the hourly values with their forecast flags.
type SeriesResponse struct {
	Date      string `json:"date"`
	Values    []*int `json:"values"`
	Predicted []bool `json:"predicted"`
}

// IncrementsResponse carries per-hour deltas of a day's series.
type IncrementsResponse struct {
	Day        string `json:"day"`
	Increments []*int `json:"increments"`
}

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSeries handles GET /v1/dashboard/series?day={today|yesterday|daybefore}
func (h *DashboardHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	day, ok := h.parseDayArg(r.URL.Query(), w)
	if !ok {
		return // error already written
	}

	series, err := h.dashboardService.GetSeries(day)
	if err != nil {
		log.Println("Error loading dashboard series:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := SeriesResponse{
		Date:      series.Date,
		Values:    series.Values(),
		Predicted: series.PredictedFlags(),
	}
	writeJSON(w, response)
}

// GetIncrements handles GET /v1/dashboard/increments?day={today|yesterday|daybefore}
func (h *DashboardHandler) GetIncrements(w http.ResponseWriter, r *http.Request) {
	day, ok := h.parseDayArg(r.URL.Query(), w)
	if !ok {
		return
	}

	increments, err := h.dashboardService.GetIncrements(day)
	if err != nil {
		log.Println("Error loading dashboard increments:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, IncrementsResponse{Day: day, Increments: increments})
}

// GetStats handles GET /v1/dashboard/stats
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.GetStats()
	if err != nil {
		log.Println("Error loading dashboard stats:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, stats)
}

// GetBacktest handles GET /v1/dashboard/backtest
func (h *DashboardHandler) GetBacktest(w http.ResponseWriter, r *http.Request) {
	samples, err := h.dashboardService.GetBacktest()
	if err != nil {
		log.Println("Error loading dashboard backtest:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, samples)
}

// GetChart handles GET /v1/dashboard/chart, rendering the chart HTML inline.
func (h *DashboardHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.dashboardService.RenderChart(w); err != nil {
		log.Println("Error rendering dashboard chart:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Ping handles GET /ping
func (h *DashboardHandler) Ping(w http.ResponseWriter, r *http.Request) {
	log.Println("Pinging server")
	writeJSON(w, map[string]string{"status": "pong"})
}

// parseDayArg reads the day selector, defaulting to today.
func (h *DashboardHandler) parseDayArg(vals url.Values, w http.ResponseWriter) (string, bool) {
	day := vals.Get(DAY_QUERY_ARG)
	if day == "" {
		return services.DAY_TODAY, true
	}
	switch day {
	case services.DAY_TODAY, services.DAY_YESTERDAY, services.DAY_BEFORE:
		return day, true
	}
	http.Error(w, "Invalid argument "+DAY_QUERY_ARG, http.StatusBadRequest)
	return "", false
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println("Error encoding response:", err)
	}
}
