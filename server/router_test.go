package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

// MockDashboardHandler is a mock implementation of the dashboard handler.
type MockDashboardHandler struct{}

func (h *MockDashboardHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "series"}`))
}

func (h *MockDashboardHandler) GetIncrements(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "increments"}`))
}

func (h *MockDashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "stats"}`))
}

func (h *MockDashboardHandler) GetBacktest(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "backtest"}`))
}

func (h *MockDashboardHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`<html></html>`))
}

func (h *MockDashboardHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "pong"}`))
}

func TestRouter_RegisterRoutes(t *testing.T) {
	// Setup
	mockDashboardHandler := &MockDashboardHandler{}
	router := mux.NewRouter()
	appRouter := NewRouter(mockDashboardHandler, router)
	appRouter.RegisterRoutes()

	// Test Cases
	tests := []struct {
		name       string
		method     string
		path       string
		statusCode int
		response   string
	}{
		{
			name:       "Get Series",
			method:     "GET",
			path:       "/v1/dashboard/series",
			statusCode: http.StatusOK,
			response:   `{"message": "series"}`,
		},
		{
			name:       "Get Increments",
			method:     "GET",
			path:       "/v1/dashboard/increments",
			statusCode: http.StatusOK,
			response:   `{"message": "increments"}`,
		},
		{
			name:       "Get Stats",
			method:     "GET",
			path:       "/v1/dashboard/stats",
			statusCode: http.StatusOK,
			response:   `{"message": "stats"}`,
		},
		{
			name:       "Get Backtest",
			method:     "GET",
			path:       "/v1/dashboard/backtest",
			statusCode: http.StatusOK,
			response:   `{"message": "backtest"}`,
		},
		{
			name:       "Get Chart",
			method:     "GET",
			path:       "/v1/dashboard/chart",
			statusCode: http.StatusOK,
			response:   `<html></html>`,
		},
		{
			name:       "Ping Route",
			method:     "GET",
			path:       "/ping",
			statusCode: http.StatusOK,
			response:   `{"status": "pong"}`,
		},
		{
			name:       "Invalid Route",
			method:     "GET",
			path:       "/invalid",
			statusCode: http.StatusNotFound,
		},
		{
			name:       "Series Rejects POST",
			method:     "POST",
			path:       "/v1/dashboard/series",
			statusCode: http.StatusMethodNotAllowed,
		},
	}

	// Run tests
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			// Assert status code
			if rr.Code != test.statusCode {
				t.Errorf("Expected status %d, got %d", test.statusCode, rr.Code)
			}

			// Assert response body, if applicable
			if test.response != "" && rr.Body.String() != test.response {
				t.Errorf("Expected response %s, got %s", test.response, rr.Body.String())
			}
		})
	}
}
