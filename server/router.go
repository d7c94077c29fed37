package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// DashboardHandlerAPI lists the handler methods the router binds to routes.
type DashboardHandlerAPI interface {
	GetSeries(w http.ResponseWriter, r *http.Request)
	GetIncrements(w http.ResponseWriter, r *http.Request)
	GetStats(w http.ResponseWriter, r *http.Request)
	GetBacktest(w http.ResponseWriter, r *http.Request)
	GetChart(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	dashboardHandler DashboardHandlerAPI
	router           *mux.Router
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	dashboardHandler DashboardHandlerAPI,
	router *mux.Router) *Router {
	return &Router{
		dashboardHandler: dashboardHandler,
		router:           router,
	}
}

func (r *Router) RegisterRoutes() {
	// expects ?day={today|yesterday|daybefore}, defaulting to today
	r.router.HandleFunc("/v1/dashboard/series", r.dashboardHandler.GetSeries).Methods("GET")
	r.router.HandleFunc("/v1/dashboard/increments", r.dashboardHandler.GetIncrements).Methods("GET")

	r.router.HandleFunc("/v1/dashboard/stats", r.dashboardHandler.GetStats).Methods("GET")
	r.router.HandleFunc("/v1/dashboard/backtest", r.dashboardHandler.GetBacktest).Methods("GET")
	r.router.HandleFunc("/v1/dashboard/chart", r.dashboardHandler.GetChart).Methods("GET")

	r.router.HandleFunc("/ping", r.dashboardHandler.Ping).Methods("GET")
}
