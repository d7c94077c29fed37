package models

// DashboardStats holds the simple reductions shown in the stat cards.
// These are recomputed on every refresh and involve no forecasting.
type DashboardStats struct {
	TodayTotal       int `json:"today_total"`
	YesterdayLast    int `json:"yesterday_last"`
	AvgDailyTotal    int `json:"avg_daily_total"`
	AvgHourlyShipped int `json:"avg_hourly_shipped"`
}

// BacktestSample is one hour of the accuracy backtest: the pipeline's base
// prediction replayed against an already-observed day.
type BacktestSample struct {
	Hour         int     `json:"hour"`
	Actual       int     `json:"actual"`
	Predicted    int     `json:"predicted"`
	ErrorPercent float64 `json:"error_percent"`
}
