package services

import (
	"fmt"
	"io"
	"log"

	"sd-server/dao/redis"
	"sd-server/forecast"
	"sd-server/models"
	"sd-server/util"
)

// Day selectors accepted by the series endpoints.
const (
	DAY_TODAY     = "today"
	DAY_YESTERDAY = "yesterday"
	DAY_BEFORE    = "daybefore"
)

// DashboardService serves the dashboard read path on top of the stored
// feed snapshot and the cached forecast.
type DashboardService struct {
	historyDao *redis.RedisHistoryDAO
}

// NewDashboardService constructs a new DashboardService with Redis dependency injection.
func NewDashboardService(historyDao *redis.RedisHistoryDAO) *DashboardService {
	return &DashboardService{
		historyDao: historyDao,
	}
}

// GetSeries returns the hourly series for one of the three dashboard days.
// Today's series carries the forecast extension; earlier days are observed
// values only.
func (ds *DashboardService) GetSeries(day string) (*models.HourlySeries, error) {
	history, err := ds.loadHistory()
	if err != nil {
		return nil, err
	}

	offset, err := dayOffset(day)
	if err != nil {
		return nil, err
	}

	record := history.DaysAgo(offset)
	if record == nil {
		return nil, fmt.Errorf("no record available for day %q", day)
	}

	if offset > 0 {
		series := observedSeries(*record)
		return &series, nil
	}
	return ds.todaySeries(history, *record)
}

// GetIncrements returns per-hour deltas of the selected day's series.
func (ds *DashboardService) GetIncrements(day string) ([]*int, error) {
	series, err := ds.GetSeries(day)
	if err != nil {
		return nil, err
	}
	return forecast.HourlyIncrements(*series), nil
}

// GetStats returns the dashboard stat cards.
func (ds *DashboardService) GetStats() (*models.DashboardStats, error) {
	history, err := ds.loadHistory()
	if err != nil {
		return nil, err
	}
	stats := forecast.DashboardStats(history)
	return &stats, nil
}

// GetBacktest replays the forecast base against yesterday's observations.
func (ds *DashboardService) GetBacktest() ([]models.BacktestSample, error) {
	history, err := ds.loadHistory()
	if err != nil {
		return nil, err
	}
	return forecast.BacktestYesterday(history), nil
}

// RenderChart writes the dashboard chart HTML for the three most recent days.
func (ds *DashboardService) RenderChart(w io.Writer) error {
	history, err := ds.loadHistory()
	if err != nil {
		return err
	}
	today := history.Today()
	if today == nil {
		return fmt.Errorf("no records available to chart")
	}

	todaySeries, err := ds.todaySeries(history, *today)
	if err != nil {
		return err
	}

	var earlier []models.HourlySeries
	for offset := 1; offset <= 2; offset++ {
		if record := history.DaysAgo(offset); record != nil {
			earlier = append(earlier, observedSeries(*record))
		}
	}
	return util.PlotDashboardChart(w, *todaySeries, earlier)
}

// todaySeries prefers the forecast cached by the refresher; when the cache
// is cold the extension is computed on the spot and cached for the next
// reader.
func (ds *DashboardService) todaySeries(history *forecast.History, record models.DailyRecord) (*models.HourlySeries, error) {
	cached, err := ds.historyDao.GetHourlySeries(record.DateKey())
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	series := forecast.ExtendDay(history, record)
	if err := ds.historyDao.SetHourlySeries(series); err != nil {
		log.Printf("[DashboardService] Failed to cache hourly series for %s: %v", record.DateKey(), err)
	}
	return &series, nil
}

func (ds *DashboardService) loadHistory() (*forecast.History, error) {
	records, err := ds.historyDao.GetDailyRecords()
	if err != nil {
		return nil, err
	}
	return forecast.NewHistory(records), nil
}

func dayOffset(day string) (int, error) {
	switch day {
	case DAY_TODAY:
		return 0, nil
	case DAY_YESTERDAY:
		return 1, nil
	case DAY_BEFORE:
		return 2, nil
	}
	return 0, fmt.Errorf("unknown day selector %q", day)
}

// observedSeries maps a record's reported hours onto a series without any
// forecast extension. Zero cells stay nil, matching the "not yet reported"
// convention of the feed.
func observedSeries(record models.DailyRecord) models.HourlySeries {
	var series models.HourlySeries
	series.Date = record.DateKey()
	for hour := 0; hour < models.HoursPerDay; hour++ {
		if record.Hours[hour] > 0 {
			value := record.Hours[hour]
			series.Points[hour].Value = &value
		}
	}
	return series
}
