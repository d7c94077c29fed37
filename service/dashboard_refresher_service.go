package services

import (
	"log"
	"sync"
	"time"

	"sd-server/api/sheets"
	"sd-server/dao/redis"
	"sd-server/forecast"
	"sd-server/util"
)

// DashboardRefresherService periodically pulls the shipments feed, replaces
// the stored history and recomputes today's forecast extension.
type DashboardRefresherService struct {
	historyDao *redis.RedisHistoryDAO
	feedAPI    sheets.ShipmentsFeedAPI
	running    sync.Mutex
}

// NewDashboardRefresherService constructs a new Refresher with dependencies.
func NewDashboardRefresherService(
	historyDao *redis.RedisHistoryDAO,
	feedAPI sheets.ShipmentsFeedAPI,
) *DashboardRefresherService {
	return &DashboardRefresherService{
		historyDao: historyDao,
		feedAPI:    feedAPI,
	}
}

// StartPeriodicJob launches the background loop at the given interval.
func (dr *DashboardRefresherService) StartPeriodicJob(interval time.Duration) {
	go dr.startPeriodicJob(interval)
}

func (dr *DashboardRefresherService) startPeriodicJob(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		log.Println("[DashboardRefresherService] Running periodic dashboard refresher job.")
		if err := dr.RefreshDashboardData(); err != nil {
			log.Printf("[DashboardRefresherService] RefreshDashboardData returned error: %v", err)
		} else {
			log.Println("[DashboardRefresherService] RefreshDashboardData completed successfully.")
		}
	}
}

// RefreshDashboardData orchestrates the three steps: fetch, replace, re-forecast.
// A refresh already in flight makes the new run a no-op; the feed moves once
// an hour at most, so overlapping runs would only duplicate work.
func (dr *DashboardRefresherService) RefreshDashboardData() error {
	if !dr.running.TryLock() {
		log.Println("[DashboardRefresherService] Refresh already in progress, skipping.")
		return nil
	}
	defer dr.running.Unlock()

	// 1) Fetch the published feed
	csvText, err := dr.feedAPI.FetchShipmentsCSV()
	if err != nil {
		log.Printf("[DashboardRefresherService] Failed to fetch shipments feed: %v", err)
		return err
	}

	records, err := util.ParseShipmentsCSV(csvText)
	if err != nil {
		log.Printf("[DashboardRefresherService] Failed to parse shipments feed: %v", err)
		return err
	}
	log.Printf("[DashboardRefresherService] Parsed %d daily records from feed", len(records))

	// 2) Replace the stored snapshot wholesale
	if err := dr.historyDao.ReplaceDailyRecords(records); err != nil {
		return err
	}

	// 3) Recompute and cache today's forecast extension
	history := forecast.NewHistory(records)
	today := history.Today()
	if today == nil {
		log.Println("[DashboardRefresherService] Feed had no records; nothing to forecast.")
		return nil
	}

	series := forecast.ExtendDay(history, *today)
	if err := dr.historyDao.SetHourlySeries(series); err != nil {
		return err
	}
	log.Printf("[DashboardRefresherService] Cached forecast extension for %s", today.DateKey())
	return nil
}
