package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sd-server/api/sheets"
	"sd-server/dao/redis"
	"sd-server/db"
	"sd-server/models"
)

const refresherFeed = "날짜,요일,합계,0시,1시,2시,3시,4시,5시,6시,7시,8시,9시,10시,11시,12시\n" +
	"2025. 2. 3,월,587,356,0,0,0,0,0,0,0,0,395,428,459,488\n" +
	"2025. 2. 4,화,603,362,0,0,0,0,0,0,0,0,401,437,470,500\n" +
	"2025. 2. 5,수,0,371,0,0,0,0,0,0,0,0,409,444,476,505\n"

func feedClientWithSnapshot(t *testing.T, csvText string) sheets.ShipmentsFeedAPI {
	t.Helper()
	feedPath := filepath.Join(t.TempDir(), "shipments_feed.csv")
	if err := os.WriteFile(feedPath, []byte(csvText), 0644); err != nil {
		t.Fatalf("failed to create feed snapshot: %v", err)
	}
	return sheets.NewSheetsFeedClientMockWithPath(feedPath)
}

func TestRefreshDashboardData_StoresHistoryAndForecast(t *testing.T) {
	// Setup
	dao := redis.NewRedisHistoryDAO(db.NewMockRedisClient(context.Background()))
	refresher := NewDashboardRefresherService(dao, feedClientWithSnapshot(t, refresherFeed))

	// Act
	if err := refresher.RefreshDashboardData(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Assert: the feed snapshot is stored
	records, err := dao.GetDailyRecords()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[2].DateKey() != "2025-02-05" {
		t.Errorf("Expected today to be 2025-02-05, got %s", records[2].DateKey())
	}

	// Assert: today's forecast extension is cached
	series, err := dao.GetHourlySeries("2025-02-05")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if series == nil {
		t.Fatal("Expected a cached forecast for today")
	}
	for hour := 13; hour < models.HoursPerDay; hour++ {
		if !series.Points[hour].Predicted || series.Points[hour].Value == nil {
			t.Errorf("Hour %d: expected a forecast value", hour)
		}
	}
}

func TestRefreshDashboardData_ReplacesPreviousSnapshot(t *testing.T) {
	// Setup
	dao := redis.NewRedisHistoryDAO(db.NewMockRedisClient(context.Background()))
	refresher := NewDashboardRefresherService(dao, feedClientWithSnapshot(t, refresherFeed))
	if err := refresher.RefreshDashboardData(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// A corrected feed drops one day entirely.
	corrected := "날짜,요일,합계,0시\n" +
		"2025. 2. 4,화,603,362\n" +
		"2025. 2. 5,수,0,371\n"
	refresher = NewDashboardRefresherService(dao, feedClientWithSnapshot(t, corrected))

	// Act
	if err := refresher.RefreshDashboardData(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Assert
	records, err := dao.GetDailyRecords()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected the corrected snapshot's 2 records, got %d", len(records))
	}
}

func TestRefreshDashboardData_FeedFailure(t *testing.T) {
	// Setup: the snapshot path does not exist.
	dao := redis.NewRedisHistoryDAO(db.NewMockRedisClient(context.Background()))
	missing := sheets.NewSheetsFeedClientMockWithPath(filepath.Join(t.TempDir(), "missing.csv"))
	refresher := NewDashboardRefresherService(dao, missing)

	// Act
	err := refresher.RefreshDashboardData()

	// Assert
	if err == nil {
		t.Fatalf("Expected an error when the feed cannot be fetched")
	}
	records, _ := dao.GetDailyRecords()
	if records != nil {
		t.Errorf("Expected no history to be stored on failure, got %v", records)
	}
}
