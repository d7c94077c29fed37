package redis

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"sd-server/db"
	"sd-server/models"
)

const SHIPMENT_HISTORY_KEY_V1 = "shipment_history_v1"

// HOURLY_FORECAST_KEY_FORMAT is used to cache the extended hourly series per day.
const HOURLY_FORECAST_KEY_FORMAT = "hourly_forecast_v1:%s"

// RedisHistoryDAO handles shipment history operations using Redis.
type RedisHistoryDAO struct {
	client db.RedisClient
}

// NewRedisHistoryDAO initializes a RedisHistoryDAO with the Redis client.
func NewRedisHistoryDAO(client db.RedisClient) *RedisHistoryDAO {
	return &RedisHistoryDAO{client: client}
}

// ReplaceDailyRecords stores the full feed snapshot wholesale. The feed is
// the source of truth and rows can be edited retroactively, so the history
// is always replaced rather than merged.
func (dao *RedisHistoryDAO) ReplaceDailyRecords(records []models.DailyRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal daily records: %w", err)
	}
	if err := dao.client.Set(SHIPMENT_HISTORY_KEY_V1, string(data)); err != nil {
		return fmt.Errorf("failed to set shipment history in redis: %w", err)
	}
	log.Printf("[RedisHistoryDAO] Replaced shipment history with %d records", len(records))
	return nil
}

// GetDailyRecords retrieves the stored feed snapshot.
func (dao *RedisHistoryDAO) GetDailyRecords() ([]models.DailyRecord, error) {
	str, err := dao.client.Get(SHIPMENT_HISTORY_KEY_V1)
	if err != nil {
		if strings.Contains(err.Error(), "nil") || strings.Contains(err.Error(), "not found") {
			return nil, nil // No snapshot yet.
		}
		return nil, fmt.Errorf("failed to get shipment history from redis: %w", err)
	}
	var records []models.DailyRecord
	if err := json.Unmarshal([]byte(str), &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shipment history JSON: %w", err)
	}
	return records, nil
}

// SetHourlySeries caches the extended hourly series for a day.
func (dao *RedisHistoryDAO) SetHourlySeries(series models.HourlySeries) error {
	key := fmt.Sprintf(HOURLY_FORECAST_KEY_FORMAT, series.Date)
	data, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("failed to marshal hourly series for %s: %w", series.Date, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set hourly series in redis: %w", err)
	}
	return nil
}

// GetHourlySeries retrieves the cached hourly series for a day. A cache
// miss returns nil without an error.
func (dao *RedisHistoryDAO) GetHourlySeries(date string) (*models.HourlySeries, error) {
	key := fmt.Sprintf(HOURLY_FORECAST_KEY_FORMAT, date)
	str, err := dao.client.Get(key)
	if err != nil {
		if strings.Contains(err.Error(), "nil") || strings.Contains(err.Error(), "not found") {
			return nil, nil // Return nil on cache miss
		}
		return nil, fmt.Errorf("failed to get hourly series from redis: %w", err)
	}
	var series models.HourlySeries
	if err := json.Unmarshal([]byte(str), &series); err != nil {
		return nil, fmt.Errorf("failed to unmarshal hourly series JSON: %w", err)
	}
	return &series, nil
}

// ListCachedForecastDates returns the dates for all cached hourly series.
func (dao *RedisHistoryDAO) ListCachedForecastDates() ([]string, error) {
	pattern := fmt.Sprintf(HOURLY_FORECAST_KEY_FORMAT, "*")
	keys, err := dao.client.Keys(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list hourly series keys: %w", err)
	}

	prefix := fmt.Sprintf(HOURLY_FORECAST_KEY_FORMAT, "")
	dates := make([]string, 0, len(keys))
	for _, k := range keys {
		dates = append(dates, strings.TrimPrefix(k, prefix))
	}
	return dates, nil
}

func (dao *RedisHistoryDAO) DeleteHourlySeries(date string) error {
	key := fmt.Sprintf(HOURLY_FORECAST_KEY_FORMAT, date)
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("failed to delete hourly series key %s: %w", key, err)
	}
	log.Printf("[RedisHistoryDAO] Deleted cached hourly series for %s", date)
	return nil
}
