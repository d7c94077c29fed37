package db_test

import (
	"context"
	"sort"

	"sd-server/db"

	"testing"
)

// Test the Set and Get methods for both MockRedisClient and StoreRedisClient
func TestRedisClient_SetAndGet(t *testing.T) {
	tests := []struct {
		name   string
		client db.RedisClient
	}{
		{"MockRedisClient", db.NewMockRedisClient(context.Background())},
		// Replace with a real Redis client configuration for integration testing
		// {"StoreRedisClient", db.NewStoreRedisClient(context.Background(), realRedisClient)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			key := "test-key"
			value := "test-value"

			// Act
			err := test.client.Set(key, value)
			if err != nil {
				t.Fatalf("Set failed: %v", err)
			}

			retrieved, err := test.client.Get(key)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}

			// Assert
			if retrieved != value {
				t.Errorf("Expected %s, got %s", value, retrieved)
			}
		})
	}
}

// Test Keys pattern matching and Del for MockRedisClient
func TestRedisClient_KeysAndDel(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())

	// Arrange
	_ = client.Set("hourly_forecast_v1:2025-02-01", "a")
	_ = client.Set("hourly_forecast_v1:2025-02-02", "b")
	_ = client.Set("shipment_history_v1", "c")

	// Act
	keys, err := client.Keys("hourly_forecast_v1:*")
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	sort.Strings(keys)

	// Assert
	expected := []string{"hourly_forecast_v1:2025-02-01", "hourly_forecast_v1:2025-02-02"}
	if len(keys) != len(expected) {
		t.Fatalf("Expected %d keys, got %d: %v", len(expected), len(keys), keys)
	}
	for i, want := range expected {
		if keys[i] != want {
			t.Errorf("Expected key %s, got %s", want, keys[i])
		}
	}

	// Act: delete one and list again
	if err := client.Del("hourly_forecast_v1:2025-02-01"); err != nil {
		t.Fatalf("Del failed: %v", err)
	}
	keys, _ = client.Keys("hourly_forecast_v1:*")
	if len(keys) != 1 || keys[0] != "hourly_forecast_v1:2025-02-02" {
		t.Errorf("Expected only the remaining key, got %v", keys)
	}

	if _, err := client.Get("hourly_forecast_v1:2025-02-01"); err == nil {
		t.Errorf("Expected an error for a deleted key")
	}
}

// Test Ping for both MockRedisClient and StoreRedisClient
func TestRedisClient_Ping(t *testing.T) {
	tests := []struct {
		name   string
		client db.RedisClient
	}{
		{"MockRedisClient", db.NewMockRedisClient(context.Background())},
		// Replace with a real Redis client configuration for integration testing
		// {"StoreRedisClient", db.NewStoreRedisClient(context.Background(), realRedisClient)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// Act
			err := test.client.Ping()

			// Assert
			if err != nil {
				t.Errorf("Ping failed: %v", err)
			}
		})
	}
}
