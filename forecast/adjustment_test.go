package forecast

import (
	"math"
	"testing"
	"time"

	"sd-server/models"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return parsed
}

func TestWeekdayFactor_AverageRatioClamped(t *testing.T) {
	// Two Mondays doubling from hour 9 to hour 10: raw ratio 2.0 must be
	// clamped to the weekday range ceiling of 1.3.
	h := NewHistory([]models.DailyRecord{
		day(t, "2025-03-03", 0, map[int]int{9: 100, 10: 200}),
		day(t, "2025-03-10", 0, map[int]int{9: 50, 10: 100}),
	})

	factor := WeekdayFactor(h, mustDate(t, "2025-03-17"), 10)

	if factor.Insufficient {
		t.Fatalf("Expected a data-backed factor, got insufficient")
	}
	if factor.Value != 1.3 {
		t.Errorf("Expected clamp to 1.3, got %f", factor.Value)
	}
}

func TestWeekdayFactor_InsufficientData(t *testing.T) {
	// History holds only Tuesdays; a Monday target has no samples.
	h := NewHistory([]models.DailyRecord{
		day(t, "2025-03-04", 0, map[int]int{9: 100, 10: 110}),
	})

	factor := WeekdayFactor(h, mustDate(t, "2025-03-03"), 10)

	if !factor.Insufficient {
		t.Errorf("Expected insufficient-data outcome")
	}
	if factor.Value != 1.0 {
		t.Errorf("Expected neutral value 1.0, got %f", factor.Value)
	}
}

func TestWeekdayFactor_ModerateRatioPassesThrough(t *testing.T) {
	h := NewHistory([]models.DailyRecord{
		day(t, "2025-03-03", 0, map[int]int{9: 100, 10: 110}),
	})

	factor := WeekdayFactor(h, mustDate(t, "2025-03-10"), 10)

	if math.Abs(factor.Value-1.1) > 1e-9 {
		t.Errorf("Expected 1.1, got %f", factor.Value)
	}
}

func TestMonthPeriodFactor_ClampedHigh(t *testing.T) {
	// Early-month peaks run at 400 against an overall average of 250:
	// raw ratio 1.6, clamped to 1.4.
	h := NewHistory([]models.DailyRecord{
		day(t, "2025-03-02", 400, nil),
		day(t, "2025-03-05", 400, nil),
		day(t, "2025-03-25", 100, nil),
		day(t, "2025-03-28", 100, nil),
	})

	factor := MonthPeriodFactor(h, mustDate(t, "2025-04-03"))

	if factor.Insufficient {
		t.Fatalf("Expected a data-backed factor, got insufficient")
	}
	if factor.Value != 1.4 {
		t.Errorf("Expected clamp to 1.4, got %f", factor.Value)
	}
}

func TestMonthPeriodFactor_EmptyHistory(t *testing.T) {
	factor := MonthPeriodFactor(NewHistory(nil), mustDate(t, "2025-04-03"))

	if !factor.Insufficient || factor.Value != 1.0 {
		t.Errorf("Expected neutral insufficient factor, got %+v", factor)
	}
}

func TestIntraDayGrowthFactor_MedianClamped(t *testing.T) {
	// All days grow 30% into hour 10; the median 1.3 exceeds the 1.15 cap.
	h := NewHistory([]models.DailyRecord{
		day(t, "2025-03-01", 0, map[int]int{9: 100, 10: 130}),
		day(t, "2025-03-02", 0, map[int]int{9: 200, 10: 260}),
		day(t, "2025-03-03", 0, map[int]int{9: 300, 10: 390}),
	})

	factor := IntraDayGrowthFactor(h, 10)

	if factor.Value != 1.15 {
		t.Errorf("Expected clamp to 1.15, got %f", factor.Value)
	}
}

func TestIntraDayGrowthFactor_FiltersOutliers(t *testing.T) {
	// A 5x jump (reset artifact) is discarded; with nothing left the
	// factor reports insufficient data rather than a fake neutral.
	h := NewHistory([]models.DailyRecord{
		day(t, "2025-03-01", 0, map[int]int{9: 100, 10: 500}),
	})

	factor := IntraDayGrowthFactor(h, 10)

	if !factor.Insufficient {
		t.Errorf("Expected insufficient after outlier filtering")
	}
}

func TestWeeklyTrendFactor_RisingTrendClamped(t *testing.T) {
	// Last three days doubled the preceding three: raw 2.0, cap 1.15.
	h := NewHistory([]models.DailyRecord{
		day(t, "2025-03-01", 100, nil),
		day(t, "2025-03-02", 100, nil),
		day(t, "2025-03-03", 100, nil),
		day(t, "2025-03-04", 100, nil),
		day(t, "2025-03-05", 200, nil),
		day(t, "2025-03-06", 200, nil),
		day(t, "2025-03-07", 200, nil),
	})

	factor := WeeklyTrendFactor(h)

	if factor.Insufficient {
		t.Fatalf("Expected a data-backed factor, got insufficient")
	}
	if factor.Value != 1.15 {
		t.Errorf("Expected clamp to 1.15, got %f", factor.Value)
	}
}

func TestWeeklyTrendFactor_ShortHistory(t *testing.T) {
	h := NewHistory([]models.DailyRecord{
		day(t, "2025-03-05", 200, nil),
		day(t, "2025-03-06", 200, nil),
		day(t, "2025-03-07", 200, nil),
	})

	factor := WeeklyTrendFactor(h)

	if !factor.Insufficient || factor.Value != 1.0 {
		t.Errorf("Expected neutral insufficient factor, got %+v", factor)
	}
}

func TestCombinedAdjustment_NeutralOnEmptyHistory(t *testing.T) {
	product := combinedAdjustment(NewHistory(nil), mustDate(t, "2025-03-03"), 10)

	if product != 1.0 {
		t.Errorf("Expected neutral product 1.0, got %f", product)
	}
}
