package forecast

import (
	"math"

	"sd-server/models"
)

// TodayTotal is the current cumulative count of the most recent day.
func TodayTotal(h *History) int {
	today := h.Today()
	if today == nil {
		return 0
	}
	return LastObservedValue(*today)
}

// YesterdayLast is the final cumulative count of the day before the most
// recent one.
func YesterdayLast(h *History) int {
	yesterday := h.DaysAgo(1)
	if yesterday == nil {
		return 0
	}
	return LastObservedValue(*yesterday)
}

// RollingDailyAverage is the rounded mean of daily finals over the n days
// preceding today (today itself is excluded as still in progress).
func RollingDailyAverage(h *History, n int) int {
	finals := dailyPeaks(priorDays(h, n))
	if len(finals) == 0 {
		return 0
	}
	return int(math.Round(meanInts(finals)))
}

// RollingHourlyIncrementAverage is the rounded mean hour-over-hour increase
// over the n days preceding today. Only hours where both endpoints were
// observed and the count actually advanced contribute.
func RollingHourlyIncrementAverage(h *History, n int) int {
	var increments []int
	for _, rec := range priorDays(h, n) {
		for hour := 1; hour < models.HoursPerDay; hour++ {
			current := rec.Hours[hour]
			previous := rec.Hours[hour-1]
			if current > 0 && previous > 0 && current > previous {
				increments = append(increments, current-previous)
			}
		}
	}
	if len(increments) == 0 {
		return 0
	}
	return int(math.Round(meanInts(increments)))
}

// DashboardStats bundles the stat-card reductions. The dashboard shows
// 3-day rolling averages.
func DashboardStats(h *History) models.DashboardStats {
	return models.DashboardStats{
		TodayTotal:       TodayTotal(h),
		YesterdayLast:    YesterdayLast(h),
		AvgDailyTotal:    RollingDailyAverage(h, 3),
		AvgHourlyShipped: RollingHourlyIncrementAverage(h, 3),
	}
}

// HourlyIncrements turns a cumulative series into per-hour deltas for the
// bar overlay. Hour 0 has no meaningful predecessor (it carries the prior
// day's closing value) and is always nil, as are hours without a positive
// delta between two observed points.
func HourlyIncrements(series models.HourlySeries) []*int {
	increments := make([]*int, models.HoursPerDay)
	for i := 1; i < models.HoursPerDay; i++ {
		current := series.Points[i].Value
		previous := series.Points[i-1].Value
		if current == nil || previous == nil {
			continue
		}
		if delta := *current - *previous; delta > 0 && *current > 0 && *previous > 0 {
			d := delta
			increments[i] = &d
		}
	}
	return increments
}

// backtestHours are the checkpoints replayed against yesterday's observed
// values to gauge how the analogue base tracks reality.
var backtestHours = []int{12, 15, 18, 21}

// BacktestYesterday replays the analogue base prediction at a few fixed
// hours of the second most recent day, comparing against what was actually
// observed. Hours without both observations, or without analogues, are
// skipped. The result is informational only; accuracy is not persisted.
func BacktestYesterday(h *History) []models.BacktestSample {
	yesterday := h.DaysAgo(1)
	if yesterday == nil {
		return nil
	}

	var samples []models.BacktestSample
	for _, hour := range backtestHours {
		if hour >= models.HoursPerDay-1 {
			continue
		}
		actualCurrent := yesterday.Hours[hour]
		actualNext := yesterday.Hours[hour+1]
		if actualCurrent <= 0 || actualNext <= 0 {
			continue
		}

		analogues := FindAnalogues(h, hour, float64(actualCurrent))
		values := nextHourValues(analogues, hour)
		if len(values) == 0 {
			continue
		}

		predicted := int(math.Round(conservativeCentral(values)))
		errPct := math.Abs(float64(predicted-actualNext)) / float64(actualNext) * 100
		samples = append(samples, models.BacktestSample{
			Hour:         hour + 1,
			Actual:       actualNext,
			Predicted:    predicted,
			ErrorPercent: errPct,
		})
	}
	return samples
}

// priorDays is the slice of up to n records immediately before today.
func priorDays(h *History, n int) []models.DailyRecord {
	if len(h.records) < 2 {
		return nil
	}
	withoutToday := h.records[:len(h.records)-1]
	if n >= len(withoutToday) {
		return withoutToday
	}
	return withoutToday[len(withoutToday)-n:]
}
