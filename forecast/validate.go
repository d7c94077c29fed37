package forecast

import (
	"math"
	"time"
)

const (
	// defaultDailyTarget is used when no recent daily finals exist.
	defaultDailyTarget = 1000
	weekendTargetScale = 0.8
	weekdayTargetScale = 1.1
)

// ClampPrediction is the sanity layer applied to a candidate prediction
// before acceptance. Rules run in strict order: never below the previous
// value, never above a compounding 50%-per-hour cap, smoothed when far
// above a gradual-increase baseline, bounded by the per-hour historical
// ceiling and by an hour-proportional share of the estimated daily target,
// then floored again.
func ClampPrediction(h *History, prediction, previousValue float64, targetHour, lastValidIndex int, date time.Time) float64 {
	hourDistance := targetHour - lastValidIndex
	if hourDistance < 1 {
		hourDistance = 1
	}

	// 1. Cumulative counts never decrease.
	if prediction < previousValue {
		prediction = previousValue
	}

	// 2. At most +50% per hour, compounded over the extension distance.
	maxIncrease := previousValue * math.Pow(maxHourlyGrowth, float64(hourDistance))
	if prediction > maxIncrease {
		prediction = maxIncrease
	}

	// 3. Smooth out jumps far beyond a 10%-per-hour gradual baseline.
	gradualIncrease := previousValue + float64(hourDistance)*previousValue*0.1
	if prediction > gradualIncrease*2 {
		prediction = gradualIncrease * 1.5
	}

	// 4. Per-hour historical ceiling, with 20% headroom.
	if ceiling := hourlyMaxLimit(h, targetHour); ceiling > 0 && prediction > ceiling {
		prediction = ceiling
	}

	// 5. Hour-proportional share of the estimated daily target.
	dailyTarget := EstimateDailyTarget(h, date)
	expectedAtHour := dailyTarget * float64(targetHour) / 23
	if prediction > expectedAtHour*1.3 {
		prediction = expectedAtHour * 1.2
	}

	// 6. Re-apply the floor: the caps above must not undo monotonicity.
	return math.Max(prediction, previousValue)
}

// hourlyMaxLimit is 1.2x the maximum value ever observed at the given hour,
// or 0 when no observation exists for that hour.
func hourlyMaxLimit(h *History, hour int) float64 {
	maxObserved := 0
	for _, rec := range h.records {
		if rec.Hours[hour] > maxObserved {
			maxObserved = rec.Hours[hour]
		}
	}
	return float64(maxObserved) * 1.2
}

// EstimateDailyTarget projects today's final count from the 7-day average
// of daily finals, scaled up 10% on weekdays and down 20% on weekends.
func EstimateDailyTarget(h *History, date time.Time) float64 {
	finals := dailyPeaks(h.RecentDays(7))
	if len(finals) == 0 {
		return defaultDailyTarget
	}

	avg := meanInts(finals)
	if isWeekend(date) {
		return avg * weekendTargetScale
	}
	return avg * weekdayTargetScale
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
