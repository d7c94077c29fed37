package forecast

import (
	"math"
	"sort"

	"sd-server/models"
)

const (
	// fallbackGrowth is the minimal increase applied when no analogue can
	// inform the prediction: 0.5% over the previous hour.
	fallbackGrowth = 1.005
	// cumulativeFloorGrowth keeps predicted cumulative counts strictly
	// advancing: at least 0.2% over the previous hour.
	cumulativeFloorGrowth = 1.002
	// maxHourlyGrowth caps any single predicted step at +50%.
	maxHourlyGrowth = 1.5
	// defaultWeeklyAverage stands in for the 7-day average daily peak when
	// fewer than 7 days of history exist.
	defaultWeeklyAverage = 500
)

// ExtendDay completes a partially observed day: hours after the last
// positive observation are filled with predicted values, each tagged as
// predicted. Fully observed days and days with no data at all are returned
// unchanged with every predicted flag false.
func ExtendDay(h *History, rec models.DailyRecord) models.HourlySeries {
	series := models.HourlySeries{Date: rec.DateKey()}
	for i := 0; i < models.HoursPerDay; i++ {
		if rec.Hours[i] > 0 {
			v := rec.Hours[i]
			series.Points[i].Value = &v
		}
	}

	lastValidIndex := lastObservedIndex(rec)
	if lastValidIndex == -1 || lastValidIndex == models.HoursPerDay-1 {
		return series
	}

	weeklyCeiling := recentWeeklyAverage(h) * maxHourlyGrowth
	previousValue := float64(rec.Hours[lastValidIndex])

	for i := lastValidIndex + 1; i < models.HoursPerDay; i++ {
		predicted := predictHour(h, rec, i, previousValue, lastValidIndex, weeklyCeiling)

		value := int(math.Round(predicted))
		series.Points[i].Value = &value
		series.Points[i].Predicted = true
		previousValue = float64(value)
	}

	return series
}

// predictHour produces the value for one hour from the previous hour's
// value, strictly in pipeline order: analogue base, adjustment factors,
// realistic ceiling, sanity clamp, per-step cap, cumulative floor.
func predictHour(h *History, rec models.DailyRecord, targetHour int, previousValue float64, lastValidIndex int, weeklyCeiling float64) float64 {
	base := basePrediction(h, targetHour, previousValue)
	prediction := base * combinedAdjustment(h, rec.Date, targetHour)

	if prediction > weeklyCeiling {
		prediction = weeklyCeiling
	}

	prediction = ClampPrediction(h, prediction, previousValue, targetHour, lastValidIndex, rec.Date)

	if max := previousValue * maxHourlyGrowth; prediction > max {
		prediction = max
	}
	if min := previousValue * cumulativeFloorGrowth; prediction < min {
		prediction = min
	}
	return prediction
}

// basePrediction matches historical analogues at targetHour against the
// previous hour's value and takes the more conservative of the 25th
// percentile and the median of their next-hour values. With no usable
// analogues it falls back to a minimal 0.5% increase.
func basePrediction(h *History, targetHour int, previousValue float64) float64 {
	analogues := FindAnalogues(h, targetHour, previousValue)
	values := nextHourValues(analogues, targetHour)
	if len(values) == 0 {
		return previousValue * fallbackGrowth
	}
	return conservativeCentral(values)
}

// conservativeCentral is min(Q1, median) over the given values. Q1 uses the
// floor-index convention; the median averages the middle pair for even
// counts.
func conservativeCentral(values []int) float64 {
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)

	q1 := float64(sorted[len(sorted)/4])

	mid := len(sorted) / 2
	var median float64
	if len(sorted)%2 == 0 {
		median = float64(sorted[mid-1]+sorted[mid]) / 2
	} else {
		median = float64(sorted[mid])
	}

	return math.Min(q1, median)
}

// recentWeeklyAverage is the mean daily peak over the last 7 days,
// defaulting when history is short.
func recentWeeklyAverage(h *History) float64 {
	if h.Len() < 7 {
		return defaultWeeklyAverage
	}
	peaks := dailyPeaks(h.RecentDays(7))
	if len(peaks) == 0 {
		return defaultWeeklyAverage
	}
	return meanInts(peaks)
}

// lastObservedIndex is the highest hour with a positive value, or -1.
func lastObservedIndex(rec models.DailyRecord) int {
	for i := models.HoursPerDay - 1; i >= 0; i-- {
		if rec.Hours[i] > 0 {
			return i
		}
	}
	return -1
}
