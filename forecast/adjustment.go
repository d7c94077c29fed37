package forecast

import (
	"sort"
	"time"

	"sd-server/models"
)

// Factor is one multiplicative correction derived from a historical pattern.
// Insufficient marks a neutral value that exists because there was no
// qualifying history, as opposed to one the data genuinely produced.
type Factor struct {
	Value        float64
	Insufficient bool
}

func neutralFactor() Factor {
	return Factor{Value: 1.0, Insufficient: true}
}

func clampedFactor(value, min, max float64) Factor {
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	return Factor{Value: value}
}

// WeekdayFactor is the average hour-over-hour ratio at targetHour across
// historical days matching the target date's weekday. Clamped to [0.8, 1.3].
func WeekdayFactor(h *History, date time.Time, targetHour int) Factor {
	if targetHour < 1 || targetHour >= models.HoursPerDay {
		return neutralFactor()
	}

	var ratios []float64
	for _, rec := range h.SameWeekday(date) {
		current := rec.Hours[targetHour]
		previous := rec.Hours[targetHour-1]
		if current > 0 && previous > 0 {
			ratios = append(ratios, float64(current)/float64(previous))
		}
	}
	if len(ratios) == 0 {
		return neutralFactor()
	}

	sum := 0.0
	for _, r := range ratios {
		sum += r
	}
	return clampedFactor(sum/float64(len(ratios)), 0.8, 1.3)
}

// MonthPeriodFactor compares the average daily peak within the target
// date's month-period bucket (early/mid/late) against the average daily
// peak across all history. Clamped to [0.7, 1.4].
func MonthPeriodFactor(h *History, date time.Time) Factor {
	periodPeaks := dailyPeaks(h.SameMonthPeriod(date))
	overallPeaks := dailyPeaks(h.records)
	if len(periodPeaks) == 0 || len(overallPeaks) == 0 {
		return neutralFactor()
	}

	periodAvg := meanInts(periodPeaks)
	overallAvg := meanInts(overallPeaks)
	if overallAvg == 0 {
		return neutralFactor()
	}
	return clampedFactor(periodAvg/overallAvg, 0.7, 1.4)
}

// IntraDayGrowthFactor is the median hour-over-hour ratio at targetHour
// across all historical days, with ratios outside [0.5, 2.0] discarded as
// outliers or resets. Clamped to [0.9, 1.15].
func IntraDayGrowthFactor(h *History, targetHour int) Factor {
	if targetHour < 1 || targetHour >= models.HoursPerDay {
		return neutralFactor()
	}

	var ratios []float64
	for _, rec := range h.records {
		current := rec.Hours[targetHour]
		previous := rec.Hours[targetHour-1]
		if current > 0 && previous > 0 {
			ratio := float64(current) / float64(previous)
			if ratio >= 0.5 && ratio <= 2.0 {
				ratios = append(ratios, ratio)
			}
		}
	}
	if len(ratios) == 0 {
		return neutralFactor()
	}
	return clampedFactor(medianFloats(ratios), 0.9, 1.15)
}

// WeeklyTrendFactor is the ratio of the mean daily peak over the most
// recent 3 days to the mean over the preceding 3 days, from the last 7 days
// of history. Needs at least 3 days on each side. Clamped to [0.85, 1.15].
func WeeklyTrendFactor(h *History) Factor {
	if h.Len() < 7 {
		return neutralFactor()
	}

	peaks := dailyPeaks(h.RecentDays(7))
	if len(peaks) < 6 {
		return neutralFactor()
	}

	recent := peaks[len(peaks)-3:]
	previous := peaks[len(peaks)-6 : len(peaks)-3]

	recentAvg := meanInts(recent)
	previousAvg := meanInts(previous)
	if previousAvg == 0 {
		return neutralFactor()
	}
	return clampedFactor(recentAvg/previousAvg, 0.85, 1.15)
}

// combinedAdjustment multiplies the four factors for one predicted hour.
// Each factor is clamped to its own range before multiplication; the
// product itself is deliberately not re-clamped.
func combinedAdjustment(h *History, date time.Time, targetHour int) float64 {
	weekday := WeekdayFactor(h, date, targetHour)
	monthPeriod := MonthPeriodFactor(h, date)
	intraDay := IntraDayGrowthFactor(h, targetHour)
	weeklyTrend := WeeklyTrendFactor(h)
	return weekday.Value * monthPeriod.Value * intraDay.Value * weeklyTrend.Value
}

func meanInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func medianFloats(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
