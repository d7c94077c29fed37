package forecast

import (
	"time"

	"sd-server/models"
)

// History is the in-memory historical record for one forecast run. It is
// built wholesale from the ingested records (chronological order, most
// recent last) and is read-only while a forecast runs; callers rebuild it on
// every refresh rather than patching it.
type History struct {
	records []models.DailyRecord
}

func NewHistory(records []models.DailyRecord) *History {
	return &History{records: records}
}

func (h *History) Len() int {
	return len(h.records)
}

func (h *History) Records() []models.DailyRecord {
	return h.records
}

// Today returns the most recent record, or nil when the history is empty.
func (h *History) Today() *models.DailyRecord {
	return h.DaysAgo(0)
}

// DaysAgo returns the record n positions before the most recent one.
func (h *History) DaysAgo(n int) *models.DailyRecord {
	idx := len(h.records) - 1 - n
	if idx < 0 {
		return nil
	}
	return &h.records[idx]
}

// RecentDays returns the last n records in chronological order. The result
// shares backing storage with the history.
func (h *History) RecentDays(n int) []models.DailyRecord {
	if n >= len(h.records) {
		return h.records
	}
	return h.records[len(h.records)-n:]
}

// SameWeekday filters records sharing the weekday of the given date.
func (h *History) SameWeekday(date time.Time) []models.DailyRecord {
	var out []models.DailyRecord
	for _, rec := range h.records {
		if rec.Weekday() == date.Weekday() {
			out = append(out, rec)
		}
	}
	return out
}

// MonthPeriod buckets a day of month: early (<=10), late (>=21), else mid.
type MonthPeriod string

const (
	MonthPeriodEarly MonthPeriod = "early"
	MonthPeriodMid   MonthPeriod = "mid"
	MonthPeriodLate  MonthPeriod = "late"
)

func MonthPeriodOf(date time.Time) MonthPeriod {
	day := date.Day()
	switch {
	case day <= 10:
		return MonthPeriodEarly
	case day >= 21:
		return MonthPeriodLate
	default:
		return MonthPeriodMid
	}
}

// SameMonthPeriod filters records falling in the month-period bucket of the
// given date.
func (h *History) SameMonthPeriod(date time.Time) []models.DailyRecord {
	period := MonthPeriodOf(date)
	var out []models.DailyRecord
	for _, rec := range h.records {
		if MonthPeriodOf(rec.Date) == period {
			out = append(out, rec)
		}
	}
	return out
}

// LastObservedValue is the day's current (or final) cumulative count: the
// first positive value scanning hours 23 down to 0, falling back to the
// feed's reported total, falling back to 0. A zero result means the day has
// no usable observation, not that zero shipments were observed.
func LastObservedValue(rec models.DailyRecord) int {
	for h := models.HoursPerDay - 1; h >= 0; h-- {
		if rec.Hours[h] > 0 {
			return rec.Hours[h]
		}
	}
	if rec.ReportedTotal > 0 {
		return rec.ReportedTotal
	}
	return 0
}

// dailyPeaks collects LastObservedValue across the given records, skipping
// days with no usable observation entirely (they are excluded, not pushed
// as zero).
func dailyPeaks(records []models.DailyRecord) []int {
	var peaks []int
	for _, rec := range records {
		if peak := LastObservedValue(rec); peak > 0 {
			peaks = append(peaks, peak)
		}
	}
	return peaks
}
