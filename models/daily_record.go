package models

import (
	"fmt"
	"time"
)

// HoursPerDay is the fixed number of hourly checkpoints in a feed row.
const HoursPerDay = 24

// DailyRecord is one calendar day of cumulative shipment counts.
//
// Hours[0] carries the previous day's closing value (an artifact of the
// source feed), so hour-over-hour math must never treat index 0 as having a
// meaningful predecessor. A zero entry means "not yet reported", never an
// observed count of zero.
type DailyRecord struct {
	Date          time.Time         `json:"date"`
	DayOfWeek     string            `json:"day_of_week"`
	ReportedTotal int               `json:"reported_total"`
	Hours         [HoursPerDay]int  `json:"hours"`
}

// Weekday derives the weekday from Date. DayOfWeek is informational only;
// calculations always re-derive from the date.
func (r *DailyRecord) Weekday() time.Weekday {
	return r.Date.Weekday()
}

func (r *DailyRecord) DateKey() string {
	return r.Date.Format("2006-01-02")
}

func (r *DailyRecord) ToString() string {
	return fmt.Sprintf("DailyRecord(date=%s, dayOfWeek=%s, reportedTotal=%d)",
		r.DateKey(), r.DayOfWeek, r.ReportedTotal)
}
