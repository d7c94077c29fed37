package forecast

import (
	"math"
	"sort"
	"time"

	"sd-server/models"
)

// AnalogueCase is a historical day whose value at a given hour closely
// matches a reference value. Similarity is the absolute distance from the
// reference; smaller is closer.
type AnalogueCase struct {
	Date       time.Time
	HourValue  int
	AllHours   [models.HoursPerDay]int
	Similarity float64
}

// toleranceSteps is the widening search ladder: 0.05%, then 0.5%, then 5%
// of the reference value. The search stops after the third attempt; an
// empty result is a valid outcome that the prediction engine must handle.
var toleranceSteps = []float64{0.0005, 0.005, 0.05}

// FindAnalogues searches history for days whose value at targetHour lies
// within a tolerance band of referenceValue, widening the band until at
// least one match is found or the ladder is exhausted. Results are ordered
// closest first; ties keep store order (earlier date first).
//
// Matching is on absolute value rather than elapsed time-of-day: a given
// cumulative magnitude predicts "what happens next" regardless of which day
// produced it, but the search stays hour-aligned because intra-day shape
// differs by hour.
func FindAnalogues(h *History, targetHour int, referenceValue float64) []AnalogueCase {
	if targetHour < 1 || targetHour >= models.HoursPerDay || referenceValue <= 0 {
		return nil
	}

	var cases []AnalogueCase
	for _, step := range toleranceSteps {
		cases = collectWithinTolerance(h, targetHour, referenceValue, referenceValue*step)
		if len(cases) > 0 {
			break
		}
	}

	sort.SliceStable(cases, func(i, j int) bool {
		return cases[i].Similarity < cases[j].Similarity
	})
	return cases
}

func collectWithinTolerance(h *History, targetHour int, referenceValue, tolerance float64) []AnalogueCase {
	var cases []AnalogueCase
	for _, rec := range h.records {
		valueAtHour := rec.Hours[targetHour]
		if valueAtHour <= 0 {
			continue
		}
		distance := math.Abs(float64(valueAtHour) - referenceValue)
		if distance > tolerance {
			continue
		}
		cases = append(cases, AnalogueCase{
			Date:       rec.Date,
			HourValue:  valueAtHour,
			AllHours:   rec.Hours,
			Similarity: distance,
		})
	}
	return cases
}

// nextHourValues extracts each analogue's own value at targetHour+1, the
// "what happened next" observations the base prediction is built from.
// Unobserved next hours are skipped.
func nextHourValues(cases []AnalogueCase, targetHour int) []int {
	nextHour := targetHour + 1
	if nextHour >= models.HoursPerDay {
		return nil
	}
	var values []int
	for _, c := range cases {
		if v := c.AllHours[nextHour]; v > 0 {
			values = append(values, v)
		}
	}
	return values
}
