package models

// HourlyPoint is one chart point: a cumulative value (nil when the hour has
// not been observed and was not predicted) and whether the value came from
// the prediction engine rather than the feed.
type HourlyPoint struct {
	Value     *int `json:"value"`
	Predicted bool `json:"predicted"`
}

// HourlySeries is the 24-point series for one day, as consumed by rendering.
type HourlySeries struct {
	Date   string                   `json:"date"`
	Points [HoursPerDay]HourlyPoint `json:"points"`
}

// Values flattens the series into a nullable value slice.
func (s *HourlySeries) Values() []*int {
	values := make([]*int, HoursPerDay)
	for i := range s.Points {
		values[i] = s.Points[i].Value
	}
	return values
}

// PredictedFlags flattens the per-hour predicted markers.
func (s *HourlySeries) PredictedFlags() []bool {
	flags := make([]bool, HoursPerDay)
	for i := range s.Points {
		flags[i] = s.Points[i].Predicted
	}
	return flags
}
