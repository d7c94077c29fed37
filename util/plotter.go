package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"sd-server/models"
)

// PlotDashboardChart renders the cumulative shipment chart as a standalone
// HTML page. Observed values and forecast values of the most recent day are
// split into two series so the forecast tail can be styled dashed, matching
// the dashboard's solid/dotted convention. Earlier days render as plain
// reference lines.
func PlotDashboardChart(w io.Writer, today models.HourlySeries, earlier []models.HourlySeries) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Shipment Dashboard",
			Width:     "1000px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Cumulative shipments by hour",
			Subtitle: today.Date,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	hours := make([]string, models.HoursPerDay)
	for i := range hours {
		hours[i] = fmt.Sprintf("%02d:00", i)
	}
	line.SetXAxis(hours)

	observed, predicted := splitSeries(today)
	line.AddSeries("Today", observed)
	line.AddSeries("Forecast", predicted,
		charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}),
	)

	for _, series := range earlier {
		full, _ := splitSeries(series)
		line.AddSeries(series.Date, full)
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render dashboard chart: %w", err)
	}
	return nil
}

// splitSeries separates a series into observed and predicted line data.
// The predicted line repeats the last observed point so the two segments
// join without a visual gap; unobserved hours stay as gaps.
func splitSeries(series models.HourlySeries) ([]opts.LineData, []opts.LineData) {
	observed := make([]opts.LineData, models.HoursPerDay)
	predicted := make([]opts.LineData, models.HoursPerDay)

	lastObserved := -1
	for i := 0; i < models.HoursPerDay; i++ {
		point := series.Points[i]
		observed[i] = opts.LineData{Value: nil}
		predicted[i] = opts.LineData{Value: nil}
		if point.Value == nil {
			continue
		}
		if point.Predicted {
			predicted[i] = opts.LineData{Value: *point.Value}
		} else {
			observed[i] = opts.LineData{Value: *point.Value}
			lastObserved = i
		}
	}
	if lastObserved >= 0 && series.Points[lastObserved].Value != nil {
		predicted[lastObserved] = opts.LineData{Value: *series.Points[lastObserved].Value}
	}
	return observed, predicted
}
