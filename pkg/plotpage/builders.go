package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	chartWidth      = "100%"
	chartHeight     = "420px"
	pieInnerRadius  = "35%"
	pieOuterRadius  = "65%"
	labelRotation   = 30
	pieLabelPattern = "{b}: {d}%"
)

// Bar is one bar with an optional color override.
type Bar struct {
	Label string
	Value float64
	Color string
}

// Slice is one pie segment.
type Slice struct {
	Name  string
	Value int
}

// BuildBarChart constructs a themed single-series bar chart. A positive
// maxValue fixes the top of the value axis.
func BuildBarChart(cOpts *ChartOpts, seriesName, yAxisLabel string, bars []Bar, maxValue float64) *charts.Bar {
	var axisMax any
	if maxValue > 0 {
		axisMax = maxValue
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(chartWidth, chartHeight)),
		charts.WithTooltipOpts(cOpts.Tooltip("axis")),
		charts.WithGridOpts(cOpts.Grid()),
		charts.WithDataZoomOpts(cOpts.DataZoom()...),
		charts.WithXAxisOpts(cOpts.XAxis(labelRotation)),
		charts.WithYAxisOpts(cOpts.YAxis(yAxisLabel, axisMax)),
	)

	labels := make([]string, len(bars))
	data := make([]opts.BarData, len(bars))

	for i, b := range bars {
		labels[i] = b.Label
		data[i] = opts.BarData{Name: b.Label, Value: b.Value}

		if b.Color != "" {
			data[i].ItemStyle = &opts.ItemStyle{Color: b.Color}
		}
	}

	bar.SetXAxis(labels)
	bar.AddSeries(seriesName, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: cOpts.Color(0)}))

	return bar
}

// BuildPieChart constructs a themed donut chart.
func BuildPieChart(cOpts *ChartOpts, seriesName string, slices []Slice) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(chartWidth, chartHeight)),
		charts.WithTooltipOpts(cOpts.Tooltip("item")),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	data := make([]opts.PieData, len(slices))
	for i, s := range slices {
		data[i] = opts.PieData{
			Name:      s.Name,
			Value:     s.Value,
			ItemStyle: &opts.ItemStyle{Color: cOpts.Color(i)},
		}
	}

	pie.AddSeries(seriesName, data,
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{pieInnerRadius, pieOuterRadius}}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: pieLabelPattern, Color: cOpts.theme.ChartText}),
	)

	return pie
}
