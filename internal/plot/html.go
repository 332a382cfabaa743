package plot

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"histlogo/internal/histogram"
	"histlogo/pkg/colorutil"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// stackName groups the bar series into one stack.
const stackName = "bgr"

// LineChart builds an interactive line chart of a full resolution histogram.
func LineChart(h histogram.Channels) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Line histogram (BGR)"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Bin"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Frequency (num of pixels)"}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
	)
	line.SetXAxis(binLabels(h.Bins()))
	for _, ch := range colorutil.Channels {
		data := make([]opts.LineData, len(h[ch]))
		for i, v := range h[ch] {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(ch.String(), data,
			charts.WithLineStyleOpts(opts.LineStyle{Color: ch.HexColor()}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: ch.HexColor()}),
		)
	}
	return line
}

// BarChart builds a stacked bar chart of a coarse histogram.
func BarChart(h histogram.Channels) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Stacked bar plot histogram (BGR)"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Bin"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Frequency (num of pixels)"}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
	)
	bar.SetXAxis(binLabels(h.Bins()))
	for _, ch := range colorutil.Channels {
		data := make([]opts.BarData, len(h[ch]))
		for i, v := range h[ch] {
			data[i] = opts.BarData{Value: v}
		}
		bar.AddSeries(ch.String(), data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: ch.HexColor()}),
		)
	}
	bar.SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: stackName}))
	return bar
}

// WriteHTML renders both charts into one HTML page.
func WriteHTML(w io.Writer, full, coarse histogram.Channels) error {
	page := components.NewPage()
	page.PageTitle = "Frame histograms"
	page.AddCharts(LineChart(full), BarChart(coarse))
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render histogram page: %w", err)
	}
	return nil
}

// SaveHTML writes the HTML page to path.
func SaveHTML(path string, full, coarse histogram.Channels) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteHTML(f, full, coarse); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func binLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}
	return labels
}
