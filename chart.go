// ABOUTME: Bar chart rendering for the weekly stats.
// ABOUTME: Draws four bar charts and composites them into a single 2x2 PNG sheet.

package main

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	chartWidth  = 760
	chartHeight = 420

	// Past this many bars the x labels overlap, so only every n-th
	// week gets labeled.
	maxChartLabels = 16
)

// renderCharts writes the composite chart image: weekly distance,
// training time, activity count, and average speed, labeled by ISO
// week.
func renderCharts(path string, stats []WeeklyStat) error {
	if len(stats) == 0 {
		return fmt.Errorf("no weekly stats to chart")
	}

	panels := []struct {
		title string
		fill  string
		value func(WeeklyStat) float64
	}{
		{"Weekly Distance (km)", "87CEEB", func(st WeeklyStat) float64 { return st.TotalDistanceKm }},
		{"Weekly Training Time (hours)", "90EE90", func(st WeeklyStat) float64 { return st.TotalTimeHours }},
		{"Activities per Week", "FA8072", func(st WeeklyStat) float64 { return float64(st.Activities) }},
		{"Average Speed (km/h)", "FFD700", func(st WeeklyStat) float64 { return st.AvgSpeedKmh }},
	}

	images := make([]image.Image, 0, len(panels))
	for _, p := range panels {
		graph := barChart(p.title, drawing.ColorFromHex(p.fill), stats, p.value)

		var buf bytes.Buffer
		if err := graph.Render(chart.PNG, &buf); err != nil {
			return fmt.Errorf("rendering %q: %w", p.title, err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			return fmt.Errorf("decoding %q: %w", p.title, err)
		}
		images = append(images, img)
	}

	sheet := image.NewRGBA(image.Rect(0, 0, 2*chartWidth, 2*chartHeight))
	draw.Draw(sheet, sheet.Bounds(), image.White, image.Point{}, draw.Src)
	for i, img := range images {
		x := (i % 2) * chartWidth
		y := (i / 2) * chartHeight
		draw.Draw(sheet, image.Rect(x, y, x+chartWidth, y+chartHeight), img, image.Point{}, draw.Over)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, sheet); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	return nil
}

func barChart(title string, fill drawing.Color, stats []WeeklyStat, value func(WeeklyStat) float64) chart.BarChart {
	labelStep := (len(stats) + maxChartLabels - 1) / maxChartLabels

	barWidth := (chartWidth - 140) / len(stats)
	if barWidth > 40 {
		barWidth = 40
	}
	if barWidth < 2 {
		barWidth = 2
	}

	bars := make([]chart.Value, 0, len(stats))
	max := 0.0
	for i, st := range stats {
		v := value(st)
		if v > max {
			max = v
		}
		label := ""
		if i%labelStep == 0 {
			label = st.Key().Label()
		}
		bars = append(bars, chart.Value{
			Value: v,
			Label: label,
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		})
	}

	// Fixing the axis at zero matches how bar charts read, and keeps
	// the range non-degenerate for all-zero or single-value panels.
	top := max * 1.1
	if top == 0 {
		top = 1
	}

	return chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10}},
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: 4,
		Bars:       bars,
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: top}},
	}
}
