// ABOUTME: Output artifacts and terminal report for the weekly stats.
// ABOUTME: Writes the CSV table and JSON summary, reads the CSV back, and prints a colored table.

package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

const (
	csvFileName     = "training_analysis.csv"
	summaryFileName = "training_summary.json"
	chartFileName   = "training_analysis.png"
)

var csvColumns = []string{
	"year",
	"week",
	"total_distance_km",
	"total_time_hours",
	"total_elevation_meters",
	"number_of_activities",
	"average_speed_kmh",
}

// writeWeeklyCSV writes one row per week, no index column.
func writeWeeklyCSV(path string, stats []WeeklyStat) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvColumns); err != nil {
		return err
	}
	for _, st := range stats {
		row := []string{
			strconv.Itoa(st.Year),
			strconv.Itoa(st.Week),
			formatFloat(st.TotalDistanceKm),
			formatFloat(st.TotalTimeHours),
			formatFloat(st.TotalElevation),
			strconv.Itoa(st.Activities),
			formatFloat(st.AvgSpeedKmh),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()

	return w.Error()
}

// readWeeklyCSV reads a file written by writeWeeklyCSV back into
// buckets. Columns are looked up by header name, and all required
// columns must be present.
func readWeeklyCSV(path string) ([]WeeklyStat, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[name] = i
	}
	for _, name := range csvColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%s is missing required column %q", path, name)
		}
	}

	var stats []WeeklyStat
	for _, row := range records[1:] {
		st := WeeklyStat{}
		if st.Year, err = strconv.Atoi(row[index["year"]]); err != nil {
			return nil, fmt.Errorf("bad year %q: %w", row[index["year"]], err)
		}
		if st.Week, err = strconv.Atoi(row[index["week"]]); err != nil {
			return nil, fmt.Errorf("bad week %q: %w", row[index["week"]], err)
		}
		if st.Activities, err = strconv.Atoi(row[index["number_of_activities"]]); err != nil {
			return nil, fmt.Errorf("bad activity count %q: %w", row[index["number_of_activities"]], err)
		}
		if st.TotalDistanceKm, err = strconv.ParseFloat(row[index["total_distance_km"]], 64); err != nil {
			return nil, err
		}
		if st.TotalTimeHours, err = strconv.ParseFloat(row[index["total_time_hours"]], 64); err != nil {
			return nil, err
		}
		if st.TotalElevation, err = strconv.ParseFloat(row[index["total_elevation_meters"]], 64); err != nil {
			return nil, err
		}
		if st.AvgSpeedKmh, err = strconv.ParseFloat(row[index["average_speed_kmh"]], 64); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}

	return stats, nil
}

func writeSummary(path string, summary Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// printReport renders the weekly table and a colored summary block to
// the terminal. On narrow terminals the elevation column is dropped so
// the table still fits.
func printReport(stats []WeeklyStat, summary Summary) {
	termWidth := 120 // default
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		termWidth = w
	}
	showElevation := termWidth >= 80

	fmt.Println()
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Printf("WEEKLY TRAINING (%d weeks)\n", len(stats))

	table := tablewriter.NewWriter(os.Stdout)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Formatting.AutoWrap = tw.WrapTruncate
		alignments := []tw.Align{
			tw.AlignLeft,  // Week
			tw.AlignRight, // Distance
			tw.AlignRight, // Time
			tw.AlignRight, // Activities
			tw.AlignRight, // Speed
		}
		if showElevation {
			alignments = append(alignments, tw.AlignRight)
		}
		cfg.Row.Alignment.PerColumn = alignments
	})

	if showElevation {
		table.Header("Week", "Distance (km)", "Time (h)", "Activities", "Speed (km/h)", "Elevation (m)")
	} else {
		table.Header("Week", "Distance (km)", "Time (h)", "Activities", "Speed (km/h)")
	}

	for _, st := range stats {
		row := []any{
			st.Key().Label(),
			fmt.Sprintf("%.2f", st.TotalDistanceKm),
			fmt.Sprintf("%.2f", st.TotalTimeHours),
			strconv.Itoa(st.Activities),
			fmt.Sprintf("%.2f", st.AvgSpeedKmh),
		}
		if showElevation {
			row = append(row, fmt.Sprintf("%.0f", st.TotalElevation))
		}
		table.Append(row...)
	}

	table.Render()

	green := color.New(color.FgGreen, color.Bold)

	fmt.Println()
	green.Println("TRAINING ANALYSIS SUMMARY")
	fmt.Printf("Total weeks analyzed: %d\n", summary.TotalWeeks)
	fmt.Printf("Average weekly distance: %.2f km\n", summary.AverageWeeklyDistance)
	fmt.Printf("Maximum weekly distance: %.2f km\n", summary.MaxWeeklyDistance)
	fmt.Printf("Average weekly training time: %.2f hours\n", summary.AverageWeeklyTime)
	fmt.Printf("Average activities per week: %.2f\n", summary.AverageWeeklyActivities)
	fmt.Printf("Total elevation gain: %.0f m\n", summary.TotalElevation)
	fmt.Printf("Average speed: %.2f km/h\n", summary.AverageSpeed)
}

func printArtifacts(outputDir string) {
	dim := color.New(color.Faint)
	fmt.Println()
	dim.Println("Data has been saved to:")
	dim.Printf("  %s (detailed weekly data)\n", filepath.Join(outputDir, csvFileName))
	dim.Printf("  %s (summary statistics)\n", filepath.Join(outputDir, summaryFileName))
	dim.Printf("  %s (charts)\n", filepath.Join(outputDir, chartFileName))
}
