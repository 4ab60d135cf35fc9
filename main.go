// ABOUTME: CLI entry point for strava-training-report.
// ABOUTME: Wires credentials, OAuth, the API client, aggregation, and report output together.

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

func main() {
	credsPath := flag.String("creds", defaultCredentialsFile, "path to the client_id/client_secret file")
	configPath := flag.String("config", defaultConfigFile, "path to the optional yaml config")
	startStr := flag.String("start", "", "start date (YYYY-MM-DD, inclusive)")
	endStr := flag.String("end", "", "end date (YYYY-MM-DD, inclusive)")
	token := flag.String("token", "", "use an existing access token and skip the browser handshake")
	outDir := flag.String("out", "", "output directory (overrides config)")
	replot := flag.Bool("replot", false, "regenerate charts from an existing "+csvFileName)
	flag.Parse()

	if err := run(*credsPath, *configPath, *startStr, *endStr, *token, *outDir, *replot); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(credsPath, configPath, startStr, endStr, token, outDir string, replot bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if outDir != "" {
		cfg.OutputDir = outDir
	}

	start, err := parseDate(startStr)
	if err != nil {
		return fmt.Errorf("invalid -start: %w", err)
	}
	end, err := parseDate(endStr)
	if err != nil {
		return fmt.Errorf("invalid -end: %w", err)
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return fmt.Errorf("start date %s is after end date %s", startStr, endStr)
	}

	if replot {
		stats, err := readWeeklyCSV(filepath.Join(cfg.OutputDir, csvFileName))
		if err != nil {
			return err
		}
		chartPath := filepath.Join(cfg.OutputDir, chartFileName)
		if err := renderCharts(chartPath, stats); err != nil {
			return err
		}
		fmt.Printf("Regenerated %s from %d weeks\n", chartPath, len(stats))
		return nil
	}

	accessToken := token
	if accessToken == "" {
		creds, err := loadCredentials(credsPath)
		if err != nil {
			if os.IsNotExist(err) {
				creds, err = runSetup(credsPath)
			}
			if err != nil {
				return err
			}
		}

		fmt.Println("Opening your browser for Strava authorization...")
		tok, err := authenticate(creds, cfg.CallbackPort, time.Duration(cfg.AuthTimeoutSeconds)*time.Second)
		if err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
		accessToken = tok.AccessToken
	}

	client := NewStravaClient(stravaAPIBase, accessToken)

	// The profile is a greeting, not a dependency; a failure here does
	// not abort the run.
	if athlete, err := client.Athlete(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not fetch athlete profile: %v\n", err)
	} else {
		fmt.Printf("Authenticated as %s %s\n", athlete.FirstName, athlete.LastName)
	}

	delay := time.Duration(cfg.PageDelaySeconds) * time.Second
	activities, err := fetchActivities(client, cfg.PerPage, delay, start)
	if err != nil {
		if len(activities) == 0 {
			return err
		}
		fmt.Fprintf(os.Stderr, "warning: %v; continuing with %d activities\n", err, len(activities))
	}
	fmt.Printf("Fetched %d activities\n", len(activities))

	activities = filterByRange(activities, start, end)
	if len(activities) == 0 {
		fmt.Println("No activities found in the specified date range")
		return nil
	}

	stats := weeklyStats(activities)
	summary := buildSummary(stats)

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := writeWeeklyCSV(filepath.Join(cfg.OutputDir, csvFileName), stats); err != nil {
		return fmt.Errorf("writing weekly CSV: %w", err)
	}
	if err := writeSummary(filepath.Join(cfg.OutputDir, summaryFileName), summary); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	if err := renderCharts(filepath.Join(cfg.OutputDir, chartFileName), stats); err != nil {
		return fmt.Errorf("rendering charts: %w", err)
	}

	printReport(stats, summary)
	printArtifacts(cfg.OutputDir)

	return nil
}

// parseDate parses a YYYY-MM-DD date as midnight UTC, matching the
// UTC timestamps Strava returns. An empty string means no boundary.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
