// ABOUTME: Activity retrieval and weekly aggregation.
// ABOUTME: Pages through the activity history, filters by date range, and groups into ISO-week stats.

package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/briandowns/spinner"
)

// fetchActivities pages through the athlete's history, newest first,
// until Strava returns an empty page. When a start boundary is given
// and the oldest record on a page predates it, the in-range part of
// that page is kept and fetching stops early. On error the activities
// gathered so far are returned alongside it, so the caller can choose
// to continue with partial data.
func fetchActivities(client *StravaClient, perPage int, delay time.Duration, start time.Time) ([]Activity, error) {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Prefix = "["
	s.Suffix = "] fetching activities..."
	s.Start()
	defer s.Stop()

	var all []Activity
	for page := 1; ; page++ {
		s.Suffix = fmt.Sprintf("] fetching activities: page %d (%d so far)...", page, len(all))

		activities, err := client.Activities(perPage, page)
		if err != nil {
			return all, fmt.Errorf("fetching page %d: %w", page, err)
		}
		if len(activities) == 0 {
			break
		}

		if !start.IsZero() {
			oldest := activities[len(activities)-1]
			if oldest.StartDate.Before(start) {
				for _, a := range activities {
					if !a.StartDate.Before(start) {
						all = append(all, a)
					}
				}
				break
			}
		}

		all = append(all, activities...)

		// Fixed pause between pages to stay under Strava rate limits.
		time.Sleep(delay)
	}

	return all, nil
}

// filterByRange keeps activities whose start timestamp falls in the
// closed interval [start, end]. A zero boundary leaves that side open.
func filterByRange(activities []Activity, start, end time.Time) []Activity {
	var filtered []Activity
	for _, a := range activities {
		if !start.IsZero() && a.StartDate.Before(start) {
			continue
		}
		if !end.IsZero() && a.StartDate.After(end) {
			continue
		}
		filtered = append(filtered, a)
	}
	return filtered
}

// weeklyStats groups activities by ISO (year, week) and sums distance,
// moving time, and elevation per bucket. ISO weeks keep a week that
// spans New Year in a single bucket under its ISO year, so 2023-12-31
// and 2024-01-01 land in different buckets.
func weeklyStats(activities []Activity) []WeeklyStat {
	type bucket struct {
		meters    float64
		seconds   int64
		elevation float64
		count     int
	}

	buckets := make(map[WeekKey]*bucket)
	for _, a := range activities {
		// Records without a start timestamp cannot be bucketed.
		if a.StartDate.IsZero() {
			continue
		}
		year, week := a.StartDate.ISOWeek()
		key := WeekKey{Year: year, Week: week}
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		b.meters += a.Distance
		b.seconds += a.MovingTime
		b.elevation += a.TotalElevationGain
		b.count++
	}

	stats := make([]WeeklyStat, 0, len(buckets))
	for key, b := range buckets {
		st := WeeklyStat{
			Year:            key.Year,
			Week:            key.Week,
			TotalDistanceKm: b.meters / 1000,
			TotalTimeHours:  float64(b.seconds) / 3600,
			TotalElevation:  b.elevation,
			Activities:      b.count,
		}
		// A week of zero moving time has no meaningful speed; report 0
		// rather than dividing by zero.
		if st.TotalTimeHours > 0 {
			st.AvgSpeedKmh = st.TotalDistanceKm / st.TotalTimeHours
		}
		stats = append(stats, st)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Year != stats[j].Year {
			return stats[i].Year < stats[j].Year
		}
		return stats[i].Week < stats[j].Week
	})

	return stats
}

func buildSummary(stats []WeeklyStat) Summary {
	summary := Summary{TotalWeeks: len(stats)}
	if len(stats) == 0 {
		return summary
	}

	var distance, hours, activities, elevation, speed float64
	for _, st := range stats {
		distance += st.TotalDistanceKm
		hours += st.TotalTimeHours
		activities += float64(st.Activities)
		elevation += st.TotalElevation
		speed += st.AvgSpeedKmh
		if st.TotalDistanceKm > summary.MaxWeeklyDistance {
			summary.MaxWeeklyDistance = st.TotalDistanceKm
		}
	}

	weeks := float64(len(stats))
	summary.AverageWeeklyDistance = distance / weeks
	summary.AverageWeeklyTime = hours / weeks
	summary.AverageWeeklyActivities = activities / weeks
	summary.TotalElevation = elevation
	summary.AverageSpeed = speed / weeks

	return summary
}
