// ABOUTME: Data types for Strava API responses and weekly aggregates.
// ABOUTME: Defines activities, the athlete profile, API error payloads, and weekly stat buckets.

package main

import (
	"fmt"
	"time"
)

// Activity is a single recorded session as returned by the Strava API.
// Distance and elevation are meters, moving time is seconds.
type Activity struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	StartDate          time.Time `json:"start_date"`
	Distance           float64   `json:"distance"`
	MovingTime         int64     `json:"moving_time"`
	TotalElevationGain float64   `json:"total_elevation_gain"`
	AverageSpeed       float64   `json:"average_speed"`
}

type Athlete struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

// apiError is the payload Strava returns on non-200 responses.
type apiError struct {
	Message string `json:"message"`
	Errors  []struct {
		Resource string `json:"resource"`
		Field    string `json:"field"`
		Code     string `json:"code"`
	} `json:"errors"`
}

// WeekKey identifies an ISO calendar week. The year is the ISO year,
// which can differ from the calendar year around New Year.
type WeekKey struct {
	Year int
	Week int
}

func (k WeekKey) Label() string {
	return fmt.Sprintf("%d-W%d", k.Year, k.Week)
}

// WeeklyStat holds the aggregates for one ISO week.
type WeeklyStat struct {
	Year            int
	Week            int
	TotalDistanceKm float64
	TotalTimeHours  float64
	TotalElevation  float64
	Activities      int
	AvgSpeedKmh     float64
}

func (w WeeklyStat) Key() WeekKey {
	return WeekKey{Year: w.Year, Week: w.Week}
}

// Summary is the flat run-level overview written to training_summary.json.
type Summary struct {
	TotalWeeks              int     `json:"total_weeks"`
	AverageWeeklyDistance   float64 `json:"average_weekly_distance"`
	MaxWeeklyDistance       float64 `json:"max_weekly_distance"`
	AverageWeeklyTime       float64 `json:"average_weekly_time"`
	AverageWeeklyActivities float64 `json:"average_weekly_activities"`
	TotalElevation          float64 `json:"total_elevation"`
	AverageSpeed            float64 `json:"average_speed"`
}
