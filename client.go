// ABOUTME: HTTP client for the Strava v3 API.
// ABOUTME: Attaches the bearer token and exposes athlete, activity list, and single activity reads.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const stravaAPIBase = "https://www.strava.com/api/v3"

type StravaClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func NewStravaClient(baseURL, accessToken string) *StravaClient {
	return &StravaClient{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Athlete returns the authenticated athlete's profile.
func (c *StravaClient) Athlete() (*Athlete, error) {
	var athlete Athlete
	if err := c.get("/athlete", nil, &athlete); err != nil {
		return nil, err
	}
	return &athlete, nil
}

// Activities returns one page of the athlete's activities, newest first.
func (c *StravaClient) Activities(perPage, page int) ([]Activity, error) {
	params := url.Values{
		"per_page": []string{fmt.Sprintf("%d", perPage)},
		"page":     []string{fmt.Sprintf("%d", page)},
	}
	var activities []Activity
	if err := c.get("/athlete/activities", params, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// Activity returns a single activity by ID.
func (c *StravaClient) Activity(id int64) (*Activity, error) {
	var activity Activity
	if err := c.get(fmt.Sprintf("/activities/%d", id), nil, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

func (c *StravaClient) get(path string, params url.Values, out any) error {
	fullURL := c.baseURL + path
	if params != nil {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequest("GET", fullURL, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return newAPIError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}

	return nil
}

// newAPIError turns a non-200 response into an error, preferring the
// structured Strava error payload over the raw body.
func newAPIError(status int, body []byte) error {
	var payload apiError
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		if len(payload.Errors) > 0 {
			e := payload.Errors[0]
			return fmt.Errorf("Strava API error: %d - %s (%s %s: %s)",
				status, payload.Message, e.Resource, e.Field, e.Code)
		}
		return fmt.Errorf("Strava API error: %d - %s", status, payload.Message)
	}
	return fmt.Errorf("Strava API error: %d - %s", status, string(body))
}
