package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		testName       string
		input          string
		expectedResult bool
		expectedValue  time.Time
	}{
		{
			testName:       "SUCCESS - empty means no boundary",
			input:          "",
			expectedResult: true,
			expectedValue:  time.Time{},
		},
		{
			testName:       "SUCCESS - plain date",
			input:          "2024-09-01",
			expectedResult: true,
			expectedValue:  time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			testName:       "FAILURE - wrong format",
			input:          "01/09/2024",
			expectedResult: false,
		},
		{
			testName:       "FAILURE - not a date",
			input:          "next tuesday",
			expectedResult: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			got, err := parseDate(tc.input)
			if tc.expectedResult {
				require.NoError(t, err)
				assert.True(t, got.Equal(tc.expectedValue))
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRunRejectsInvertedDateRange(t *testing.T) {
	err := run("creds", "missing-config.yaml", "2025-01-01", "2024-01-01", "tok", t.TempDir(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after end date")
}

func TestRunReplotRegeneratesChartsWithoutNetwork(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeWeeklyCSV(filepath.Join(dir, csvFileName), sampleStats()))

	err := run("creds", "missing-config.yaml", "", "", "", dir, true)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, chartFileName))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRunReplotFailsWithoutCSV(t *testing.T) {
	err := run("creds", "missing-config.yaml", "", "", "", t.TempDir(), true)
	assert.Error(t, err)
}
