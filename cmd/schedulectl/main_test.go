package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const candidatesJSON = `[
  {"schedule": [
    {"summary": "MATH 51-1", "start": "2025-09-22T13:00:00", "end": "2025-09-22T14:05:00", "days_of_week": ["MO","WE"], "end_sem": "2025-12-12"},
    {"summary": "CHEM 11-4", "start": "2025-09-22T13:30:00", "end": "2025-09-22T14:30:00", "days_of_week": ["MO"], "end_sem": "2025-12-12"}
  ], "pros": ["a"], "cons": []},
  {"schedule": [
    {"summary": "MATH 51-3", "start": "2025-09-22T13:00:00", "end": "2025-09-22T14:05:00", "days_of_week": ["MO","WE","FR"], "end_sem": "2025-12-12"}
  ], "pros": ["b"], "cons": [], "score": 7}
]`

func TestRunFilter(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runFilter(strings.NewReader(candidatesJSON), &out, "datetime"))

	var got filterOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "filtered", got.Outcome)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 1, got.Dropped)
	require.Len(t, got.Recommendations, 1)
	assert.Equal(t, "MATH 51-3", got.Recommendations[0].Schedule[0].Summary)
	assert.Contains(t, out.String(), `"score": 7`)
}

func TestRunFilter_AcceptsRunObject(t *testing.T) {
	var out bytes.Buffer
	in := `{"id":"x","recommendations":` + candidatesJSON + `}`
	require.NoError(t, runFilter(strings.NewReader(in), &out, ""))
	assert.Contains(t, out.String(), "MATH 51-3")
}

func TestRunFilter_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, runFilter(strings.NewReader(candidatesJSON), &out, "weekly"))
	assert.Error(t, runFilter(strings.NewReader(""), &out, "datetime"))
	assert.Error(t, runFilter(strings.NewReader("{oops"), &out, "datetime"))
}

func TestRunExport(t *testing.T) {
	var ics bytes.Buffer
	require.NoError(t, runExport(strings.NewReader(candidatesJSON), &ics, "ics", 1, "Fall", "America/Los_Angeles"))
	assert.Contains(t, ics.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, ics.String(), "MATH 51-3")

	var csv bytes.Buffer
	require.NoError(t, runExport(strings.NewReader(candidatesJSON), &csv, "csv", 0, "", "UTC"))
	assert.Contains(t, csv.String(), "CHEM 11-4")

	assert.Error(t, runExport(strings.NewReader(candidatesJSON), &csv, "pdf", 0, "", "UTC"))
	assert.Error(t, runExport(strings.NewReader(candidatesJSON), &csv, "ics", 5, "", "UTC"))
	assert.Error(t, runExport(strings.NewReader(candidatesJSON), &csv, "ics", 0, "", "Mars/Base"))
}
