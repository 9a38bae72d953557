package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Freeeeeet/schedule_builder/internal/model"
)

// openInput открывает файл или stdin для "-"
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

// readCandidates принимает массив вариантов или сохранённую генерацию с полем recommendations
func readCandidates(r io.Reader) ([]model.ScheduleCandidate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("input is empty")
	}

	if data[0] == '[' {
		var candidates []model.ScheduleCandidate
		if err := json.Unmarshal(data, &candidates); err != nil {
			return nil, fmt.Errorf("decode candidates: %w", err)
		}
		return candidates, nil
	}

	var run struct {
		Recommendations []model.ScheduleCandidate `json:"recommendations"`
	}
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("decode run: %w", err)
	}
	return run.Recommendations, nil
}
