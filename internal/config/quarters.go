package config

import (
	"fmt"
	"os"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"gopkg.in/yaml.v3"
)

// DefaultQuarters используется, если QUARTERS_FILE не задан
func DefaultQuarters() []model.Quarter {
	return []model.Quarter{
		{Value: "Fall", Label: "Fall 2024"},
		{Value: "Winter", Label: "Winter 2025"},
		{Value: "Spring", Label: "Spring 2025"},
	}
}

type quartersFile struct {
	Quarters []model.Quarter `yaml:"quarters"`
}

// LoadQuarters читает список четвертей из YAML:
//
//	quarters:
//	  - value: Fall
//	    label: Fall 2025
func LoadQuarters(path string) ([]model.Quarter, error) {
	if path == "" {
		return DefaultQuarters(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quarters file: %w", err)
	}

	var f quartersFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse quarters file: %w", err)
	}

	out := make([]model.Quarter, 0, len(f.Quarters))
	for _, q := range f.Quarters {
		if q.Value == "" {
			continue
		}
		if q.Label == "" {
			q.Label = q.Value
		}
		out = append(out, q)
	}
	if len(out) == 0 {
		return DefaultQuarters(), nil
	}
	return out, nil
}
