package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/Freeeeeet/schedule_builder/internal/schedule"
	"github.com/spf13/cobra"
)

type filterOutput struct {
	Outcome         string                    `json:"outcome"`
	Total           int                       `json:"total"`
	Dropped         int                       `json:"dropped"`
	Notice          string                    `json:"notice,omitempty"`
	Recommendations []model.ScheduleCandidate `json:"recommendations"`
}

func newFilterCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Drop schedule candidates that contain overlapping classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(inputFlag)
			if err != nil {
				return err
			}
			defer in.Close()
			return runFilter(in, os.Stdout, mode)
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "datetime", "Overlap mode: datetime or time_of_day")
	return cmd
}

func runFilter(in io.Reader, out io.Writer, modeName string) error {
	mode, err := schedule.ParseMode(modeName)
	if err != nil {
		return err
	}
	candidates, err := readCandidates(in)
	if err != nil {
		return err
	}

	result := schedule.NewFilter(mode, nil).Apply(candidates)
	if result.Candidates == nil {
		result.Candidates = []model.ScheduleCandidate{}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(filterOutput{
		Outcome:         result.Outcome.String(),
		Total:           result.Total,
		Dropped:         result.Dropped,
		Notice:          result.Notice(),
		Recommendations: result.Candidates,
	}); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
