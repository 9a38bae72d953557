package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Freeeeeet/schedule_builder/internal/calendar"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var (
		index    int
		name     string
		timezone string
	)
	cmd := &cobra.Command{
		Use:       "export ics|csv",
		Short:     "Export one schedule candidate as iCalendar or CSV",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"ics", "csv"},
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(inputFlag)
			if err != nil {
				return err
			}
			defer in.Close()
			return runExport(in, os.Stdout, args[0], index, name, timezone)
		},
	}
	cmd.Flags().IntVarP(&index, "index", "n", 0, "Candidate index (0-based)")
	cmd.Flags().StringVar(&name, "name", "Class Schedule", "Calendar name for .ics")
	cmd.Flags().StringVar(&timezone, "tz", "America/Los_Angeles", "Time zone for times without offset")
	return cmd
}

func runExport(in io.Reader, out io.Writer, format string, index int, name, timezone string) error {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("invalid --tz %q: %w", timezone, err)
	}

	candidates, err := readCandidates(in)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(candidates) {
		return fmt.Errorf("candidate index %d out of range (have %d)", index, len(candidates))
	}
	entries := candidates[index].Schedule

	var data []byte
	switch format {
	case "ics":
		data, err = calendar.ExportICS(name, entries, loc)
	case "csv":
		data, err = calendar.ExportCSV(entries)
	default:
		return fmt.Errorf("unknown format %q, want ics or csv", format)
	}
	if err != nil {
		return err
	}

	_, err = out.Write(data)
	return err
}
