package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	inputFlag string
	rootCmd   = &cobra.Command{
		Use:   "schedulectl",
		Short: "Offline tools for schedule candidates: conflict filtering and calendar export",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&inputFlag, "input", "i", "-", "JSON file with candidates or a saved run (- for stdin)")

	rootCmd.AddCommand(newFilterCmd(), newExportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
