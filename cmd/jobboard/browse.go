package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobboard/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse jobs interactively (TUI)",
	Long:  "Loads the job data file and opens the interactive board: search, company pills, sort and job cards.",
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logger := setupLogger(os.Stderr, debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Any log output while the alt screen is active corrupts the display.
	b := loadBoard(cfg, setupLogger(io.Discard, debug))
	logger.Debug("board loaded", "state", b.State().String(), "jobs", len(b.Jobs()))

	return tui.Run(b)
}
