package main

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobboard/internal/board"
	"github.com/amishk599/jobboard/internal/config"
	"github.com/amishk599/jobboard/internal/source"
)

const defaultConfigPath = "jobboard.yaml"

var (
	cfgPath  string
	debug    bool
	dataPath string
)

var rootCmd = &cobra.Command{
	Use:   "jobboard",
	Short: "Browse, filter and render job listings",
	Long:  "jobboard loads scraped job records, lets you filter them by text and company, and renders them as cards.",
	// Default to `browse` so that `jobboard` with no args opens the board.
	RunE: runBrowse,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBBOARD_CONFIG env var or ./jobboard.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "path to the job data file (overrides data_file)")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBBOARD_CONFIG env var > "./jobboard.yaml".
// A missing default file yields the built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	explicit := true
	if path == "" {
		if env := os.Getenv("JOBBOARD_CONFIG"); env != "" {
			path = env
		} else {
			path = defaultConfigPath
			explicit = false
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			cfg = config.Default()
		} else {
			return nil, err
		}
	}
	if dataPath != "" {
		cfg.DataFile = dataPath
	}
	return cfg, nil
}

func setupLogger(w io.Writer, dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// loadBoard reads the data file into a new board. An unreadable file is
// logged and leaves the board in LoadFailed, same as an empty one.
func loadBoard(cfg *config.Config, logger *slog.Logger) *board.Board {
	b := board.New(board.WithLogger(logger))

	records, err := source.LoadFile(cfg.DataFile)
	if err != nil {
		logger.Error("failed to read job data", "path", cfg.DataFile, "error", err)
		records = nil
	}
	if err := b.Load(records); err != nil {
		logger.Error("failed to load job data", "path", cfg.DataFile, "error", err)
	}
	return b
}
