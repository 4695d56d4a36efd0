package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobboard/internal/ingest"
	"github.com/amishk599/jobboard/internal/notifier"
	"github.com/amishk599/jobboard/internal/source"
	"github.com/amishk599/jobboard/internal/store"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest FILE...",
	Short: "Merge scraper output into the job data file",
	Long: "Reads raw job records from each FILE (JSON array or jobs.js form), keeps recent " +
		"relevant postings, merges them into the catalog and rewrites the job data file.",
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	logger := setupLogger(os.Stdout, debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	records, err := source.LoadFiles(cmd.Context(), args)
	if err != nil {
		return err
	}
	logger.Info("read scraper output", "files", len(args), "records", len(records))

	st, err := store.NewSQLiteStore(cfg.CatalogFile)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer st.Close()

	ing := ingest.NewIngester(cfg.Ingest, st, notifier.NewLogNotifier(logger), logger)
	if _, err := ing.Seed(cfg.DataFile); err != nil {
		return err
	}
	res, err := ing.Run(records)
	if err != nil {
		return err
	}

	if err := ingest.Export(res.Records, cfg.DataFile); err != nil {
		return err
	}
	logger.Info("job data written", "path", cfg.DataFile, "jobs", len(res.Records))
	return nil
}
