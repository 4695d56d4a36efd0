package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/amishk599/jobboard/internal/board"
	"github.com/amishk599/jobboard/internal/render"
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List the companies in the job data",
	Long:  "Loads the job data file and prints a table of the distinct companies and their job counts.",
	RunE:  runCompanies,
}

func init() {
	rootCmd.AddCommand(companiesCmd)
}

func runCompanies(cmd *cobra.Command, args []string) error {
	logger := setupLogger(os.Stderr, debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	b := loadBoard(cfg, logger)
	if b.State() != board.Ready {
		pterm.Error.Println(render.LoadErrorTitle + " " + render.LoadErrorHint)
		return nil
	}

	counts := make(map[string]int, len(b.Companies()))
	for _, j := range b.Jobs() {
		counts[j.Company]++
	}

	data := pterm.TableData{{"Company", "Jobs", "Color"}}
	for _, c := range b.Companies() {
		data = append(data, []string{c, strconv.Itoa(counts[c]), render.CompanyColor(c)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	fmt.Printf("\nTotal: %d companies, %s\n", len(b.Companies()), render.CountLabel(len(b.Jobs())))
	return nil
}
