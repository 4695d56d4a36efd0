package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobboard/internal/board"
	"github.com/amishk599/jobboard/internal/model"
	"github.com/amishk599/jobboard/internal/render"
)

var (
	renderSearch    string
	renderCompanies []string
	renderSort      string
	renderOut       string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the job board as an HTML fragment",
	Long: "Loads the job data file, applies the given search, company and sort selection, " +
		"and writes the filter panel, job count and job list as HTML.",
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderSearch, "search", "", "search text matched against title, company and location")
	renderCmd.Flags().StringSliceVar(&renderCompanies, "company", nil, "companies to show (default: all)")
	renderCmd.Flags().StringVar(&renderSort, "sort", string(model.SortNewest), "sort order: newest or oldest")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "write the fragment to this file instead of stdout")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	// stdout carries the fragment
	logger := setupLogger(os.Stderr, debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	b := loadBoard(cfg, logger)

	var out io.Writer = cmd.OutOrStdout()
	if renderOut != "" {
		f, err := os.Create(renderOut)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		out = f
	}

	html := render.HTML{}
	if b.State() != board.Ready {
		frag, err := html.RenderError(render.LoadErrorTitle, render.LoadErrorHint)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, frag.String())
		return err
	}

	if err := applySelection(b, renderSearch, renderCompanies, model.SortOrder(renderSort)); err != nil {
		return err
	}

	frag, err := html.Render(b.Visible(), b.Filters(), b.Companies(), b.Sort())
	if err != nil {
		return err
	}
	if _, err := io.WriteString(out, frag.String()); err != nil {
		return fmt.Errorf("writing fragment: %w", err)
	}
	logger.Info("rendered board", "visible", len(b.Visible()), "jobs", len(b.Jobs()), "sort", string(b.Sort()))
	return nil
}

// applySelection replays a search, company and sort selection onto a freshly
// loaded board through its mutation methods. Unknown companies are ignored;
// if none of companies exist, every company stays selected.
func applySelection(b *board.Board, search string, companies []string, order model.SortOrder) error {
	if err := b.SetSort(order); err != nil {
		return err
	}
	b.SetSearch(search)

	want := make(map[string]bool, len(companies))
	for _, c := range companies {
		want[c] = true
	}
	matched := false
	for _, c := range b.Companies() {
		matched = matched || want[c]
	}
	if !matched {
		return nil
	}

	// every company starts selected, so the wanted ones stay selected and
	// deselection never reaches the last one
	for _, c := range b.Companies() {
		if !want[c] {
			b.ToggleCompany(c)
		}
	}
	return nil
}
