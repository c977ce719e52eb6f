package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fleetdesk/driver-import/internal/grid"
	"github.com/fleetdesk/driver-import/internal/importer"
	"github.com/fleetdesk/driver-import/internal/store"
	"github.com/fleetdesk/driver-import/internal/tabular"
	"github.com/fleetdesk/driver-import/internal/validate"
)

var (
	importDryRun   bool
	importSkipDups bool
	importUser     string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Run the pipeline headless and commit the ready rows",
	Long: `Parses a delimited or xlsx export, auto-maps its columns, validates and
dedupes every row, and commits the ready set to the driver store. Rows with
findings or duplicate matches are reported and skipped; there is no
interactive reconciliation on this path.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "report the partition without committing")
	importCmd.Flags().BoolVar(&importSkipDups, "skip-duplicates", false, "treat duplicate rows as skipped (import them if otherwise clean)")
	importCmd.Flags().StringVar(&importUser, "user", "cli", "actor id recorded on created drivers")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	order, err := cfg.ParseDateOrder()
	if err != nil {
		return err
	}
	opts := validate.Options{DateOrder: order}

	table, err := parseFile(path)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DatabasePath, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	existing, err := db.ListAll(cmd.Context(), cfg.OrgID)
	if err != nil {
		return err
	}

	g := grid.New(table, existing, opts)
	if importSkipDups {
		for _, row := range g.Rows(grid.ViewDuplicates) {
			if err := g.SkipDuplicate(row.Index); err != nil {
				return err
			}
		}
	}

	counts := g.Counts()
	fmt.Printf("%s: %d rows (%d ready, %d with errors, %d duplicates)\n",
		filepath.Base(path), counts.Total, counts.Ready, counts.Errors, counts.Duplicates)
	for _, f := range g.Findings() {
		line := fmt.Sprintf("  row %d  %-26s %s", f.RowIndex+1, f.Field, f.Kind)
		if f.Suggestion != "" {
			line += fmt.Sprintf(" (suggest %q)", f.Suggestion)
		}
		fmt.Println(line)
	}
	for _, row := range g.Rows(grid.ViewDuplicates) {
		fmt.Printf("  row %d  duplicate of %s (matched on %s)\n",
			row.Index+1, row.Duplicate.ExistingID, row.Duplicate.MatchedOn)
	}

	if importDryRun {
		return nil
	}

	imp := importer.New(db, logger, opts, nil)
	res, err := imp.Run(cmd.Context(), g.ReadyRecords(), importer.Actor{OrgID: cfg.OrgID, UserID: importUser})
	if err != nil {
		logger.Error("import aborted", zap.Int("committed", res.Committed), zap.Error(err))
		return err
	}
	fmt.Printf("committed %d drivers\n", res.Committed)
	return nil
}

func parseFile(path string) (*tabular.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return tabular.ParseWorkbook(f)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return tabular.ParseDelimited(string(content))
}
