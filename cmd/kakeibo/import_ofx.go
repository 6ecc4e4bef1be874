package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"kakeibo/internal/cli"
	"kakeibo/internal/model"
	"kakeibo/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	var (
		dryRun     bool
		categoryID int64
	)

	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import records from OFX/QFX bank statements",
		Long: `Import expense and income records from OFX or QFX (Quicken) files
exported from your bank.

Examples:
  # Import single file
  kakeibo import-ofx ~/Downloads/statement_jan.qfx

  # Import all QFX files in a directory, filed under category 3
  kakeibo import-ofx --category 3 ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Expand globs and collect all files
			var allFiles []string
			for _, pattern := range args {
				matches, err := filepath.Glob(pattern)
				if err != nil {
					return fmt.Errorf("invalid pattern %s: %w", pattern, err)
				}
				if len(matches) == 0 {
					// If no glob matches, check if it's a direct file
					if _, err := os.Stat(pattern); err == nil {
						allFiles = append(allFiles, pattern)
					} else {
						slog.Warn("No files found matching pattern", "pattern", pattern)
					}
				} else {
					allFiles = append(allFiles, matches...)
				}
			}

			if len(allFiles) == 0 {
				return fmt.Errorf("no files found to import")
			}

			parser := ofx.NewParser()
			var entries []model.Expense

			for _, filePath := range allFiles {
				f, err := os.Open(filePath)
				if err != nil {
					slog.Error("Failed to open file", "file", filePath, "error", err)
					continue
				}

				parsed, err := parser.ParseFile(ctx, f)
				_ = f.Close()
				if err != nil {
					slog.Error("Failed to parse OFX file", "file", filePath, "error", err)
					continue
				}

				if len(parsed) == 0 {
					slog.Warn("No entries found in file", "file", filepath.Base(filePath))
					continue
				}

				entries = append(entries, parsed...)
				slog.Info("Processed file",
					"file", filepath.Base(filePath),
					"entries", len(parsed))
			}

			if len(entries) == 0 {
				return fmt.Errorf("no entries found in %d file(s)", len(allFiles))
			}

			if dryRun {
				fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Dry run: %d entries would be imported", len(entries))))
				for _, entry := range entries {
					fmt.Printf("  %s  %-20s  %s\n", entry.FormattedDate(), entry.Title, entry.FormattedAmount())
				}
				return nil
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			bar := progressbar.NewOptions(len(entries),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Importing records..."),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(os.Stderr)
				}),
			)

			imported := 0
			for i := range entries {
				if categoryID > 0 {
					id := categoryID
					entries[i].CategoryID = &id
				}
				if err := store.SaveExpense(ctx, &entries[i]); err != nil {
					slog.Error("Failed to save imported entry",
						"title", entries[i].Title,
						"error", err)
					continue
				}
				imported++
				_ = bar.Add(1)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Imported %d of %d entries", imported, len(entries))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview import without saving")
	cmd.Flags().Int64VarP(&categoryID, "category", "c", 0, "file imported records under this category id")

	return cmd
}
