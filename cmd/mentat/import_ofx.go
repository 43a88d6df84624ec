package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/mentat/internal/cli"
	"github.com/Veraticus/mentat/internal/config"
	"github.com/Veraticus/mentat/internal/model"
	"github.com/Veraticus/mentat/internal/ofx"
	"github.com/Veraticus/mentat/internal/xlsx"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Convert OFX/QFX bank exports into a transactions xlsx",
		Long: `Convert OFX or QFX (Quicken) files exported from your bank into the
transactions spreadsheet the categorize command reads.

Examples:
  # Convert a single file
  mentat import-ofx ~/Downloads/chase_jan_2024.qfx

  # Merge several exports into one sheet
  mentat import-ofx ~/Downloads/*.qfx --output transactions.xlsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().StringP("output", "o", "transactions.xlsx", "transactions xlsx to write")
	_ = viper.BindPFlag("import.output", cmd.Flags().Lookup("output"))

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	outputPath := config.ExpandPath(viper.GetString("import.output"))

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

	slog.Info(cli.FormatTitle("Importing OFX files"))
	slog.Info("Reading bank exports", "file_count", len(allFiles))

	var allTransactions []model.Transaction
	fileResults := make(map[string]int)

	parser := ofx.NewParser()

	for _, filePath := range allFiles {
		f, err := os.Open(filePath)
		if err != nil {
			slog.Error("Failed to open file", "file", filePath, "error", err)
			continue
		}

		transactions, err := parser.ParseFile(ctx, f)
		_ = f.Close()

		if err != nil {
			slog.Error("Failed to parse OFX file", "file", filePath, "error", err)
			continue
		}

		if len(transactions) == 0 {
			slog.Warn("No transactions found in file", "file", filepath.Base(filePath))
			continue
		}

		allTransactions = append(allTransactions, transactions...)
		fileResults[filepath.Base(filePath)] = len(transactions)
	}

	if len(allTransactions) == 0 {
		slog.Warn("No transactions found in any file")
		return nil
	}

	// Reindex the merged list so row positions stay stable downstream
	for i := range allTransactions {
		allTransactions[i].Index = i
	}

	if err := xlsx.WriteImported(outputPath, allTransactions); err != nil {
		return fmt.Errorf("failed to write transactions: %w", err)
	}

	displayImportSummary(allTransactions, fileResults, outputPath)
	slog.Info(cli.FormatSuccess(fmt.Sprintf("Wrote %d transactions to %s", len(allTransactions), outputPath)))

	return nil
}

func displayImportSummary(transactions []model.Transaction, fileResults map[string]int, outputPath string) {
	var oldestDate, newestDate time.Time
	accounts := make(map[string]int)
	totalAmount := 0.0

	for i, tx := range transactions {
		if i == 0 || tx.Date.Before(oldestDate) {
			oldestDate = tx.Date
		}
		if i == 0 || tx.Date.After(newestDate) {
			newestDate = tx.Date
		}
		accounts[tx.Account]++
		totalAmount += tx.Amount
	}

	content := fmt.Sprintf(`Files: %d
Transactions: %d
Accounts: %d
Date range: %s to %s
Net amount: %.2f
Output: %s
`, len(fileResults), len(transactions), len(accounts),
		oldestDate.Format("2006-01-02"), newestDate.Format("2006-01-02"),
		totalAmount, outputPath)

	slog.Info(cli.RenderBox("Import Summary", content))
}
