package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/mentat/internal/classify"
	"github.com/Veraticus/mentat/internal/cli"
	"github.com/Veraticus/mentat/internal/common"
	"github.com/Veraticus/mentat/internal/config"
	"github.com/Veraticus/mentat/internal/dictionary"
	"github.com/Veraticus/mentat/internal/expand"
	"github.com/Veraticus/mentat/internal/model"
	"github.com/Veraticus/mentat/internal/xlsx"
)

func categorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Expand remarks and categorize transactions",
		Long: `Categorize financial transactions into your own category list.

Remark abbreviations are expanded first using the local dictionary; when an
abbreviation has several possible readings the model picks the one that fits
the transaction. Classification itself is a single batch model call over the
raw remarks.

Examples:
  mentat categorize -c categories.xlsx -t transactions.xlsx -d abbreviation_dict.xlsx
  mentat categorize -c categories.xlsx -t transactions.xlsx -d dict.xlsx --expanded-output expanded.xlsx
  mentat categorize -c categories.xlsx -t transactions.xlsx -d dict.xlsx --fallback-category "Khác"`,
		RunE: runCategorize,
	}

	// Flags
	cmd.Flags().StringP("categories", "c", "", "categories xlsx (first column holds the category names)")
	cmd.Flags().StringP("transactions", "t", "", "transactions xlsx (must have a REMARK_CLEAN column)")
	cmd.Flags().StringP("dictionary", "d", "", "abbreviation dictionary xlsx")
	cmd.Flags().StringP("output", "o", xlsx.DefaultCategorizedName, "categorized output xlsx")
	cmd.Flags().String("expanded-output", "", "also write the expanded remarks to this xlsx")
	cmd.Flags().String("fallback-category", classify.DefaultFallbackCategory, "category assigned to rows the model misses")
	_ = cmd.MarkFlagRequired("categories")
	_ = cmd.MarkFlagRequired("transactions")
	_ = cmd.MarkFlagRequired("dictionary")

	// Bind to viper (errors are rare and can be ignored in practice)
	_ = viper.BindPFlag("categorize.categories", cmd.Flags().Lookup("categories"))
	_ = viper.BindPFlag("categorize.transactions", cmd.Flags().Lookup("transactions"))
	_ = viper.BindPFlag("categorize.dictionary", cmd.Flags().Lookup("dictionary"))
	_ = viper.BindPFlag("categorize.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("categorize.expanded_output", cmd.Flags().Lookup("expanded-output"))
	_ = viper.BindPFlag("categorize.fallback_category", cmd.Flags().Lookup("fallback-category"))

	return cmd
}

func runCategorize(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	categoriesPath := config.ExpandPath(viper.GetString("categorize.categories"))
	transactionsPath := config.ExpandPath(viper.GetString("categorize.transactions"))
	dictionaryPath := config.ExpandPath(viper.GetString("categorize.dictionary"))
	outputPath := config.ExpandPath(viper.GetString("categorize.output"))
	expandedPath := config.ExpandPath(viper.GetString("categorize.expanded_output"))
	fallback := viper.GetString("categorize.fallback_category")

	slog.Info(cli.FormatTitle("Categorizing transactions"))

	categories, err := xlsx.ReadCategories(categoriesPath)
	if err != nil {
		return fmt.Errorf("failed to read categories: %w", err)
	}

	table, err := xlsx.ReadTransactions(transactionsPath)
	if err != nil {
		return fmt.Errorf("failed to read transactions: %w", err)
	}
	transactions := table.Transactions()

	dict, err := dictionary.Load(dictionaryPath)
	if err != nil {
		return fmt.Errorf("failed to load abbreviation dictionary: %w", err)
	}

	common.LogInfo("inputs loaded", common.Fields{
		"categories":    len(categories),
		"transactions":  len(transactions),
		"abbreviations": dict.Len(),
	})

	client, err := createModelClient()
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	// Expansion pass
	expander := expand.New(dict, expand.NewLLMResolver(client))
	bar := cli.NewProgressBar(len(transactions), "Expanding remarks...", os.Stderr)
	expander.ExpandAll(ctx, transactions, func() {
		_ = bar.Add(1)
	})

	if expandedPath != "" {
		if writeErr := xlsx.WriteExpanded(expandedPath, table, transactions); writeErr != nil {
			return fmt.Errorf("failed to write expanded transactions: %w", writeErr)
		}
		slog.Info(cli.FormatSuccess(fmt.Sprintf("Expanded remarks written to %s", expandedPath)))
	}

	// Classification runs over the raw remarks, one call for the whole batch
	classifier := classify.New(client, classify.Options{FallbackCategory: fallback})

	slog.Info("🔄 Classifying transactions...")
	records, err := classifier.Classify(ctx, categories, table.Remarks())
	if err != nil {
		if errors.Is(err, common.ErrClassificationParse) {
			return common.NewUserError("LLM response could not be processed as JSON; no categorized output was written", err)
		}
		return fmt.Errorf("classification failed: %w", err)
	}

	reconciled, missing, err := classifier.Reconcile(records, transactions)
	if err != nil {
		if errors.Is(err, common.ErrClassificationOverflow) {
			return common.NewUserError("The model returned more rows than there are transactions; no categorized output was written", err)
		}
		return err
	}
	if missing > 0 {
		slog.Warn(cli.FormatWarning(fmt.Sprintf("%d transactions were not categorized. Assigning '%s'.", missing, classifier.FallbackCategory())))
	}

	if err := xlsx.WriteCategorized(outputPath, reconciled); err != nil {
		return fmt.Errorf("failed to write categorized transactions: %w", err)
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Categorized %d transactions", len(reconciled))))
	displayCategorySummary(reconciled, outputPath)

	return nil
}

func displayCategorySummary(records []model.ClassifiedRecord, outputPath string) {
	if len(records) == 0 {
		return
	}

	counts := make(map[string]int)
	for _, record := range records {
		counts[record.Category]++
	}

	content := fmt.Sprintf(`Transactions: %d
Categories used: %d
Output: %s

Top categories:
`, len(records), len(counts), outputPath)

	for i, c := range topCategories(counts, 5) {
		content += fmt.Sprintf("%d. %s (%d transactions)\n", i+1, c.name, c.count)
	}

	slog.Info(cli.RenderBox("Categorization Summary", content))
}

type categoryCount struct {
	name  string
	count int
}

func topCategories(counts map[string]int, limit int) []categoryCount {
	// Convert map to slice for sorting
	sorted := make([]categoryCount, 0, len(counts))
	for name, count := range counts {
		sorted = append(sorted, categoryCount{name: name, count: count})
	}

	// Simple bubble sort for top N (efficient for small N)
	for i := 0; i < len(sorted) && i < limit; i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].count > sorted[i].count {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	return sorted
}
