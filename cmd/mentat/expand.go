package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/mentat/internal/cli"
	"github.com/Veraticus/mentat/internal/common"
	"github.com/Veraticus/mentat/internal/config"
	"github.com/Veraticus/mentat/internal/dictionary"
	"github.com/Veraticus/mentat/internal/expand"
	"github.com/Veraticus/mentat/internal/xlsx"
)

func expandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Expand remark abbreviations without categorizing",
		Long: `Expand the abbreviations in transaction remarks using the local
dictionary, writing the result as a new column next to the originals.

Unambiguous abbreviations are substituted directly; the model is only asked
about entries with several possible readings.

Examples:
  mentat expand -t transactions.xlsx -d abbreviation_dict.xlsx
  mentat expand -t transactions.xlsx -d dict.xlsx -o expanded.xlsx`,
		RunE: runExpand,
	}

	cmd.Flags().StringP("transactions", "t", "", "transactions xlsx (must have a REMARK_CLEAN column)")
	cmd.Flags().StringP("dictionary", "d", "", "abbreviation dictionary xlsx")
	cmd.Flags().StringP("output", "o", "expanded_transactions.xlsx", "expanded output xlsx")
	_ = cmd.MarkFlagRequired("transactions")
	_ = cmd.MarkFlagRequired("dictionary")

	_ = viper.BindPFlag("expand.transactions", cmd.Flags().Lookup("transactions"))
	_ = viper.BindPFlag("expand.dictionary", cmd.Flags().Lookup("dictionary"))
	_ = viper.BindPFlag("expand.output", cmd.Flags().Lookup("output"))

	return cmd
}

func runExpand(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	transactionsPath := config.ExpandPath(viper.GetString("expand.transactions"))
	dictionaryPath := config.ExpandPath(viper.GetString("expand.dictionary"))
	outputPath := config.ExpandPath(viper.GetString("expand.output"))

	slog.Info(cli.FormatTitle("Expanding transaction remarks"))

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
		"transactions":  len(transactions),
		"abbreviations": dict.Len(),
	})

	// The model is only consulted for ambiguous dictionary entries
	client, err := createModelClient()
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	expander := expand.New(dict, expand.NewLLMResolver(client))
	bar := cli.NewProgressBar(len(transactions), "Expanding remarks...", os.Stderr)
	expander.ExpandAll(ctx, transactions, func() {
		_ = bar.Add(1)
	})

	if err := xlsx.WriteExpanded(outputPath, table, transactions); err != nil {
		return fmt.Errorf("failed to write expanded transactions: %w", err)
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Expanded %d remarks to %s", len(transactions), outputPath)))

	return nil
}
