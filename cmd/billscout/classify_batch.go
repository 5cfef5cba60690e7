package main

import (
	"fmt"
	"sort"

	"github.com/Veraticus/billscout/internal/cli"
	"github.com/Veraticus/billscout/internal/common"
	"github.com/Veraticus/billscout/internal/model"
	"github.com/Veraticus/billscout/internal/source"
	"github.com/spf13/cobra"
)

func classifyBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify-batch <bills.json>",
		Short: "Classify every bill in a JSON file",
		Long: `Classify a JSON array of extracted bills, each with "text",
"company_name" and "description" fields.

Examples:
  billscout classify-batch bills.json
  billscout classify-batch bills.json --save`,
		Args: cobra.ExactArgs(1),
		RunE: runClassifyBatch,
	}

	cmd.Flags().Bool("save", false, "Record every result in history")

	return cmd
}

func runClassifyBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	save, _ := cmd.Flags().GetBool("save")

	bills, err := source.NewBillFile(args[0]).Extract(ctx)
	if err != nil {
		return err
	}
	if len(bills) == 0 {
		return common.NewUserError("no bills found in "+args[0], common.ErrNoBills)
	}

	classifier, err := loadClassifier()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	progress := cli.NewProgress(cmd.ErrOrStderr(), len(bills), "Classifying bills...")

	records := make([]model.BillRecord, 0, len(bills))
	err = classifier.ClassifyEach(ctx, bills, func(i int, match model.CategoryMatch) {
		records = append(records, model.BillRecord{
			BillInput: bills[i],
			Match:     match,
			Tags:      classifier.SuggestTags(match.Category, match.Subcategory),
		})
		progress.Increment()
	})
	if err != nil {
		return err
	}

	if save {
		store, err := initStorage(ctx)
		if err != nil {
			return err
		}
		defer closeStorage(store)

		if err := store.SaveBills(ctx, records); err != nil {
			return fmt.Errorf("failed to save bills: %w", err)
		}
	}

	if err := cli.WriteBillsTable(out, records); err != nil {
		return err
	}

	fmt.Fprintln(out, cli.RenderBox("Batch Complete", summarizeCategories(records)))
	return nil
}

// summarizeCategories lists per-category counts, most frequent first.
func summarizeCategories(records []model.BillRecord) string {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Match.Category]++
	}

	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		if counts[categories[i]] != counts[categories[j]] {
			return counts[categories[i]] > counts[categories[j]]
		}
		return categories[i] < categories[j]
	})

	summary := fmt.Sprintf("Bills classified: %d\n", len(records))
	for _, c := range categories {
		summary += fmt.Sprintf("  • %s: %d\n", c, counts[c])
	}
	return summary
}
