package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/billscout/internal/cli"
	"github.com/Veraticus/billscout/internal/common"
	"github.com/Veraticus/billscout/internal/model"
	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [text]",
		Short: "Classify one bill",
		Long: `Classify the text of a single bill into a spending category and
suggest tags for it.

Examples:
  billscout classify "Monthly bill" --company Comcast --description "internet service"
  billscout classify --company "City Water" --save`,
		RunE: runClassify,
	}

	cmd.Flags().String("company", "", "Company name printed on the bill")
	cmd.Flags().String("description", "", "Bill description or line items")
	cmd.Flags().Bool("save", false, "Record the result in history")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	company, _ := cmd.Flags().GetString("company")
	description, _ := cmd.Flags().GetString("description")
	save, _ := cmd.Flags().GetBool("save")

	bill := model.BillInput{
		Text:        strings.Join(args, " "),
		CompanyName: company,
		Description: description,
	}
	if strings.TrimSpace(bill.Text+bill.CompanyName+bill.Description) == "" {
		return common.NewUserError("provide bill text, --company, or --description", common.ErrInvalidInput)
	}

	classifier, err := loadClassifier()
	if err != nil {
		return err
	}

	match := classifier.Classify(bill.Text, bill.CompanyName, bill.Description)
	tags := classifier.SuggestTags(match.Category, match.Subcategory)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatMatch(match, tags))

	if !save {
		return nil
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	record := &model.BillRecord{BillInput: bill, Match: match, Tags: tags}
	if err := store.SaveBill(ctx, record); err != nil {
		return fmt.Errorf("failed to save bill: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Saved as bill #%d", record.ID)))
	return nil
}
