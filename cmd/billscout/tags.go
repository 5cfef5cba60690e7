package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func tagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags <category> [subcategory]",
		Short: "Suggest tags for a category",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, err := loadClassifier()
			if err != nil {
				return err
			}

			var subcategory string
			if len(args) == 2 {
				subcategory = args[1]
			}

			tags := classifier.SuggestTags(args[0], subcategory)
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tags, " "))
			return nil
		},
	}
}
