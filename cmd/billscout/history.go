package main

import (
	"fmt"

	"github.com/Veraticus/billscout/internal/cli"
	"github.com/Veraticus/billscout/internal/common"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show saved classifications and rankings",
		RunE: func(_ *cobra.Command, _ []string) error {
			return common.NewUserError("choose a history to show: bills or places", common.ErrUnknownCommand)
		},
	}

	cmd.PersistentFlags().Int("limit", 20, "Maximum entries to show (0 = all)")

	cmd.AddCommand(historyBillsCmd())
	cmd.AddCommand(historyPlacesCmd())

	return cmd
}

func historyBillsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bills",
		Short: "Show classified bills, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			bills, err := store.ListBills(ctx, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(bills) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No bills saved yet"))
				return nil
			}

			if err := cli.WriteBillsTable(out, bills); err != nil {
				return err
			}

			counts, err := store.CountBillsByCategory(ctx)
			if err != nil {
				return err
			}
			summary := ""
			for category, n := range counts {
				summary += fmt.Sprintf("  • %s: %d\n", category, n)
			}
			fmt.Fprintln(out, cli.RenderBox("All-time totals", summary))
			return nil
		},
	}
}

func historyPlacesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "places",
		Short: "Show saved rankings, or one ranking with --id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			limit, _ := cmd.Flags().GetInt("limit")
			id, _ := cmd.Flags().GetInt64("id")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			out := cmd.OutOrStdout()

			if id > 0 {
				snapshot, err := store.GetPlaceSnapshot(ctx, id)
				if err != nil {
					return common.NewUserError(fmt.Sprintf("snapshot #%d not found", id), err)
				}
				fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Snapshot #%d %s", snapshot.ID, snapshot.Query)))
				return cli.WritePlacesTable(out, snapshot.Places)
			}

			snapshots, err := store.ListPlaceSnapshots(ctx, limit)
			if err != nil {
				return err
			}
			if len(snapshots) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No rankings saved yet"))
				return nil
			}
			return cli.WriteSnapshotsTable(out, snapshots)
		},
	}

	cmd.Flags().Int64("id", 0, "Show the places of one snapshot")

	return cmd
}
