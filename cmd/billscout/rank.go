package main

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/billscout/internal/cli"
	"github.com/Veraticus/billscout/internal/common"
	"github.com/Veraticus/billscout/internal/model"
	"github.com/Veraticus/billscout/internal/scoring"
	"github.com/Veraticus/billscout/internal/source"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func rankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank <places.json>",
		Short: "Score alternative vendors around a reference point",
		Long: `Score places from a places lookup by distance, price, quality and
service. The file holds a JSON array of places, or an object with a
"places" or "results" array.

Examples:
  billscout rank places.json --lat 40.71 --lon -74.00
  billscout rank places.json --lat 40.71 --lon -74.00 --sort quality --save --query "internet providers"`,
		Args: cobra.ExactArgs(1),
		RunE: runRank,
	}

	cmd.Flags().Float64("lat", 0, "Reference latitude")
	cmd.Flags().Float64("lon", 0, "Reference longitude")
	cmd.Flags().String("sort", "", "Display order: input, distance, price, quality, service")
	cmd.Flags().Int("workers", 0, "Parallel scoring workers (0 = number of CPUs)")
	cmd.Flags().Bool("save", false, "Record the ranking in history")
	cmd.Flags().String("query", "", "Label stored with a saved ranking")
	cmd.Flags().Bool("json", false, "Print scored places as JSON")

	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	_ = viper.BindPFlag("scoring.workers", cmd.Flags().Lookup("workers"))

	return cmd
}

func runRank(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	lat, _ := cmd.Flags().GetFloat64("lat")
	lon, _ := cmd.Flags().GetFloat64("lon")
	sortName, _ := cmd.Flags().GetString("sort")
	save, _ := cmd.Flags().GetBool("save")
	query, _ := cmd.Flags().GetString("query")
	asJSON, _ := cmd.Flags().GetBool("json")

	key, err := scoring.ParseSortKey(sortName)
	if err != nil {
		return common.NewUserError(err.Error(), common.ErrInvalidInput)
	}

	candidates, err := source.NewPlacesFile(args[0]).Lookup(ctx)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return common.NewUserError("no places with a location found in "+args[0], common.ErrNoCandidates)
	}

	places, err := newScorer().Score(ctx, candidates, lat, lon)
	if err != nil {
		return err
	}

	if save {
		store, err := initStorage(ctx)
		if err != nil {
			return err
		}
		defer closeStorage(store)

		snapshot := &model.PlaceSnapshot{Query: query, RefLat: lat, RefLon: lon, Places: places}
		if err := store.SavePlaceSnapshot(ctx, snapshot); err != nil {
			return fmt.Errorf("failed to save ranking: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess(fmt.Sprintf("Saved as snapshot #%d", snapshot.ID)))
	}

	sorted := scoring.SortBy(places, key)
	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(sorted)
	}

	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%s %d places around %.4f, %.4f", cli.PinIcon, len(sorted), lat, lon)))
	return cli.WritePlacesTable(out, sorted)
}
