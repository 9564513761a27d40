package main

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/clademark/phyloforest/distance"

	"github.com/clademark/phyloforest/cmd/phyloforest/internal"
)

var (
	distancesQuery   string
	distancesMax     int64
	distancesPrune   bool
	distancesShowAll bool
)

var distancesCmd = &cobra.Command{
	Use:   "distances",
	Short: "Compute pairwise distances and the most recent common ancestor over a query set",
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDList(distancesQuery)
		if err != nil {
			return err
		}

		f, err := loadForest(forestPath)
		if err != nil {
			return err
		}

		maxDistance := distance.Unbounded
		if distancesMax > 0 {
			maxDistance = distancesMax
		}

		result, err := distance.Compute(f, ids, distance.Options{
			MaxDistance:            maxDistance,
			RemoveUnreachableNodes: distancesPrune,
		})
		if err != nil {
			return err
		}

		if distancesPrune {
			if err := saveForest(f, forestPath); err != nil {
				return err
			}
		}

		internal.PrintInfo("forest has %s nodes\n", humanize.Comma(int64(f.Len())))
		if result.MRCA != nil {
			internal.PrintSuccess("MRCA: %d\n", *result.MRCA)
		} else {
			internal.PrintWarning("no MRCA: query set spans disjoint genesis roots\n")
		}

		rows := make([]internal.DistanceRow, 0, len(result.Pairwise))
		for pair, d := range result.Pairwise {
			if !distancesShowAll && pair.A == pair.B {
				continue
			}
			rows = append(rows, internal.DistanceRow{A: pair.A, B: pair.B, Distance: d})
		}

		switch internal.OutputFormat(outFormat) {
		case internal.FormatTable:
			internal.WriteDistanceTable(rows)
		default:
			if err := internal.FormatOutput(rows, internal.OutputFormat(outFormat), true); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	distancesCmd.Flags().StringVar(&distancesQuery, "query", "", "comma-separated query node IDs")
	distancesCmd.Flags().Int64Var(&distancesMax, "max-distance", 0, "cap on reported distances (0 means unbounded)")
	distancesCmd.Flags().BoolVar(&distancesPrune, "prune", false, "remove nodes unreachable from the query set after computing")
	distancesCmd.Flags().BoolVar(&distancesShowAll, "show-self", false, "include zero-distance self entries")
	distancesCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(distancesCmd)
}
