package main

import (
	"github.com/spf13/cobra"

	"github.com/clademark/phyloforest/distance"

	"github.com/clademark/phyloforest/cmd/phyloforest/internal"
)

var pruneQuery string

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove nodes unreachable from a query set and save the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDList(pruneQuery)
		if err != nil {
			return err
		}

		f, err := loadForest(forestPath)
		if err != nil {
			return err
		}

		before := f.Len()
		if _, err := distance.Compute(f, ids, distance.Options{
			MaxDistance:            distance.Unbounded,
			RemoveUnreachableNodes: true,
		}); err != nil {
			return err
		}

		if err := saveForest(f, forestPath); err != nil {
			return err
		}

		internal.PrintSuccess("pruned %d unreachable node(s); %d remain\n", before-f.Len(), f.Len())
		return nil
	},
}

func init() {
	pruneCmd.Flags().StringVar(&pruneQuery, "query", "", "comma-separated query node IDs defining what to keep")
	pruneCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(pruneCmd)
}
