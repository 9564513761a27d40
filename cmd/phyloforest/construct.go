package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clademark/phyloforest/forest"

	"github.com/clademark/phyloforest/cmd/phyloforest/internal"
)

var constructGenesis string

var constructCmd = &cobra.Command{
	Use:   "construct",
	Short: "Create a new forest snapshot with the given genesis roots",
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDList(constructGenesis)
		if err != nil {
			return err
		}

		f, err := forest.New(ids)
		if err != nil {
			return err
		}
		if err := saveForest(f, forestPath); err != nil {
			return err
		}

		internal.PrintSuccess("constructed forest with %d genesis root(s) at %s\n", len(ids), forestPath)
		return nil
	},
}

func init() {
	constructCmd.Flags().StringVar(&constructGenesis, "genesis", "", "comma-separated genesis root IDs")
	rootCmd.AddCommand(constructCmd)
}

func parseIDList(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("expected a non-empty comma-separated ID list")
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ID %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
