package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clademark/phyloforest/cmd/phyloforest/internal"
)

var (
	forestPath string
	outFormat  string
	noColor    bool
	quiet      bool
	cfg        *internal.Config
)

var rootCmd = &cobra.Command{
	Use:   "phyloforest",
	Short: "Build and query phylogenetic forests of arbitrary population scale",
	Long: `phyloforest constructs append-only phylogenetic forests, persists
them to a compact binary snapshot, and answers pairwise tree-distance and
most-recent-common-ancestor queries over arbitrary query sets.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := internal.LoadConfig("")
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
		internal.InitColor(!noColor && cfg.Output.Color)
		internal.SetQuietMode(quiet || !cfg.Output.Progress)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&forestPath, "forest", "forest.pfor", "path to the forest snapshot file")
	rootCmd.PersistentFlags().StringVar(&outFormat, "format", "table", "output format: table, json, yaml, csv")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress progress bars")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		internal.PrintError("error: %v\n", err)
		os.Exit(1)
	}
}
