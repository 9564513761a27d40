package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/clademark/phyloforest/importer"

	"github.com/clademark/phyloforest/cmd/phyloforest/internal"
)

var importSnapshotIn string

var importSnapshotCmd = &cobra.Command{
	Use:   "import-snapshot",
	Short: "Replay a newline-delimited parent_id,child_id edge list into a new forest",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := os.Open(importSnapshotIn)
		if err != nil {
			return err
		}
		defer r.Close()

		info, err := r.Stat()
		if err != nil {
			return err
		}
		bar := internal.NewProgressBar(info.Size(), "importing edges")

		f, err := importer.Snapshot(r, bar)
		if err != nil {
			return err
		}
		bar.Finish()

		if err := saveForest(f, forestPath); err != nil {
			return err
		}

		internal.PrintSuccess("imported %d nodes into %s\n", f.Len(), forestPath)
		return nil
	},
}

func init() {
	importSnapshotCmd.Flags().StringVar(&importSnapshotIn, "in", "", "path to the edge list file")
	importSnapshotCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(importSnapshotCmd)
}
