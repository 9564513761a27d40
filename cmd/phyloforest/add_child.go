package main

import (
	"github.com/spf13/cobra"

	"github.com/clademark/phyloforest/cmd/phyloforest/internal"
)

var (
	addChildParent int64
	addChildChild  int64
)

var addChildCmd = &cobra.Command{
	Use:   "add-child",
	Short: "Attach a new leaf to an existing node",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadForest(forestPath)
		if err != nil {
			return err
		}
		if err := f.AddChild(addChildParent, addChildChild); err != nil {
			return err
		}
		if err := saveForest(f, forestPath); err != nil {
			return err
		}
		internal.PrintSuccess("added child %d under parent %d\n", addChildChild, addChildParent)
		return nil
	},
}

func init() {
	addChildCmd.Flags().Int64Var(&addChildParent, "parent", 0, "parent node ID")
	addChildCmd.Flags().Int64Var(&addChildChild, "child", 0, "new child node ID")
	addChildCmd.MarkFlagRequired("parent")
	addChildCmd.MarkFlagRequired("child")
	rootCmd.AddCommand(addChildCmd)
}
