package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/clademark/phyloforest/codec"
	"github.com/clademark/phyloforest/forest"

	"github.com/clademark/phyloforest/cmd/phyloforest/internal"
)

var (
	serializeOut  string
	serializeZstd bool
)

var serializeCmd = &cobra.Command{
	Use:   "serialize",
	Short: "Re-write the forest snapshot, optionally zstd-compressed",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadForest(forestPath)
		if err != nil {
			return err
		}

		out := serializeOut
		if out == "" {
			out = forestPath
		}

		w, err := os.Create(out)
		if err != nil {
			return err
		}
		defer w.Close()

		if serializeZstd {
			err = codec.WriteCompressed(w, f)
		} else {
			err = codec.Write(w, f)
		}
		if err != nil {
			return err
		}

		internal.PrintSuccess("serialized forest to %s\n", out)
		return nil
	},
}

var (
	deserializeIn   string
	deserializeZstd bool
)

var deserializeCmd = &cobra.Command{
	Use:   "deserialize",
	Short: "Read a forest snapshot (optionally zstd-compressed) and report its shape",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := deserializeIn
		if in == "" {
			in = forestPath
		}

		r, err := os.Open(in)
		if err != nil {
			return err
		}
		defer r.Close()

		var f *forest.Forest
		if deserializeZstd {
			f, err = codec.ReadCompressed(r)
		} else {
			f, err = codec.Read(r)
		}
		if err != nil {
			return err
		}

		stats := f.Stats()
		internal.PrintInfo("nodes=%d leaves=%d genesis=%d maxID=%d\n",
			stats.Nodes, stats.Leaves, stats.Genesis, stats.MaxID)
		return nil
	},
}

func init() {
	serializeCmd.Flags().StringVar(&serializeOut, "out", "", "output path (defaults to --forest)")
	serializeCmd.Flags().BoolVar(&serializeZstd, "zstd", false, "compress the stream with zstd")
	rootCmd.AddCommand(serializeCmd)

	deserializeCmd.Flags().StringVar(&deserializeIn, "in", "", "input path (defaults to --forest)")
	deserializeCmd.Flags().BoolVar(&deserializeZstd, "zstd", false, "expect a zstd-compressed stream")
	rootCmd.AddCommand(deserializeCmd)
}
