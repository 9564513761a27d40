package main

import (
	"fmt"
	"os"

	"github.com/clademark/phyloforest/codec"
	"github.com/clademark/phyloforest/forest"
)

func loadForest(path string) (*forest.Forest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening forest snapshot %q: %w", path, err)
	}
	defer f.Close()

	fo, err := codec.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading forest snapshot %q: %w", path, err)
	}
	return fo, nil
}

func saveForest(fo *forest.Forest, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating forest snapshot %q: %w", path, err)
	}
	defer out.Close()

	if err := codec.Write(out, fo); err != nil {
		return fmt.Errorf("writing forest snapshot %q: %w", path, err)
	}
	return nil
}
