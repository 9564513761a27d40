// Package importer replays an externally produced edge list into a forest.
// It is a collaborator outside the core engine, not part of it: the core
// packages (forest, codec, distance) never parse input formats or report
// progress, so that logic lives here instead, modeled on the teacher's
// bulk BuildGraphHybrid ingestion path (query/hybrid_builder.go) which
// likewise separates "read records from an external source" from
// "populate the graph".
package importer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/clademark/phyloforest/forest"
)

// Progress is satisfied by any progress reporter with an Add method, kept
// minimal so this package doesn't need to import the CLI's concrete
// progressbar wrapper. A nil Progress is a valid no-op.
type Progress interface {
	Add(n int)
}

type noopProgress struct{}

func (noopProgress) Add(int) {}

// Snapshot reads a newline-delimited "parent_id,child_id" edge list,
// already ID-ordered by the caller (ascending by child ID, per the
// forest's own ID-ordering invariant), and replays it as AddChild calls
// against a freshly constructed forest. A line with an empty parent_id
// field declares a genesis root instead of an edge: "," "<id>".
//
// Blank lines and lines beginning with '#' are skipped, so a hand-edited
// snapshot can carry comments.
func Snapshot(r io.Reader, progress Progress) (*forest.Forest, error) {
	if progress == nil {
		progress = noopProgress{}
	}

	scanner := bufio.NewScanner(r)
	// Deep snapshots exceed bufio.Scanner's 64KiB default token limit on
	// pathological lines; this mirrors the codec package's "never blow up
	// on a big forest" stance.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var genesisIDs []int64
	var edges [][2]int64

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parentField, childField, ok := strings.Cut(line, ",")
		if !ok {
			return nil, fmt.Errorf("importer: line %d: expected \"parent_id,child_id\", got %q", lineNo, line)
		}
		parentField = strings.TrimSpace(parentField)
		childField = strings.TrimSpace(childField)

		childID, err := strconv.ParseInt(childField, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("importer: line %d: invalid child ID %q: %w", lineNo, childField, err)
		}

		if parentField == "" {
			genesisIDs = append(genesisIDs, childID)
			continue
		}

		parentID, err := strconv.ParseInt(parentField, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("importer: line %d: invalid parent ID %q: %w", lineNo, parentField, err)
		}
		edges = append(edges, [2]int64{parentID, childID})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("importer: reading snapshot: %w", err)
	}

	f, err := forest.New(genesisIDs)
	if err != nil {
		return nil, fmt.Errorf("importer: %w", err)
	}
	progress.Add(len(genesisIDs))

	for _, e := range edges {
		if err := f.AddChild(e[0], e[1]); err != nil {
			return nil, fmt.Errorf("importer: %w", err)
		}
		progress.Add(1)
	}

	return f, nil
}
