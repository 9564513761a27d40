package main

import (
	"fmt"
	"strconv"
	"strings"

	prompt "github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"

	"github.com/clademark/phyloforest/distance"
	"github.com/clademark/phyloforest/forest"

	"github.com/clademark/phyloforest/cmd/phyloforest/internal"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive shell for issuing add-child and distances calls against a loaded forest",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadForest(forestPath)
		if err != nil {
			return err
		}

		r := &replState{forest: f}
		internal.PrintInfo("loaded %s (%d nodes). Commands: add-child, distances, save, exit\n", forestPath, f.Len())
		runREPL(r)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

type replState struct {
	forest *forest.Forest
}

func (r *replState) complete(d prompt.Document) []prompt.Suggest {
	suggestions := []prompt.Suggest{
		{Text: "add-child", Description: "add-child <parent> <child>"},
		{Text: "distances", Description: "distances <id> <id> [id...]"},
		{Text: "save", Description: "write the current forest back to disk"},
		{Text: "exit", Description: "leave the shell"},
	}
	return prompt.FilterHasPrefix(suggestions, d.GetWordBeforeCursor(), true)
}

func (r *replState) execute(line string) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "exit", "quit":
		panic(replExit{})
	case "save":
		if err := saveForest(r.forest, forestPath); err != nil {
			internal.PrintError("%v\n", err)
			return
		}
		internal.PrintSuccess("saved\n")
	case "add-child":
		r.runAddChild(fields[1:])
	case "distances":
		r.runDistances(fields[1:])
	default:
		internal.PrintWarning("unknown command %q\n", fields[0])
	}
}

func (r *replState) runAddChild(args []string) {
	if len(args) != 2 {
		internal.PrintError("usage: add-child <parent> <child>\n")
		return
	}
	parent, err1 := strconv.ParseInt(args[0], 10, 64)
	child, err2 := strconv.ParseInt(args[1], 10, 64)
	if err1 != nil || err2 != nil {
		internal.PrintError("parent and child must be integer IDs\n")
		return
	}
	if err := r.forest.AddChild(parent, child); err != nil {
		internal.PrintError("%v\n", err)
		return
	}
	internal.PrintSuccess("added %d under %d\n", child, parent)
}

func (r *replState) runDistances(args []string) {
	if len(args) < 2 {
		internal.PrintError("usage: distances <id> <id> [id...]\n")
		return
	}
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			internal.PrintError("invalid ID %q\n", a)
			return
		}
		ids = append(ids, id)
	}

	result, err := distance.Compute(r.forest, ids, distance.Options{MaxDistance: distance.Unbounded})
	if err != nil {
		internal.PrintError("%v\n", err)
		return
	}
	if result.MRCA != nil {
		fmt.Printf("MRCA: %d\n", *result.MRCA)
	} else {
		fmt.Println("no MRCA")
	}
	for pair, d := range result.Pairwise {
		if pair.A == pair.B {
			continue
		}
		fmt.Printf("(%d,%d) = %d\n", pair.A, pair.B, d)
	}
}

// replExit is recovered by runREPL to let "exit" unwind go-prompt's Run
// loop, which otherwise only returns on os.Exit.
type replExit struct{}

func runREPL(r *replState) {
	defer func() {
		if v := recover(); v != nil {
			if _, ok := v.(replExit); !ok {
				panic(v)
			}
		}
	}()
	prompt.New(r.execute, r.complete, prompt.OptionPrefix("phyloforest> ")).Run()
}
