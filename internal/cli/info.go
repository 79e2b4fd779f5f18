package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/algoviz/algoviz/pkg/frame"
)

// infoCommand creates the info command for summarizing a session document.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [session.json]",
		Short: "Summarize a session document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := frame.ReadSessionFile(args[0])
			if err != nil {
				return err
			}
			printSessionInfo(s)
			printNewline()
			printNextStep("Render the first frame", fmt.Sprintf("%s render %s", appName, args[0]))
			printNextStep("Step through it", fmt.Sprintf("%s play %s", appName, args[0]))
			return nil
		},
	}
}

// printSessionInfo prints the session's metadata and structure counts.
func printSessionInfo(s *frame.Session) {
	name := s.Name
	if name == "" {
		name = "(unnamed)"
	}
	module := s.Module
	if module == "" {
		module = "(untagged)"
	}

	printKeyValue("Name", name)
	printKeyValue("Module", module)
	printKeyValue("Frames", fmt.Sprintf("%d", len(s.Frames)))

	counts := structureCounts(s)
	if len(counts) > 0 {
		printKeyValue("Structures", strings.Join(counts, ", "))
	}
}

// structureCounts tallies which structure kinds appear across all frames.
func structureCounts(s *frame.Session) []string {
	var arrays, stacks, queues, lists, trees, graphs, vars int
	for _, f := range s.Frames {
		arrays += len(f.Arrays)
		stacks += len(f.Stacks)
		queues += len(f.Queues)
		lists += len(f.LinkedLists)
		trees += len(f.Trees)
		graphs += len(f.Graphs)
		vars += len(f.Variables)
	}

	var parts []string
	add := func(n int, singular, plural string) {
		if n == 0 {
			return
		}
		label := plural
		if n == 1 {
			label = singular
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, label))
	}
	add(arrays, "array", "arrays")
	add(stacks, "stack", "stacks")
	add(queues, "queue", "queues")
	add(lists, "linked list", "linked lists")
	add(trees, "tree", "trees")
	add(graphs, "graph", "graphs")
	add(vars, "variable", "variables")
	return parts
}
