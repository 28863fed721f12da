package main

import (
	"fmt"
	"io"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/traversal"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph FILE",
	Short: "Export the automaton as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart of the graph file. With --step, the nodes and
edges of that step are highlighted and the states already in the result set are
shaded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		alg, frontier, err := runOptions(cmd)
		if err != nil {
			return err
		}
		step, _ := cmd.Flags().GetInt("step")
		gf, err := loadGraph(args[0])
		if err != nil {
			return err
		}
		return runGraph(cmd.OutOrStdout(), gf.Graph, alg, frontier, step)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	addRunFlags(graphCmd)
	graphCmd.Flags().Int("step", -1, "Overlay the given step index (negative for none)")
}

func runGraph(w io.Writer, g domain.Graph, alg domain.Algorithm, frontier traversal.Frontier, step int) error {
	var overlay *graph.Overlay
	if step >= 0 {
		steps, err := automata.Generate(alg, g, traversal.WithFrontier(frontier))
		if err != nil {
			return err
		}
		if step >= len(steps) {
			return fmt.Errorf("step %d out of range (run has %d steps)", step, len(steps))
		}
		overlay = graph.OverlayFromStep(steps[step])
	}
	_, err := io.WriteString(w, graph.GenerateMermaid(g, overlay))
	return err
}
