package main

import (
	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/playback"
	"github.com/aretw0/automata/pkg/traversal"
	"github.com/spf13/cobra"
)

var pruneCmd = &cobra.Command{
	Use:   "prune FILE",
	Short: "Remove the states outside the algorithm's result",
	Long: `Runs the selected algorithm to completion and writes the graph restricted to
the resulting set P. With --trim, the accessible pass is followed by the
co-accessible pass so only useful states remain.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		alg, frontier, err := runOptions(cmd)
		if err != nil {
			return err
		}
		trim, _ := cmd.Flags().GetBool("trim")
		format, _ := cmd.Flags().GetString("format")
		gf, err := loadGraph(args[0])
		if err != nil {
			return err
		}

		algorithms := []domain.Algorithm{alg}
		if trim {
			algorithms = []domain.Algorithm{domain.AlgorithmAccessible, domain.AlgorithmCoAccessible}
		}
		pruned, err := runPrune(gf.Graph, algorithms, frontier)
		if err != nil {
			return err
		}
		gf.Graph = pruned
		return config.WriteGraph(cmd.OutOrStdout(), gf, format)
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)
	addRunFlags(pruneCmd)
	pruneCmd.Flags().Bool("trim", false, "Apply the accessible then the co-accessible pass")
	pruneCmd.Flags().StringP("format", "f", "yaml", "Output format: yaml or json")
}

// runPrune drives a Visualizer through each algorithm in turn, pruning after
// every completed run.
func runPrune(g domain.Graph, algorithms []domain.Algorithm, frontier traversal.Frontier) (domain.Graph, error) {
	v := automata.NewVisualizer(g,
		playback.WithTraversalOptions(traversal.WithFrontier(frontier)),
		playback.WithLogger(logger),
	)
	defer v.Close()

	for _, alg := range algorithms {
		if err := v.SetAlgorithm(alg); err != nil {
			return domain.Graph{}, err
		}
		for v.Player().Next() {
		}
		if err := v.Prune(); err != nil {
			return domain.Graph{}, err
		}
	}
	return v.Active(), nil
}
