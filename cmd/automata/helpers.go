package main

import (
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/traversal"
	"github.com/spf13/cobra"
)

// addRunFlags registers the flags shared by commands that run an algorithm.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("algorithm", "a", string(domain.AlgorithmAccessible), "Algorithm: accessible or co-accessible")
	cmd.Flags().String("frontier", "", "Frontier discipline: lifo or fifo (default from config)")
}

// runOptions reads the algorithm and frontier flags.
func runOptions(cmd *cobra.Command) (domain.Algorithm, traversal.Frontier, error) {
	name, _ := cmd.Flags().GetString("algorithm")
	alg, err := domain.ParseAlgorithm(name)
	if err != nil {
		return "", "", err
	}

	frontierName, _ := cmd.Flags().GetString("frontier")
	if frontierName == "" {
		frontierName = cfg.Frontier
	}
	frontier, err := traversal.ParseFrontier(frontierName)
	if err != nil {
		return "", "", err
	}
	return alg, frontier, nil
}

func loadGraph(path string) (config.GraphFile, error) {
	gf, err := config.LoadGraph(path)
	if err != nil {
		return gf, err
	}
	logger.Debug("graph loaded", "path", path, "states", len(gf.Graph.Nodes), "transitions", len(gf.Graph.Edges))
	return gf, nil
}
