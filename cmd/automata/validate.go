package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/validator"
	"github.com/spf13/cobra"
)

var errInvalidGraph = errors.New("graph is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a graph file for structural problems",
	Long: `Reports duplicate ids, dangling transitions, a missing or repeated initial
state, labels outside the alphabet, and (as warnings) unreachable or dead states.
Exits non-zero when any error is found.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gf, err := loadGraph(args[0])
		if err != nil {
			return err
		}
		return runValidate(cmd.OutOrStdout(), gf)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(w io.Writer, gf config.GraphFile) error {
	report := validator.Validate(gf.Graph, gf.Alphabet)
	for _, p := range report.Problems {
		if p.Subject != "" {
			fmt.Fprintf(w, "%-7s %-18s %s: %s\n", p.Severity, p.Code, p.Subject, p.Message)
		} else {
			fmt.Fprintf(w, "%-7s %-18s %s\n", p.Severity, p.Code, p.Message)
		}
	}
	if !report.Valid {
		return fmt.Errorf("%w: %w", errInvalidGraph, report.Errors())
	}
	fmt.Fprintf(w, "✓ graph is valid (%d states, %d transitions)\n", len(gf.Graph.Nodes), len(gf.Graph.Edges))
	return nil
}
