package main

import (
	"encoding/json"
	"io"

	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/pkg/editor"
	"github.com/aretw0/automata/pkg/traversal"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Print the formal automaton as JSON",
	Long: `Converts the drawn graph into the formal 5-tuple (alphabet, states, initial
state, final states, instructions). The alphabet comes from --alphabet, then
from the file, then from the edge labels. --reduce restricts the automaton to its
accessible, co-accessible or useful (trim) states.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		alphabet, _ := cmd.Flags().GetStringSlice("alphabet")
		reduceName, _ := cmd.Flags().GetString("reduce")
		reduction, err := traversal.ParseReduction(reduceName)
		if err != nil {
			return err
		}
		gf, err := loadGraph(args[0])
		if err != nil {
			return err
		}
		if len(alphabet) > 0 {
			gf.Alphabet = alphabet
		}
		return runExport(cmd.OutOrStdout(), gf, reduction)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringSlice("alphabet", nil, "Override the alphabet (comma separated)")
	exportCmd.Flags().String("reduce", "", "Restrict the automaton: accessible, co-accessible or trim")
}

func runExport(w io.Writer, gf config.GraphFile, reduction traversal.Reduction) error {
	a := traversal.Reduce(editor.Export(gf.Graph, gf.Alphabet), reduction)
	logger.Debug("automaton exported", "states", len(a.States()), "instructions", len(a.Instructions()))
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}
