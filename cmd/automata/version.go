package main

import (
	"fmt"

	"github.com/aretw0/automata"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of automata",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "automata version %s\n", automata.VersionString())
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
