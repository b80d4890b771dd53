package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of upf2psp8",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "upf2psp8 %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
