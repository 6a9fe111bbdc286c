package main

import (
	"github.com/spf13/cobra"
)

const app = "assessrec"

var rootCmd = &cobra.Command{
	Use:   app,
	Short: "assessrec recommends assessment tests for job descriptions and search queries",
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(versionCmd)
}
