// Command mapfsolve runs the MAPF solver against a scenario file.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "mapfsolve",
	Version:       "dev",
	Short:         "Multi-agent pathfinding solver",
	Long:          `mapfsolve finds time-indexed, collision-free paths for multiple agents on a shared grid.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(generateConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}
