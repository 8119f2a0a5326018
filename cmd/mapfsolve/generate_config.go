package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mapf-solver/internal/config"
)

var generateConfigPath string

var generateConfigCmd = &cobra.Command{
	Use:   "generate-config",
	Short: "Write a default solver config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(generateConfigPath); err == nil {
			return fmt.Errorf("config: %s already exists", generateConfigPath)
		}
		mgr, err := config.NewManager(generateConfigPath)
		if err != nil {
			return err
		}
		printSuccess(fmt.Sprintf("wrote config to %s", generateConfigPath))
		printLabelValue("default_algorithm", mgr.Get().DefaultAlgorithm)
		return nil
	},
}

func init() {
	generateConfigCmd.Flags().StringVar(&generateConfigPath, "out", "mapfsolve.yaml", "output path for the config file")
}
