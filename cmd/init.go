package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/beauty-advisor/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize advisor configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the advisor and writes the config file (default .advisor.yml).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
