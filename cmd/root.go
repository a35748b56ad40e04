package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/beauty-advisor/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Beauty product advisor with chat and routine generation",
	Long: `advisor serves a product picker over a beauty catalog, a chat with a
beauty advisor persona, and step-by-step routines built from the products
a shopper selects. The catalog is also exposed to AI agents over MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultFileName, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
