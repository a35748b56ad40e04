package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/beauty-advisor/internal/selection"
)

var (
	catalogCategory string
	catalogSearch   string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the products a shopper would see for a filter",
	Long: `Applies the same category and search filter as the web page and prints the
matching products. With no flags it lists the categories.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer logger.Sync()

		cat, err := loadCatalog(cfg, logger)
		if err != nil {
			return err
		}

		engine, err := selection.New(cat, nil, selection.Options{
			SearchOverridesCategory: cfg.Features.SearchOverridesCategory,
		})
		if err != nil {
			logger.Warn("creating filter", zap.Error(err))
		}

		if catalogCategory == "" && catalogSearch == "" {
			for _, c := range engine.Categories() {
				fmt.Println(c)
			}
			return nil
		}

		engine.SetCategory(catalogCategory)
		engine.SetSearchText(catalogSearch)

		visible := engine.Visible()
		if len(visible) == 0 {
			fmt.Println(engine.Message())
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tBRAND\tCATEGORY")
		for _, item := range visible {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.ID, item.Name, item.Brand, item.Category)
		}
		return w.Flush()
	},
}

func init() {
	catalogCmd.Flags().StringVar(&catalogCategory, "category", "", "category to show (default all)")
	catalogCmd.Flags().StringVar(&catalogSearch, "search", "", "search text")
	rootCmd.AddCommand(catalogCmd)
}
