package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/beauty-advisor/internal/advisor"
	"github.com/ziadkadry99/beauty-advisor/internal/catalog"
	"github.com/ziadkadry99/beauty-advisor/internal/selection"
)

var (
	routineIDs  string
	routineHTML bool
)

var routineCmd = &cobra.Command{
	Use:   "routine",
	Short: "Generate a beauty routine for a set of products",
	Long:  `Selects the given product ids and asks the model for a step-by-step routine, printing the raw text (or HTML with --html).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := parseIDs(routineIDs)
		if len(ids) == 0 {
			return fmt.Errorf("--ids is required")
		}

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
		provider, err := createLLMProviderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}

		reply, err := runRoutine(cmd.Context(), advisor.NewService(serviceConfig(cfg, provider, logger)), ids, advisor.RegistryConfig{
			Catalog:      cat,
			Selection:    selection.Options{SearchOverridesCategory: cfg.Features.SearchOverridesCategory},
			SystemPrompt: cfg.SystemPrompt,
			Verbosity:    verbosity(cfg),
			Logger:       logger,
		})
		if err != nil {
			return err
		}

		if routineHTML {
			fmt.Fprintln(cmd.OutOrStdout(), reply.HTML)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), reply.Content)
		}
		if reply.Fallback {
			return fmt.Errorf("routine generation failed (%s)", reply.ErrorKind)
		}
		return nil
	},
}

// runRoutine selects ids in a fresh session and generates the routine.
func runRoutine(ctx context.Context, service *advisor.Service, ids []catalog.ID, regCfg advisor.RegistryConfig) (advisor.Reply, error) {
	sess, err := advisor.NewRegistry(regCfg).GetOrCreate(ctx, "")
	if err != nil {
		return advisor.Reply{}, err
	}
	for _, id := range ids {
		if _, ok := regCfg.Catalog.Get(id); !ok {
			return advisor.Reply{}, fmt.Errorf("unknown product id %q", id)
		}
		if _, err := sess.Select(id); err != nil {
			return advisor.Reply{}, err
		}
	}
	return service.GenerateRoutine(ctx, sess)
}

func init() {
	routineCmd.Flags().StringVar(&routineIDs, "ids", "", "comma-separated product ids, in routine order")
	routineCmd.Flags().BoolVar(&routineHTML, "html", false, "print the formatted HTML instead of the raw text")
	rootCmd.AddCommand(routineCmd)
}
