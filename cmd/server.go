package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/beauty-advisor/internal/advisor"
	"github.com/ziadkadry99/beauty-advisor/internal/dashboard"
	"github.com/ziadkadry99/beauty-advisor/internal/db"
	"github.com/ziadkadry99/beauty-advisor/internal/logging"
	"github.com/ziadkadry99/beauty-advisor/internal/prefs"
	"github.com/ziadkadry99/beauty-advisor/internal/server"
	"github.com/ziadkadry99/beauty-advisor/internal/transcript"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the advisor web server",
	Long:  `Starts the advisor HTTP server with the product picker, chat, routine builder and JSON API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer logger.Sync()

		// Create LLM provider.
		llmProvider, err := createLLMProviderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}

		// Open database.
		database, err := db.Open(cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		// A missing or broken catalog leaves the page up with an error
		// in the product grid; chat still works.
		cat, catErr := loadCatalog(cfg, logger)
		if catErr != nil {
			logger.Error("catalog unavailable", zap.String("path", cfg.CatalogPath), zap.Error(catErr))
		}

		ttl, err := cfg.SessionTTLDuration()
		if err != nil {
			return err
		}

		archive := transcript.NewStore(database)
		registry := advisor.NewRegistry(advisor.RegistryConfig{
			Catalog:      cat,
			Selection:    selectionOptions(cfg),
			SystemPrompt: cfg.SystemPrompt,
			Verbosity:    verbosity(cfg),
			TTL:          ttl,
			Prefs:        prefs.NewStore(database),
			Archive:      archive,
			Logger:       logging.Module(logger, "sessions"),
		})
		svcCfg := serviceConfig(cfg, llmProvider, logger)
		svcCfg.Archive = archive
		service := advisor.NewService(svcCfg)

		// Create and start server.
		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAllOrigins,
		}, database, logging.Module(logger, "http"))

		dash := dashboard.New(dashboard.Config{
			Catalog:    cat,
			CatalogErr: catErr,
			Registry:   registry,
			Service:    service,
			Archive:    archive,
			Logger:     logging.Module(logger, "dashboard"),

			SecureCookie: cfg.Server.SecureCookie,
		})
		dash.RegisterRoutes(srv.Router())

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("shutdown", zap.Error(err))
			}
		}()

		logger.Info("advisor server starting",
			zap.String("version", Version),
			zap.Int("port", cfg.Server.Port),
			zap.String("provider", llmProvider.Name()),
			zap.String("database", database.Path()),
		)

		return srv.Start()
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serverCmd)
}
