package main

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/sector-sift/internal/service"
	"github.com/Veraticus/sector-sift/internal/web"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the classification form and JSON API",
		Long: `Start the HTTP server.

The keyword classifier is always available. The LLM classifier is added when
an API key is configured. Run history is kept in the database unless
--no-storage is set.

Endpoints:
  GET  /                   classification form
  POST /api/v1/classify    classify one company
  POST /api/v1/batch       classify an uploaded CSV or XLSX file
  GET  /api/v1/runs        saved batch runs
  GET  /metrics            Prometheus metrics`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", ":8080", "Listen address")
	cmd.Flags().String("default-method", methodKeyword, "Method used when a request names none")
	cmd.Flags().Bool("no-storage", false, "Run without the database")
	cmd.Flags().Bool("debug", false, "Enable gin debug mode")

	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.default_method", cmd.Flags().Lookup("default-method"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	noStorage, _ := cmd.Flags().GetBool("no-storage")
	debug, _ := cmd.Flags().GetBool("debug")

	rules, err := loadRules()
	if err != nil {
		return err
	}
	engine, err := newKeywordEngine(rules)
	if err != nil {
		return fmt.Errorf("failed to build keyword engine: %w", err)
	}
	classifiers := []service.Classifier{engine}

	if llmClassifier, llmErr := createLLMClassifier(nil); llmErr != nil {
		slog.Warn("LLM classifier disabled", "error", llmErr)
	} else {
		defer func() {
			if closeErr := llmClassifier.Close(); closeErr != nil {
				slog.Warn("Failed to close LLM classifier", "error", closeErr)
			}
		}()
		classifiers = append(classifiers, llmClassifier)
	}

	cfg := web.Config{
		Registry:      prometheus.NewRegistry(),
		Logger:        slog.Default(),
		DefaultMethod: viper.GetString("server.default_method"),
		Classifiers:   classifiers,
		Rules:         rules,
		Concurrency:   viper.GetInt("batch.concurrency"),
		Debug:         debug,
	}
	cfg.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if !noStorage {
		store, storeErr := initStorage(ctx)
		if storeErr != nil {
			return storeErr
		}
		defer closeStorage(store)
		cfg.Storage = store
	}

	server, err := web.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	addr := viper.GetString("server.addr")
	slog.Info("Starting server", "addr", addr, "methods", server.Methods(), "storage", cfg.Storage != nil)

	return server.ListenAndServe(ctx, addr)
}
