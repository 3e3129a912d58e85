package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aryarajalves/zapflow"
	"github.com/aryarajalves/zapflow/internal/config"
	"github.com/aryarajalves/zapflow/internal/logging"
	"github.com/aryarajalves/zapflow/pkg/adapters/httpapi"
	"github.com/aryarajalves/zapflow/pkg/adapters/memory"
	redisStore "github.com/aryarajalves/zapflow/pkg/adapters/redis"
	"github.com/aryarajalves/zapflow/pkg/adapters/static"
	"github.com/aryarajalves/zapflow/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the zapflow engine in server mode, exposing the funnel builder API and the webhook ingestion endpoint.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		port, _ := cmd.Flags().GetString("port")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if port != "" {
			cfg.Listen = ":" + port
		}

		logger := logging.New(parseLevel(cfg.LogLevel))

		var funnels ports.FunnelStore
		var mappings ports.MappingStore
		switch cfg.Store {
		case "redis":
			store := redisStore.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB,
				redisStore.WithPrefix(cfg.Redis.Prefix))
			defer store.Close()
			funnels, mappings = store, store
		default:
			store := memory.NewStore()
			funnels, mappings = store, store
		}

		service := zapflow.New(
			zapflow.WithStores(funnels, mappings),
			zapflow.WithBlobStore(memory.NewBlobStore()),
			zapflow.WithCatalog(static.NewCatalog(nil)),
			zapflow.WithLogger(logger),
		)

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		handler := httpapi.NewHandler(service, reg, logger)

		srv := &http.Server{
			Addr:    cfg.Listen,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Zapflow Server on %s (store: %s)\n", srv.Addr, cfg.Store)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Zapflow Server stopped gracefully")
		}
	},
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (overrides config)")
}
