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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sagarc03/statiq"
	"github.com/sagarc03/statiq/config"
	"github.com/sagarc03/statiq/database"
	"github.com/sagarc03/statiq/filesystem"
	statiqhttp "github.com/sagarc03/statiq/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the statiq file server.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 5709, "HTTP server port")
	serveCmd.Flags().StringSlice("root", nil, "search root (repeatable, ordered)")
	serveCmd.Flags().Int("expires", 0, "Cache-Control max-age in seconds")
	serveCmd.Flags().Bool("debug", false, "log resolution decisions")

	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("static.include_path", serveCmd.Flags().Lookup("root"))
	_ = viper.BindPFlag("static.expires", serveCmd.Flags().Lookup("expires"))
	_ = viper.BindPFlag("static.debug", serveCmd.Flags().Lookup("debug"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.Load(configFiles(cmd), cmd.Flags())
	if err != nil {
		return err
	}

	var provider statiq.RootProvider
	if cfg.Database.Enabled() {
		store, closeDB, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer closeDB()
		provider = store
		slog.Info("docroot database connected", "type", cfg.Database.Type)
	}

	files := filesystem.NewServer(cfg.Static.Expires)
	types := statiq.NewMIMEResolver(cfg.Static.MimeTypes)

	resolver, err := statiq.NewResolver(cfg.Static.Rules(provider), files, types, slog.Default())
	if err != nil {
		return fmt.Errorf("create resolver: %w", err)
	}

	handlerConfig := statiqhttp.HandlerConfig{
		Logging: cfg.Server.Logging,
		CORS:    cfg.CORS,
	}

	handler := statiqhttp.NewHandler(&handlerConfig, resolver)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server", "addr", addr, "roots", cfg.Static.IncludePath)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
