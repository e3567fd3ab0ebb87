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

	"github.com/dgallion1/docnav/internal/api"
	"github.com/dgallion1/docnav/internal/config"
	"github.com/dgallion1/docnav/internal/fetch"
	"github.com/dgallion1/docnav/internal/page"
	"github.com/dgallion1/docnav/internal/render"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "docnav",
		Short:         "Serve a sectioned document with a live navigation outline",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "docnav.yaml", "path to YAML config file")
	root.AddCommand(outlineCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newCoordinator wires the configured source and renderer. The returned
// cleanup releases the source.
func newCoordinator(cfg config.Config, log *slog.Logger) (*page.Coordinator, func(), error) {
	rnd, err := render.New(cfg.Renderer, render.Options{CodeStyle: cfg.CodeStyle})
	if err != nil {
		return nil, nil, err
	}

	var src fetch.Source
	cleanup := func() {}
	if cfg.DocumentURL != "" {
		client := fetch.NewClient(cfg.DocumentURL, cfg.CacheBustParam, cfg.MaxDocumentBytes, cfg.FetchTimeout)
		src = client
		cleanup = client.Close
	} else {
		src = &fetch.File{Path: cfg.DocumentPath, MaxBytes: cfg.MaxDocumentBytes}
	}

	coord := page.NewCoordinator(src, rnd, page.Config{
		Separator: cfg.SectionSeparator,
		Nav:       cfg.Nav(),
	}, log)
	return coord, cleanup, nil
}

func serve() error {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	coord, cleanup, err := newCoordinator(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()
	coord.Start(ctx)

	srv := api.NewServer(coord, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.FetchTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		coord.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting docnav", "port", cfg.Port, "renderer", cfg.Renderer)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
