// Package main is the entry point for mailblast, a personalized bulk-email
// sender. It runs either a browser UI (-serve) or a headless pass described
// by a campaign file (-campaign).
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/mailblast/internal/cli"
	"github.com/dmitrymomot/mailblast/internal/config"
	"github.com/dmitrymomot/mailblast/internal/webui"
	"github.com/dmitrymomot/mailblast/pkg/logger"
)

func main() {
	serve := flag.Bool("serve", false, "start the web UI")
	campaignPath := flag.String("campaign", "", "path to a campaign YAML file for a headless run")
	dryRun := flag.Bool("dry-run", false, "print messages to stdout instead of sending")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *dryRun {
		cfg.Provider = config.ProviderStdout
	}

	log := logger.NewWithSentry(cfg.Sentry).With(slog.String("app", "mailblast"))

	switch {
	case *serve:
		srv := webui.New(log, cfg, config.NewTransport)
		if err := srv.Run(context.Background(), cfg.HTTPAddr, cfg.ShutdownTimeout); err != nil {
			log.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}

	case *campaignPath != "":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c, err := cli.LoadCampaign(*campaignPath)
		if err != nil {
			log.Error("failed to load campaign", slog.String("error", err.Error()))
			os.Exit(1)
		}

		transport, err := config.NewTransport(cfg)
		if err != nil {
			log.Error("failed to build transport", slog.String("error", err.Error()))
			os.Exit(1)
		}

		if err := cli.Run(ctx, log, transport, c); err != nil {
			log.Error("pass failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

	default:
		flag.Usage()
		os.Exit(2)
	}
}
