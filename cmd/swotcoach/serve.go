package main

import (
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/Abdudhi100/swot-coach/internal/config"
	"github.com/Abdudhi100/swot-coach/internal/db"
	"github.com/Abdudhi100/swot-coach/internal/notify"
	"github.com/Abdudhi100/swot-coach/internal/sched"
	"github.com/Abdudhi100/swot-coach/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the API server and nightly generation scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "swotcoach.yaml", "path to config file")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	fanout, err := buildNotifiers(cfg)
	if err != nil {
		return err
	}
	defer fanout.Close()

	scheduler := sched.New(loc)
	if _, err := scheduler.ScheduleDaily(cfg.Schedule.GenerateAt, sched.GenerationJob(gormDB, loc, fanout)); err != nil {
		return fmt.Errorf("schedule nightly generation: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()
	log.Printf("nightly generation scheduled at %s", cfg.Schedule.GenerateAt)

	return server.Start(ctx, server.StartOpts{
		DB:   gormDB,
		Port: cfg.HTTP.Port,
		Loc:  loc,
		Out:  cmd.OutOrStdout(),
	})
}

// buildNotifiers assembles the configured digest adapters. Unset tokens
// simply leave a platform out.
func buildNotifiers(cfg *config.Config) (*notify.Fanout, error) {
	var adapters []notify.Adapter

	if cfg.Notify.Slack.Token != "" {
		adapters = append(adapters, notify.NewSlack(cfg.Notify.Slack.Token, cfg.Notify.Slack.Channel))
	}
	if cfg.Notify.Discord.Token != "" {
		discord, err := notify.NewDiscord(cfg.Notify.Discord.Token, cfg.Notify.Discord.Channel)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, discord)
	}

	return notify.NewFanout(adapters...), nil
}
