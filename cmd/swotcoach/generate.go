package main

import (
	"fmt"
	"time"

	"github.com/Abdudhi100/swot-coach/internal/config"
	"github.com/Abdudhi100/swot-coach/internal/db"
	"github.com/Abdudhi100/swot-coach/internal/recur"
	"github.com/Abdudhi100/swot-coach/internal/taskgen"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// connectFromConfig loads the config file and opens the database.
func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return cfg, gormDB, nil
}

func newGenerateCmd() *cobra.Command {
	var (
		configPath string
		dateStr    string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate tasks for a date (default: tomorrow)",
		Long: `Runs the batch generator over all active SWOT items for one date.
The run is idempotent: re-invoking it for the same date creates nothing new.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, configPath, dateStr)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "swotcoach.yaml", "path to config file")
	cmd.Flags().StringVar(&dateStr, "date", "", "target date YYYY-MM-DD (default: tomorrow)")
	return cmd
}

func runGenerate(cmd *cobra.Command, configPath, dateStr string) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	target := recur.Today(loc).AddDate(0, 0, 1)
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", dateStr)
		}
		target = recur.DateOnly(parsed)
	}

	report, err := taskgen.ForDate(gormDB, target)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generated %d tasks for %s\n", report.Created, target.Format("2006-01-02"))
	for _, f := range report.Failures {
		fmt.Fprintf(out, "  item %d skipped: %v\n", f.ItemID, f.Err)
	}
	return nil
}
