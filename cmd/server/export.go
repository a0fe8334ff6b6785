package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/artem13815/hr-trainer/pkg/config"
	"github.com/artem13815/hr-trainer/pkg/interview"
	"github.com/artem13815/hr-trainer/pkg/logger"
	"github.com/artem13815/hr-trainer/pkg/report"
	pgrepo "github.com/artem13815/hr-trainer/pkg/repository/postgres"
	"github.com/artem13815/hr-trainer/pkg/storage/postgres"
)

var (
	exportOut      string
	exportTemplate bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the HR dashboard (or the prompt template) to an XLSX file",
	Example: `  hr-trainer export --out dashboard.xlsx
  hr-trainer export --template --out prompts.xlsx`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "dashboard.xlsx", "Output file")
	exportCmd.Flags().BoolVar(&exportTemplate, "template", false, "Write the empty training prompt template instead")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", exportOut, err)
	}
	defer f.Close()

	if exportTemplate {
		return report.WritePromptTemplate(f)
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	pool, err := postgres.Connect(ctx, cfg.DatabaseURL, 2)
	if err != nil {
		return err
	}
	defer pool.Close()

	items, err := interview.NewReporting(pgrepo.NewInterviewRepository(pool), cfg.StaleAfter).Dashboard(ctx)
	if err != nil {
		return err
	}
	if err := report.WriteDashboard(f, items, time.Now()); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"file": exportOut, "rows": len(items)}).Info("dashboard exported")
	return nil
}
