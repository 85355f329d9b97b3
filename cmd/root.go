package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/caryschwartzstein/edgar-parser/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "edgar-parser",
	Short: "Resolve canonical financial metrics from EDGAR filings",
	Long:  "Downloads SEC company facts, resolves canonical metrics through tiered tag waterfalls, de-cumulates quarterly figures and derives valuation ratios.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
