package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"estoque/internal/config"
	"estoque/internal/infrastructure/logger"
	"estoque/internal/product"
	"estoque/internal/shell"
)

const configEnv = "ESTOQUE_CONFIG"

func newRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:           "estoque",
		Short:         "Interactive inventory manager for a single store",
		Long:          `estoque keeps the product catalog of a store in a JSON file and lets the operator add, list, update, delete and sell products, and export a CSV report, from a numbered menu.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, in, out)
		},
	}
}

func run(cmd *cobra.Command, in io.Reader, out io.Writer) error {
	cfg, err := config.Load(lookupConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("session started",
		zap.String("dataFile", cfg.Catalog.DataFile),
		zap.String("reportFile", cfg.Catalog.ReportFile),
		zap.Strings("categories", cfg.Catalog.Categories),
	)

	var sh *shell.Shell
	catalog := product.NewModule(afero.NewOsFs(), cfg.Catalog, zapLogger, func(path string, cause error) {
		sh.ReportCorruption(path, cause)
	})
	sh = shell.New(catalog, in, out, zapLogger)

	return sh.Run(cmd.Context())
}

// lookupConfigPath returns the optional YAML config file named by
// ESTOQUE_CONFIG. The command itself takes no flags.
func lookupConfigPath() string {
	return os.Getenv(configEnv)
}
