package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"pngbytes/pkg/batch"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert every PNG in the source directory",
		Long: `Convert lists the source directory, decodes each .png file, and writes
its pixels to <dst>/<name>.bytes, replacing any existing file. Neither
directory is created. The first failure stops the batch unless --keep-going
is set; files converted before it are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(viper.New(), cmd.Flags())
			if err != nil {
				return err
			}
			return runConvert(cmd, cfg)
		},
	}

	bindConvertFlags(cmd.Flags())
	return cmd
}

func runConvert(cmd *cobra.Command, cfg *Config) error {
	var logger *zap.Logger
	var conv *batch.Converter

	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		fx.Provide(newLogger, newConverter),
		fx.Populate(&logger, &conv),
	)
	if err := app.Err(); err != nil {
		return err
	}

	defer func() {
		_ = logger.Sync()
	}()

	_, err := conv.Run(cmd.Context())
	return err
}

func newConverter(cfg *Config, logger *zap.Logger) (*batch.Converter, error) {
	var opts []batch.Option
	if cfg.KeepGoing {
		opts = append(opts, batch.WithContinueOnError())
	}
	if cfg.Atomic {
		opts = append(opts, batch.WithAtomicWrite())
	}
	if cfg.Progress {
		opts = append(opts, batch.WithProgress(os.Stderr))
	}
	if cfg.Manifest != "" {
		opts = append(opts, batch.WithManifest(cfg.Manifest))
	}

	logger.With(zap.String("src", cfg.Src), zap.String("dst", cfg.Dst)).Debug("config")
	return batch.New(cfg.Src, cfg.Dst, logger, opts...)
}
