package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pngbytes/pkg/batch"
)

// Config is the resolved convert configuration. Values come from flags,
// then PNGBYTES_* environment variables, then the config file, then defaults.
type Config struct {
	Src       string `mapstructure:"src"`
	Dst       string `mapstructure:"dst"`
	KeepGoing bool   `mapstructure:"keep-going"`
	Atomic    bool   `mapstructure:"atomic"`
	Progress  bool   `mapstructure:"progress"`
	Manifest  string `mapstructure:"manifest"`
	Debug     bool   `mapstructure:"debug"`
}

func bindConvertFlags(fs *pflag.FlagSet) {
	fs.String("src", batch.DefaultSource, "directory of PNG images to convert")
	fs.String("dst", batch.DefaultDestination, "directory to write .bytes files into")
	fs.Bool("keep-going", false, "convert remaining files after a failure")
	fs.Bool("atomic", false, "write outputs through a temporary file and rename")
	fs.Bool("progress", false, "draw a progress bar on stderr")
	fs.String("manifest", "", "write a YAML manifest with this name into dst")
}

func loadConfig(v *viper.Viper, flags *pflag.FlagSet) (*Config, error) {
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	v.SetEnvPrefix("PNGBYTES")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfgFile, _ := flags.GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pngbytes")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pngbytes"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config failed")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "parse config failed")
	}

	return &cfg, nil
}

func newLogger(cfg *Config) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.DisableStacktrace = true
	if !cfg.Debug {
		zc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return zc.Build()
}
