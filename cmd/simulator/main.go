// Command simulator plays autopilot Commander games and manages the card
// catalog they are built from.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/magefree/commander-engine-go/internal/config"
)

var version = "dev" // set via ldflags during build

// app carries what every command needs once flags are parsed.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}
	var configPath string

	root := &cobra.Command{
		Use:           "simulator",
		Short:         "Play Commander games between autopilot agents",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(configPath)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to configuration file")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", "console", "log format: console or json")
	flags.String("catalog-driver", "builtin", "card store: builtin, sqlite or postgres")
	flags.String("catalog-dsn", "", "sqlite file or postgres connection string")
	bindFlags(a.v, flags.Lookup, map[string]string{
		"logging.level":  "log-level",
		"logging.format": "log-format",
		"catalog.driver": "catalog-driver",
		"catalog.dsn":    "catalog-dsn",
	})

	root.AddCommand(newRunCmd(a), newImportCmd(a), newCardsCmd(a))
	return root
}

func (a *app) init(configPath string) error {
	if configPath != "" {
		a.v.SetConfigFile(configPath)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
	}
	cfg, err := config.Decode(a.v)
	if err != nil {
		return err
	}
	logger, err := initLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cfg, a.logger = cfg, logger
	logger.Debug("configuration loaded",
		zap.String("version", version),
		zap.String("config", configPath),
		zap.String("catalog_driver", cfg.Catalog.Driver),
	)
	return nil
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
