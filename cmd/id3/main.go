package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pbanos/id3/internal/config"
	"github.com/pbanos/id3/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootCmdConfig struct {
	verbose    bool
	configPath string
	logLevel   string
	logFormat  string
	redisAddr  string
	config     config.Config
	logger     *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cliParser().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootConfig := &rootCmdConfig{config: config.Default(), logger: zap.NewNop()}
	rootCmd := &cobra.Command{
		Use:           "id3",
		Short:         "id3 is a tool to grow decision trees over categorical data",
		Long:          `A tool to grow decision trees from categorical data with the ID3 algorithm, test them, and use them to make predictions`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rootConfig.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = rootConfig.logger.Sync()
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&(rootConfig.verbose), "verbose", "v", false, "log debug information, including every split decision")
	flags.StringVar(&(rootConfig.configPath), "config", "", "path to a YAML configuration file")
	flags.StringVar(&(rootConfig.logLevel), "log-level", "", "log level: debug, info, warn or error (overrides the configuration file)")
	flags.StringVar(&(rootConfig.logFormat), "log-format", "", "log format: console or json (overrides the configuration file)")
	flags.StringVar(&(rootConfig.redisAddr), "redis-addr", "", "address of the Redis server trees are saved to and loaded from (overrides the configuration file)")
	rootCmd.AddCommand(
		versionCmd(),
		growCmd(rootConfig),
		testCmd(rootConfig),
		predictCmd(rootConfig),
		sweepCmd(rootConfig),
		splitCmd(rootConfig),
		treeCmd(rootConfig),
	)
	return rootCmd
}

func (rcc *rootCmdConfig) setup() error {
	cfg := config.Default()
	if rcc.configPath != "" {
		var err error
		cfg, err = config.Load(rcc.configPath)
		if err != nil {
			return err
		}
	}
	if rcc.logLevel != "" {
		cfg.Logging.Level = rcc.logLevel
	}
	if rcc.logFormat != "" {
		cfg.Logging.Format = rcc.logFormat
	}
	if rcc.verbose {
		cfg.Logging.Level = "debug"
	}
	if rcc.redisAddr != "" {
		cfg.Redis.Addr = rcc.redisAddr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	l, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	rcc.config = cfg
	rcc.logger = l
	return nil
}
