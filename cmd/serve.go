package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/samm-evaluation/echo-server/cmd/utils"
	"github.com/samm-evaluation/echo-server/internal/serve"
)

type serveCmd struct {
	gitCommit string
}

func (c *serveCmd) Command() *cobra.Command {
	cfg := serve.Configs{}

	var trackerDSN string
	var environment string
	cfgOpts := config.ConfigOptions{
		utils.PortOption(&cfg.Port),
		utils.AdminPortOption(&cfg.AdminPort),
		utils.ResponseBodyOption(&cfg.ResponseBody),
		utils.ContentTypeOption(&cfg.ContentType),
		utils.LogLevelOption(&cfg.LogLevel),
		utils.TrackerDSNOption(&trackerDSN),
		utils.EnvironmentOption(&environment),
	}
	cfgOpts = append(cfgOpts, utils.ConnectionTimeoutOptions(&cfg.Timeouts)...)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the echo server",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := utils.DefaultPersistentPreRunE(cfgOpts)(cmd, args); err != nil {
				return err
			}
			log.DefaultLogger.SetLevel(cfg.LogLevel)

			appTracker, err := utils.AppTrackerResolver(trackerDSN, environment, c.gitCommit)
			if err != nil {
				return fmt.Errorf("initializing App Tracker: %w", err)
			}
			cfg.AppTracker = appTracker
			cfg.Out = os.Stdout

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.Run(cmd.Context(), cfg)
		},
	}

	if err := cfgOpts.Init(cmd); err != nil {
		log.Fatalf("Error initializing a config option: %s", err.Error())
	}

	return cmd
}

func (c *serveCmd) Run(ctx context.Context, cfg serve.Configs) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer signal.Stop(signalChan)
	go func() {
		select {
		case sig := <-signalChan:
			log.Ctx(ctx).Infof("Received signal %s, shutting down", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	err := serve.Serve(ctx, cfg)
	if err != nil {
		return fmt.Errorf("running serve: %w", err)
	}
	return nil
}
