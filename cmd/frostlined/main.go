package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pkg.frost.gg/frostline"
	"pkg.frost.gg/frostline/internal/api"
	"pkg.frost.gg/frostline/internal/config"
)

type app struct {
	ctx    context.Context
	cancel context.CancelFunc

	logConf zap.Config
	logger  *zap.Logger

	config *config.Config

	client *frostline.Client
	api    *api.API
}

func newApp(ctx context.Context, lcf zap.Config, log *zap.Logger) (*app, error) {
	ctx, cancel := context.WithCancel(ctx)
	a := &app{ctx: ctx, cancel: cancel, logConf: lcf, logger: log}
	var err error

	log.Debug("Loading configuration.")
	a.config, err = config.Read()
	if err != nil {
		return nil, fmt.Errorf("couldn't load configuration: %w", err)
	}

	log.Debug("Successfully loaded configuration (also switching log level.)")
	lcf.Level.SetLevel(a.config.Logging.Level)

	log.Debug("Initializing client.")
	a.client, err = frostline.New(a.config.Discord.Auth,
		frostline.WithLogger(log),
		frostline.WithCacheBuilder(a.config.CacheBuilder()),
	)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize client: %w", err)
	}

	log.Debug("Initializing API struct.")
	a.api = api.NewAPI(ctx, log.Sugar(), a.client.Supplier(), api.NewConfig(a.config.Api.Port))

	return a, nil
}

// warmUp resolves the configured guilds once through the default supplier so
// the cache starts populated even before gateway events arrive.
func (a *app) warmUp() {
	for _, id := range a.config.Discord.Guilds {
		if _, err := a.client.Supplier().GetGuildOrNil(a.ctx, id); err != nil {
			a.logger.Sugar().Errorf("Failed to warm up guild %d: %s.", id, err)
		}
	}
}

func (a *app) Run() error {
	a.logger.Debug("Connecting to Discord API gateway.")
	if err := a.client.Connect(); err != nil {
		return fmt.Errorf("couldn't connect to Discord: %s", err)
	}
	defer func() {
		a.logger.Debug("Closing connection with Discord API gateway.")
		if err := a.client.Close(); err != nil {
			a.logger.Sugar().Errorf("Couldn't close client: %s.", err)
		}
		a.logger.Debug("Closed connection with Discord API gateway.")
	}()

	a.warmUp()

	a.logger.Debug("Starting API server.")
	a.api.Listen()
	defer func() {
		a.logger.Debug("Closing API server.")
		if err := a.api.Close(); err != nil {
			a.logger.Sugar().Errorf("Couldn't close API server: %s.", err)
		}
	}()

	a.logger.Info("Launch complete. Send SIGINT to gracefully terminate.")
	<-a.ctx.Done()
	a.logger.Info("SIGINT received, terminating.")

	return a.ctx.Err()
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancel()

	lcf := zap.NewDevelopmentConfig() // to later switch level without reallocation
	lcf.Level.SetLevel(zapcore.DebugLevel)
	lcf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	lcf.DisableCaller = true
	log, _ := lcf.Build()

	log.Info("Initializing application.")
	a, err := newApp(ctx, lcf, log)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Sugar().Fatalf("Couldn't initialize application: %s.", err)
		}

		return
	}

	log.Debug("Initialization tasks complete, continuing with launch.")
	if err := a.Run(); err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Sugar().Fatalf("Application crashed: %s.", err)
		}
	}
}
