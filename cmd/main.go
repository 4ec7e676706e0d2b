package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"noping/contract"
	"noping/infrastructure/platform"
	"noping/infrastructure/webhook"
	"noping/mention"
	"noping/ownership"
	"noping/runtime/workers"
	"noping/services"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires the relay and blocks until SIGINT or SIGTERM.
// Returning instead of exiting lets the deferred cleanups run.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Slack client
	options := []slack.Option{}
	if config.SocketMode() {
		options = append(options, slack.OptionAppLevelToken(config.SlackAppToken))
	}
	api := slack.New(config.SlackBotToken, options...)
	client := platform.NewClient(api, log)

	resolver, err := platform.NewCachedResolver(client, config.ProfileCacheTTL, int64(config.ProfileCacheSize), log)
	if err != nil {
		return err
	}
	defer resolver.Close()

	// 3. Ownership tokens
	key, err := signingKey(config)
	if err != nil {
		return err
	}
	if config.TokenSigningKey == "" && config.SlackSigningSecret == "" {
		log.Warn("Neither TOKEN_SIGNING_KEY nor SLACK_SIGNING_SECRET is set, open modals will not survive a restart")
	}
	issuer := ownership.NewIssuer(key)

	// 4. Relay service & transport
	service := services.NewRelayService(client, resolver, mention.NewRedactor(resolver, log), issuer, log)
	handler := platform.NewHandler(service, client, config.CommandName, log)

	var transport contract.Worker
	if config.SocketMode() {
		transport = platform.NewSocketWorker(socketmode.New(api), handler, config.SlackRequestTimeout, log)
		log.Info("Using Socket Mode", "command", config.CommandName)
	} else {
		if log.Enabled(context.Background(), slog.LevelDebug) {
			gin.SetMode(gin.DebugMode)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}
		transport = webhook.NewServer(config.Host, config.Port, config.SlackSigningSecret, handler, config.SlackRequestTimeout, log)
		log.Info("Using the HTTP request URL", "host", config.Host, "port", config.Port, "command", config.CommandName)
	}

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Supervision, blocks until the context is canceled
	workers.NewSupervisor(log, config.RestartInterval).Add(transport).Run(ctx)
	log.Info("Program stopped cleanly")

	return nil
}

// signingKey prefers the configured key, then one derived from the Slack
// signing secret, then a random one.
func signingKey(config Config) ([]byte, error) {
	switch {
	case config.TokenSigningKey != "":
		return []byte(config.TokenSigningKey), nil
	case config.SlackSigningSecret != "":
		return ownership.DeriveKey([]byte(config.SlackSigningSecret))
	default:
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("signing key generation failed: %w", err)
		}
		return key, nil
	}
}
