package main

import "time"

type Config struct {
	SlackBotToken       string        `env:"SLACK_BOT_TOKEN,required=true" validate:"required,startswith=xoxb-"`
	SlackAppToken       string        `env:"SLACK_APP_TOKEN" validate:"omitempty,startswith=xapp-"`
	SlackSigningSecret  string        `env:"SLACK_SIGNING_SECRET" validate:"required_without=SlackAppToken"`
	TokenSigningKey     string        `env:"TOKEN_SIGNING_KEY"`
	CommandName         string        `env:"COMMAND_NAME,default=/np" validate:"startswith=/"`
	SlackRequestTimeout time.Duration `env:"SLACK_REQUEST_TIMEOUT,default=10s" validate:"gt=0"`
	ProfileCacheTTL     time.Duration `env:"PROFILE_CACHE_TTL,default=5m" validate:"gt=0"`
	ProfileCacheSize    int           `env:"PROFILE_CACHE_SIZE,default=10000" validate:"gt=0"`
	RestartInterval     time.Duration `env:"RESTART_INTERVAL,default=1s" validate:"gt=0"`
	LogLevel            string        `env:"LOG_LEVEL,default=INFO"`
	Host                string        `env:"HOST,default=0.0.0.0"`
	Port                int           `env:"PORT,default=3000" validate:"gte=0,lte=65535"`
}

// SocketMode reports whether events come over a websocket instead of HTTPS.
func (c Config) SocketMode() bool {
	return c.SlackAppToken != ""
}
