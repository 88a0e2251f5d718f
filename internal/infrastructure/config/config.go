package config

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3978"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// AppID and AppPassword identify this bot to the token service; the
	// channel service signs inbound requests with JWTSecret.
	AppID       string `env:"APP_ID"`
	AppPassword string `env:"APP_PASSWORD"`
	JWTSecret   string `env:"JWT_SECRET"`

	// CardsDir holds the adaptive card JSON templates.
	CardsDir string `env:"CARDS_DIR, default=cards"`

	// ChannelServiceURL is where outbound activities are posted.
	ChannelServiceURL string `env:"CHANNEL_SERVICE_URL, default=http://localhost:4001"`

	// WelcomeChannels are the front-end channels that get the greeting on
	// member join.
	WelcomeChannels []string `env:"WELCOME_CHANNELS, delimiter=;, default=directline;webchat"`

	// OrderFlowEnabled selects the full ordering bot; when false the bot
	// runs the minimal card-demo variant.
	OrderFlowEnabled bool `env:"ORDER_FLOW_ENABLED, default=true"`

	Token TokenConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type TokenConfig struct {
	ServiceURL        string `env:"TOKEN_SERVICE_URL, default=http://localhost:4000"`
	NominalConnection string `env:"NOMINAL_CONNECTION_NAME, default=NonSSOBotApp"`
	SSOConnection     string `env:"SSO_CONNECTION_NAME, default=BotApp"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=lunchbot"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger zerolog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Error().Err(err).Msg("failed to load configuration")
		panic(err)
	}
	return &cfg
}
