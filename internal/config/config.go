package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken   string        `envconfig:"BOT_TOKEN" required:"true"`
	DBPath     string        `envconfig:"DB_PATH" default:"./data/scheduler.db"`
	PrayerURL  string        `envconfig:"PRAYER_URL" default:"https://namozvaqti.uz/oylik/12/toshkent"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"30m"` // abandoned dialog expiry
	LogLevel   string        `envconfig:"LOG_LEVEL" default:"info"`  // debug|info|warn|error
	HTTPAddr   string        `envconfig:"HTTP_ADDR" default:":8080"` // healthz
}

// Load reads environment variables into Config.
// A .env file in the working directory is applied first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
