package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	TelegramBot TelegramBot
	Data        Data
	League      League
	Activity    Activity
	Admin       Admin
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	ChatID int64  `envconfig:"CHAT_ID" required:"true"`
}

type Data struct {
	Dir             string        `envconfig:"DATA_DIR" default:"data"`
	RefreshInterval time.Duration `envconfig:"DATA_REFRESH_INTERVAL" default:"30m"`
	Workers         int           `envconfig:"DATA_WORKERS" default:"4"`
}

type League struct {
	Timezone string `envconfig:"LEAGUE_TIMEZONE" default:"Australia/Melbourne"`
	Team     string `envconfig:"USER_TEAM" default:""`
	Club     string `envconfig:"USER_CLUB" default:""`
	AgeGroup string `envconfig:"USER_AGE_GROUP" default:""`
}

type Activity struct {
	Enabled bool   `envconfig:"ACTIVITY_ENABLED" default:"true"`
	DBPath  string `envconfig:"ACTIVITY_DB_PATH" default:"activity.db"`
}

type Admin struct {
	Port int `envconfig:"ADMIN_PORT" default:"8080"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
