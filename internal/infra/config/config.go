package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig описывает конфигурацию бота.
type AppConfig struct {
	AppEnv string `envconfig:"APP_ENV" default:"dev"`
	Port   int    `envconfig:"PORT" default:"3000"`

	Discord struct {
		Token            string        `envconfig:"DISCORD_BOT_TOKEN"`
		LogChannelID     string        `envconfig:"LOG_CHANNEL_ID" default:"1447027328600379392"`
		MessageCacheSize int           `envconfig:"MESSAGE_CACHE_SIZE" default:"500"`
		SendRPS          int           `envconfig:"SEND_RPS" default:"5"`
		SendMaxDelay     time.Duration `envconfig:"SEND_MAX_DELAY" default:"10s"`
	} `envconfig:""`

	Triggers struct {
		File     string        `envconfig:"TRIGGERS_FILE"`
		Cooldown time.Duration `envconfig:"TRIGGER_COOLDOWN" default:"5m"`
	} `envconfig:""`

	Relay struct {
		QueueSize int `envconfig:"EVENT_QUEUE_SIZE" default:"256"`
	} `envconfig:""`

	SelfPing struct {
		URL      string        `envconfig:"SELF_PING_URL"`
		Interval time.Duration `envconfig:"SELF_PING_INTERVAL" default:"270s"`
	} `envconfig:""`
}

// Load загружает .env (если есть) и конфиг из окружения.
func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("файл .env не найден, используем переменные окружения")
	}
	cfg, err := Process()
	if err != nil {
		log.Fatalf("не удалось загрузить конфиг: %v", err)
	}
	return cfg
}

// Process читает конфиг из окружения и проверяет его.
func Process() (AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AppConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate проверяет обязательные параметры.
func (c AppConfig) Validate() error {
	if strings.TrimSpace(c.Discord.Token) == "" {
		return errors.New("DISCORD_BOT_TOKEN не задан")
	}
	if c.Triggers.Cooldown <= 0 {
		return fmt.Errorf("TRIGGER_COOLDOWN должен быть положительным, получили %s", c.Triggers.Cooldown)
	}
	if c.SelfPing.URL != "" && c.SelfPing.Interval <= 0 {
		return fmt.Errorf("SELF_PING_INTERVAL должен быть положительным, получили %s", c.SelfPing.Interval)
	}
	return nil
}

// Addr возвращает адрес HTTP сервера.
func (c AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
