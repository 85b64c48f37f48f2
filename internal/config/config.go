package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	ClientURL  string `yaml:"client_url" env:"CLIENT_URL" env-required:"true"`
	Tokens     `yaml:"tokens"`
	Hasher     `yaml:"hasher"`
	RabbitMQ   `yaml:"rabbitmq"`
	Postgres   `yaml:"postgres"`
	HTTPServer `yaml:"http_server"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Postgres struct {
	Host     string `yaml:"host" env-default:"postgres"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-required:"true"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD" env-required:"true"`
	DBName   string `yaml:"dbname" env-required:"true"`
	SSLMode  string `yaml:"sslmode" env-default:"disable"`
}

type Tokens struct {
	ActivationTokenTTL    time.Duration `yaml:"activation_token_ttl" env-default:"5m"`
	ActivationTokenSecret string        `yaml:"activation_token_secret" env:"ACTIVATION_TOKEN_SECRET" env-required:"true"`
	AccessTokenTTL        time.Duration `yaml:"access_token_ttl" env-default:"15m"`
	AccessTokenSecret     string        `yaml:"access_token_secret" env:"ACCESS_TOKEN_SECRET" env-required:"true"`
	RefreshTokenTTL       time.Duration `yaml:"refresh_token_ttl" env-default:"168h"`
	RefreshTokenSecret    string        `yaml:"refresh_token_secret" env:"REFRESH_TOKEN_SECRET" env-required:"true"`
}

type Hasher struct {
	BcryptCost int `yaml:"bcrypt_cost" env-default:"12"`
}

type RabbitMQ struct {
	URL       string `yaml:"url" env:"RABBITMQ_URL" env-required:"true"`
	QueueName string `yaml:"queue_name" env-required:"true"`
}

func MustLoad(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("Config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("Failed to read config: " + err.Error())
	}

	return &cfg
}
