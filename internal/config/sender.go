package config

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// SenderConfig configures the email_sender binary, which only needs the
// queue and an SMTP account.
type SenderConfig struct {
	Env       string `yaml:"env" env:"ENV" env-default:"local"`
	QueueName string `yaml:"queue_name" env-required:"true"`
	URL       string `yaml:"rabbitmq_url" env:"RABBITMQ_URL" env-required:"true"`
	Email     SMTP   `yaml:"smtp"`
}

type SMTP struct {
	Host     string `yaml:"host" env-required:"true"`
	Port     int    `yaml:"port" env-default:"587"`
	Username string `yaml:"username" env-required:"true"`
	Password string `yaml:"password" env:"SMTP_PASSWORD" env-required:"true"`
}

func MustLoadSender(configPath string) *SenderConfig {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("Config file does not exist: " + configPath)
	}

	var cfg SenderConfig

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("Failed to read config: " + err.Error())
	}

	return &cfg
}
