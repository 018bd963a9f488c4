package config

import (
	"log"
	"os"
	"strconv"

	"github.com/Yahya-git/To-Do-List-MS/pkg/config"
)

type Config struct {
	DB                      config.DBConfig     `yaml:"db"`
	Server                  config.ServerConfig `yaml:"server"`
	JWT                     config.JWTConfig    `yaml:"jwt"`
	MQ                      config.MQConfig     `yaml:"mq"`
	SMTP                    config.SMTPConfig   `yaml:"smtp"`
	GatewayURL              string              `yaml:"gateway_url"`
	TokenExpiryMinutes      int                 `yaml:"token_expiry_minutes"`
	TemporaryPasswordLength int                 `yaml:"temporary_password_length"`
}

func Load() *Config {
	var cfg Config
	if err := config.LoadYAML("config.yaml", &cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	config.OverrideDBFromEnv(&cfg.DB)
	config.OverrideServerFromEnv(&cfg.Server)
	config.OverrideJWTFromEnv(&cfg.JWT)
	config.OverrideMQFromEnv(&cfg.MQ)
	config.OverrideSMTPFromEnv(&cfg.SMTP)
	if url := os.Getenv("GATEWAY_URL"); url != "" {
		cfg.GatewayURL = url
	}
	if v := os.Getenv("TOKEN_EXPIRY_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TokenExpiryMinutes = n
		}
	}

	if cfg.TokenExpiryMinutes == 0 {
		cfg.TokenExpiryMinutes = 15
	}
	if cfg.TemporaryPasswordLength == 0 {
		cfg.TemporaryPasswordLength = 8
	}
	if cfg.JWT.ExpireTimeMinutes == 0 {
		cfg.JWT.ExpireTimeMinutes = 60
	}
	return &cfg
}
