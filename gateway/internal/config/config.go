package config

import (
	"log"
	"os"
	"strconv"

	"github.com/Yahya-git/To-Do-List-MS/pkg/config"
)

type Config struct {
	Server                   config.ServerConfig `yaml:"server"`
	JWT                      config.JWTConfig    `yaml:"jwt"`
	UsersServiceURL          string              `yaml:"users_service_url"`
	TasksServiceURL          string              `yaml:"tasks_service_url"`
	HTTPClientTimeoutSeconds int                 `yaml:"http_client_timeout_seconds"`
}

func Load() *Config {
	var cfg Config
	if err := config.LoadYAML("config.yaml", &cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	config.OverrideServerFromEnv(&cfg.Server)
	config.OverrideJWTFromEnv(&cfg.JWT)
	if url := os.Getenv("USERS_SERVICE_URL"); url != "" {
		cfg.UsersServiceURL = url
	}
	if url := os.Getenv("TASKS_SERVICE_URL"); url != "" {
		cfg.TasksServiceURL = url
	}
	if v := os.Getenv("HTTP_CLIENT_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HTTPClientTimeoutSeconds = n
		}
	}

	if cfg.HTTPClientTimeoutSeconds == 0 {
		cfg.HTTPClientTimeoutSeconds = 30
	}
	return &cfg
}
