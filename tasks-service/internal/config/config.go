package config

import (
	"log"
	"os"
	"strconv"

	"github.com/Yahya-git/To-Do-List-MS/pkg/config"
)

type Config struct {
	DB                       config.DBConfig     `yaml:"db"`
	Redis                    config.RedisConfig  `yaml:"redis"`
	Server                   config.ServerConfig `yaml:"server"`
	MQ                       config.MQConfig     `yaml:"mq"`
	UsersServiceURL          string              `yaml:"users_service_url"`
	CacheExpirySeconds       int                 `yaml:"cache_expiry_seconds"`
	MaxTasks                 int                 `yaml:"max_tasks"`
	HTTPClientTimeoutSeconds int                 `yaml:"http_client_timeout_seconds"`
}

func Load() *Config {
	var cfg Config
	if err := config.LoadYAML("config.yaml", &cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	config.OverrideDBFromEnv(&cfg.DB)
	config.OverrideRedisFromEnv(&cfg.Redis)
	config.OverrideServerFromEnv(&cfg.Server)
	config.OverrideMQFromEnv(&cfg.MQ)
	if url := os.Getenv("USERS_SERVICE_URL"); url != "" {
		cfg.UsersServiceURL = url
	}
	if v := os.Getenv("CACHE_EXPIRY_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CacheExpirySeconds = n
		}
	}
	if v := os.Getenv("MAX_TASKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxTasks = n
		}
	}

	if cfg.CacheExpirySeconds == 0 {
		cfg.CacheExpirySeconds = 60
	}
	if cfg.MaxTasks == 0 {
		cfg.MaxTasks = 50
	}
	if cfg.HTTPClientTimeoutSeconds == 0 {
		cfg.HTTPClientTimeoutSeconds = 10
	}
	return &cfg
}
