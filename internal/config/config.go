package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type JWTConfig struct {
	Secret           string `yaml:"secret"`
	AccessTTLMinutes int    `yaml:"access_ttl_minutes"`
}

type DeadlinesConfig struct {
	CheckIntervalMinutes int `yaml:"check_interval_minutes"`
}

type Config struct {
	App struct {
		Env string `yaml:"env"` // local | test | prod
	} `yaml:"app"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Deadlines DeadlinesConfig `yaml:"deadlines"`
}

func LoadConfig() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	f, err := os.Open(path)
	if err != nil {
		panic("Failed to open " + path + ": " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse " + path + ": " + err.Error())
	}

	if cfg.App.Env == "" {
		cfg.App.Env = "local"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.JWT.AccessTTLMinutes == 0 {
		cfg.JWT.AccessTTLMinutes = 60
	}
	if cfg.Deadlines.CheckIntervalMinutes == 0 {
		cfg.Deadlines.CheckIntervalMinutes = 15
	}
	return &cfg
}
