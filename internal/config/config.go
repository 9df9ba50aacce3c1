package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr         string        `yaml:"addr"`
	APITimeout   time.Duration `yaml:"timeout"`
	DatabasePath string        `yaml:"database_path"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:         getEnv("FALLWATCH_ADDR", ":8080"),
		APITimeout:   15 * time.Second,
		DatabasePath: getEnv("FALLWATCH_DATABASE_PATH", "fallwatch.db"),
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
