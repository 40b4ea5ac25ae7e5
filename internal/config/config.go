package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	DBDSN        string `envconfig:"DB_DSN" default:"lofireads.db"`
	LogFile      string `envconfig:"LOG_FILE" default:"./lofireads.log"`
	StoreDelayMs int    `envconfig:"STORE_DELAY_MS" default:"0"` // simulated persistence latency
}

func Load() Config {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("[config] %v", err)
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s STORE_DELAY_MS=%d",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.StoreDelayMs)
	return cfg
}
