package main

import (
	"github.com/kelseyhightower/envconfig"
)

// Config is read from LEDGERCTL_* variables. Flags override it.
type Config struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" default:"./data/badger"`
	// LEDGERCTL_COLOURS enables colorized verdicts and secrets
	Colours bool `envconfig:"COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("ledgerctl", &cfg)
	return cfg, err
}
