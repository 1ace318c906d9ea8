// Package config loads table and simulation settings from an HCL file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete coach configuration. Both blocks are
// optional; missing blocks and fields fall back to defaults.
type Config struct {
	Table      *TableConfig      `hcl:"table,block"`
	Simulation *SimulationConfig `hcl:"simulation,block"`
}

// TableConfig defines the blackjack table rules and bankroll
type TableConfig struct {
	Decks    int `hcl:"decks,optional"`
	Bankroll int `hcl:"bankroll,optional"`
	BetMin   int `hcl:"bet_min,optional"`
	BetStep  int `hcl:"bet_step,optional"`
}

// SimulationConfig tunes the Monte Carlo outcome estimator
type SimulationConfig struct {
	Trials int `hcl:"trials,optional"`
}

// Default returns the default configuration: a six-deck shoe, a 1000
// credit bankroll with 100 credit bets, and 1000 trials per estimate.
func Default() *Config {
	return &Config{
		Table: &TableConfig{
			Decks:    6,
			Bankroll: 1000,
			BetMin:   100,
			BetStep:  100,
		},
		Simulation: &SimulationConfig{
			Trials: 1000,
		},
	}
}

// Load loads configuration from an HCL file, falling back to defaults
// when the file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Parse decodes configuration from in-memory HCL source
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()
	if c.Table == nil {
		c.Table = defaults.Table
	}
	if c.Simulation == nil {
		c.Simulation = defaults.Simulation
	}
	if c.Table.Decks == 0 {
		c.Table.Decks = defaults.Table.Decks
	}
	if c.Table.Bankroll == 0 {
		c.Table.Bankroll = defaults.Table.Bankroll
	}
	if c.Table.BetMin == 0 {
		c.Table.BetMin = defaults.Table.BetMin
	}
	if c.Table.BetStep == 0 {
		c.Table.BetStep = defaults.Table.BetStep
	}
	if c.Simulation.Trials == 0 {
		c.Simulation.Trials = defaults.Simulation.Trials
	}
}

func (c *Config) validate() error {
	if c.Table.Decks < 1 {
		return fmt.Errorf("table decks must be at least 1, got %d", c.Table.Decks)
	}
	if c.Table.Bankroll < c.Table.BetMin {
		return fmt.Errorf("bankroll %d does not cover the minimum bet %d", c.Table.Bankroll, c.Table.BetMin)
	}
	if c.Simulation.Trials < 1 {
		return fmt.Errorf("simulation trials must be at least 1, got %d", c.Simulation.Trials)
	}
	return nil
}
