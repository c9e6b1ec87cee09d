// Package config loads game tuning and the world definition.
//
// Layers, lowest first: the embedded default.yaml, an optional tuning file
// (validated against the embedded JSON schema), BREWRUSH_* environment
// variables, then whatever the caller sets from flags.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Env var names recognised by ApplyEnv.
const (
	EnvDuration     = "BREWRUSH_DURATION"
	EnvTick         = "BREWRUSH_TICK"
	EnvMaxCustomers = "BREWRUSH_MAX_CUSTOMERS"
	EnvInventoryCap = "BREWRUSH_INVENTORY_CAP"
	EnvPolicy       = "BREWRUSH_SPAWN_POLICY"
	EnvSeed         = "BREWRUSH_SEED"
)

// Spawn policy names.
const (
	PolicyUniform    = "uniform"
	PolicyRoundRobin = "round-robin"
)

// Config is the full tuning document.
type Config struct {
	Session Session `yaml:"session"`
	World   World   `yaml:"world"`
}

// Session holds the knobs of one game.
type Session struct {
	Duration     time.Duration `yaml:"duration"`
	Tick         time.Duration `yaml:"tick"`
	MaxCustomers int           `yaml:"max_customers"`
	InventoryCap int           `yaml:"inventory_capacity"`
	SpawnPolicy  string        `yaml:"spawn_policy"`
	Seed         int64         `yaml:"seed"` // 0 picks a seed from the clock
	Home         string        `yaml:"home"`
	DeliverAt    string        `yaml:"deliver_at"` // empty: deliver anywhere
	ImpatientAt  time.Duration `yaml:"impatient_at"`
	RestockEvery time.Duration `yaml:"restock_every"` // 0: pools never refill
}

// World lists the recipe book and the map.
type World struct {
	Recipes   []RecipeDef   `yaml:"recipes"`
	Locations []LocationDef `yaml:"locations"`
}

// RecipeDef is one recipe as written in YAML.
type RecipeDef struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Chapter     string          `yaml:"chapter"`
	Payout      int             `yaml:"payout"`
	MinWait     time.Duration   `yaml:"min_wait"`
	MaxWait     time.Duration   `yaml:"max_wait"`
	Ingredients []IngredientDef `yaml:"ingredients"`
}

// IngredientDef is one (item, quantity) line.
type IngredientDef struct {
	Item string `yaml:"item"`
	Qty  int    `yaml:"qty"`
}

// LocationDef is one map node as written in YAML.
type LocationDef struct {
	ID     string            `yaml:"id"`
	Name   string            `yaml:"name"`
	Exits  map[string]string `yaml:"exits"`
	Items  map[string]int    `yaml:"items"`
	Flavor []string          `yaml:"flavor"`
}

// Default returns the embedded configuration.
func Default() (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(defaultYAML, &c); err != nil {
		return nil, fmt.Errorf("default.yaml: %w", err)
	}
	return &c, nil
}

// Load returns the defaults with the tuning file at path layered on top.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return c, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := ValidateDocument(raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ApplyEnv overrides session knobs from BREWRUSH_* variables. Call it
// after godotenv.Load so a .env file is honoured.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvDuration); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDuration, err)
		}
		c.Session.Duration = d
	}
	if v := os.Getenv(EnvTick); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTick, err)
		}
		c.Session.Tick = d
	}
	if v := os.Getenv(EnvMaxCustomers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxCustomers, err)
		}
		c.Session.MaxCustomers = n
	}
	if v := os.Getenv(EnvInventoryCap); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvInventoryCap, err)
		}
		c.Session.InventoryCap = n
	}
	if v := os.Getenv(EnvPolicy); v != "" {
		c.Session.SpawnPolicy = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Session.Seed = n
	}
	return nil
}

// Validate checks the semantic rules the schema cannot express.
func (c *Config) Validate() error {
	s := c.Session
	if s.Duration <= 0 {
		return fmt.Errorf("session duration must be positive, got %s", s.Duration)
	}
	if s.Tick <= 0 || s.Tick > time.Second {
		return fmt.Errorf("tick must be in (0, 1s], got %s", s.Tick)
	}
	if s.MaxCustomers < 1 {
		return fmt.Errorf("max_customers must be at least 1, got %d", s.MaxCustomers)
	}
	if s.InventoryCap < 1 {
		return fmt.Errorf("inventory_capacity must be at least 1, got %d", s.InventoryCap)
	}
	switch s.SpawnPolicy {
	case PolicyUniform, PolicyRoundRobin:
	default:
		return fmt.Errorf("unknown spawn_policy %q", s.SpawnPolicy)
	}
	if s.ImpatientAt < 0 {
		return fmt.Errorf("impatient_at must not be negative")
	}
	if s.RestockEvery < 0 {
		return fmt.Errorf("restock_every must not be negative")
	}

	known := make(map[string]bool, len(c.World.Locations))
	for _, l := range c.World.Locations {
		known[l.ID] = true
	}
	if !known[s.Home] {
		return fmt.Errorf("home %q is not a location", s.Home)
	}
	if s.DeliverAt != "" && !known[s.DeliverAt] {
		return fmt.Errorf("deliver_at %q is not a location", s.DeliverAt)
	}
	if len(c.World.Recipes) == 0 {
		return fmt.Errorf("world has no recipes")
	}
	return nil
}
