package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/OCharnyshevich/voxelworld/pkg/world/gen"
	getter "github.com/hashicorp/go-getter"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the engine configuration.
type Config struct {
	Seed          int64  `yaml:"seed"`
	GeneratorType string `yaml:"generator"` // "default" or "flat"
	ViewRadius    int    `yaml:"view_radius"`
	ChunkBudget   int    `yaml:"chunk_budget"`
	GravityBudget int    `yaml:"gravity_budget"`
	LiquidBudget  int    `yaml:"liquid_budget"`
	LiquidSpread  int    `yaml:"liquid_spread"` // 0 = unlimited
	TickRate      int    `yaml:"tick_rate"`     // ticks per second
	Greedy        bool   `yaml:"greedy"`
	MetricsAddr   string `yaml:"metrics_addr"` // empty disables the endpoint
	LogLevel      string `yaml:"log_level"`

	Generation gen.Params `yaml:"generation"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		GeneratorType: "default",
		ViewRadius:    6,
		ChunkBudget:   4,
		GravityBudget: 64,
		LiquidBudget:  128,
		LiquidSpread:  7,
		TickRate:      20,
		Greedy:        true,
		LogLevel:      "info",
		Generation:    gen.DefaultParams(0),
	}
}

// Load reads a YAML config file on top of the defaults. Unknown keys are
// rejected so typos do not pass silently.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Fetch downloads a config preset from any go-getter source (local path,
// http, git, s3, gcs) into dir and returns the local file path.
func Fetch(ctx context.Context, src, dir string) (string, error) {
	name := filepath.Base(strings.SplitN(src, "?", 2)[0])
	if name == "" || name == "." || name == "/" {
		name = "preset.yaml"
	}
	dst := filepath.Join(dir, name)
	if err := getter.GetFile(dst, src, getter.WithContext(ctx)); err != nil {
		return "", fmt.Errorf("fetch config %s: %w", src, err)
	}
	return dst, nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["generator"] {
		cfg.GeneratorType = fromFile.GeneratorType
	}
	if !explicitFlags["view-radius"] {
		cfg.ViewRadius = fromFile.ViewRadius
	}
	if !explicitFlags["chunk-budget"] {
		cfg.ChunkBudget = fromFile.ChunkBudget
	}
	if !explicitFlags["gravity-budget"] {
		cfg.GravityBudget = fromFile.GravityBudget
	}
	if !explicitFlags["liquid-budget"] {
		cfg.LiquidBudget = fromFile.LiquidBudget
	}
	if !explicitFlags["liquid-spread"] {
		cfg.LiquidSpread = fromFile.LiquidSpread
	}
	if !explicitFlags["tick-rate"] {
		cfg.TickRate = fromFile.TickRate
	}
	if !explicitFlags["greedy"] {
		cfg.Greedy = fromFile.Greedy
	}
	if !explicitFlags["metrics-addr"] {
		cfg.MetricsAddr = fromFile.MetricsAddr
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
	// Generation params have no flags.
	cfg.Generation = fromFile.Generation
}

// Validate reports every problem found, each wrapping ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	switch c.GeneratorType {
	case "default", "flat":
	default:
		bad("generator %q is not one of default, flat", c.GeneratorType)
	}
	if c.ViewRadius < 0 {
		bad("view_radius %d is negative", c.ViewRadius)
	}
	if c.ChunkBudget <= 0 {
		bad("chunk_budget must be positive, got %d", c.ChunkBudget)
	}
	if c.GravityBudget <= 0 {
		bad("gravity_budget must be positive, got %d", c.GravityBudget)
	}
	if c.LiquidBudget <= 0 {
		bad("liquid_budget must be positive, got %d", c.LiquidBudget)
	}
	if c.LiquidSpread < 0 {
		bad("liquid_spread %d is negative", c.LiquidSpread)
	}
	if c.TickRate <= 0 {
		bad("tick_rate must be positive, got %d", c.TickRate)
	}
	if _, err := c.Level(); err != nil {
		bad("log_level: %v", err)
	}

	h := c.Generation.Height
	if h < 32 || h > 256 || h%16 != 0 {
		bad("generation.height %d must be a multiple of 16 in [32, 256]", h)
	}
	if sl := c.Generation.SeaLevel; sl <= 0 || sl >= h {
		bad("generation.sea_level %d is outside the world height %d", sl, h)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}

// TickInterval is the wall time between simulation ticks.
func (c *Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(c.TickRate)
}

// GenerationParams returns the generation params with the configured seed.
func (c *Config) GenerationParams() gen.Params {
	p := c.Generation
	p.Seed = c.Seed
	return p
}
