package config

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"

	"hex_go/internal/game"
)

const (
	ConfigBoardRows           = "board.rows"
	ConfigBoardCols           = "board.cols"
	ConfigSearchDepth         = "search.depth"
	ConfigSearchMovetimeMs    = "search.movetime_ms"
	ConfigSearchNodes         = "search.nodes"
	ConfigSearchWorkers       = "search.workers"
	ConfigSearchIterative     = "search.iterative"
	ConfigSearchCenterFirst   = "search.center_first"
	ConfigEvalPathWeight      = "eval.path_weight"
	ConfigEvalGroupWeight     = "eval.group_weight"
	ConfigEvalJitter          = "eval.jitter"
	ConfigEvalSeed            = "eval.seed"
	ConfigCacheCapacity       = "cache.capacity"
	ConfigCacheMemoryFraction = "cache.memory_fraction"
	ConfigGameSwapRule        = "game.swap_rule"
	ConfigLogDebug            = "log.debug"
	ConfigUIWidth             = "ui.width"
	ConfigUIHeight            = "ui.height"
	ConfigUIMode              = "ui.mode"
	ConfigUIHumanSeat         = "ui.human"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds every setting. Precedence, highest first: command-line
// flags, HEX_* environment variables, the --config file, defaults.
type Config struct {
	*viper.Viper
}

// flag name -> config key
var flagKeys = map[string]string{
	"rows":         ConfigBoardRows,
	"cols":         ConfigBoardCols,
	"depth":        ConfigSearchDepth,
	"movetime":     ConfigSearchMovetimeMs,
	"nodes":        ConfigSearchNodes,
	"workers":      ConfigSearchWorkers,
	"iterative":    ConfigSearchIterative,
	"center-first": ConfigSearchCenterFirst,
	"seed":         ConfigEvalSeed,
	"cache":        ConfigCacheCapacity,
	"swap":         ConfigGameSwapRule,
	"debug":        ConfigLogDebug,
}

func New() *Config {
	v := viper.New()
	v.SetDefault(ConfigBoardRows, 11)
	v.SetDefault(ConfigBoardCols, 11)
	v.SetDefault(ConfigSearchDepth, game.DefaultDepthLimit)
	v.SetDefault(ConfigSearchMovetimeMs, 0)
	v.SetDefault(ConfigSearchNodes, 0)
	v.SetDefault(ConfigSearchWorkers, 1)
	v.SetDefault(ConfigSearchIterative, true)
	v.SetDefault(ConfigSearchCenterFirst, false)
	w := game.DefaultWeights()
	v.SetDefault(ConfigEvalPathWeight, w.Path)
	v.SetDefault(ConfigEvalGroupWeight, w.Group)
	v.SetDefault(ConfigEvalJitter, w.Jitter)
	v.SetDefault(ConfigEvalSeed, "0")
	v.SetDefault(ConfigCacheCapacity, 0)
	v.SetDefault(ConfigCacheMemoryFraction, 0.0)
	v.SetDefault(ConfigGameSwapRule, false)
	v.SetDefault(ConfigLogDebug, false)
	v.SetDefault(ConfigUIWidth, 1200)
	v.SetDefault(ConfigUIHeight, 800)
	v.SetDefault(ConfigUIMode, "pve")
	v.SetDefault(ConfigUIHumanSeat, "player1")

	v.SetEnvPrefix("HEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Config{Viper: v}
}

// Load parses args with the common flag set.
func (c *Config) Load(args []string) error {
	return c.LoadWith(flag.NewFlagSet("hex", flag.ContinueOnError), args)
}

// LoadWith registers the common flags on fs, which may already carry
// command-specific flags, parses args and merges the result.
func (c *Config) LoadWith(fs *flag.FlagSet, args []string) error {
	cfgFile := fs.String("config", "", "YAML config file")
	fs.Int("rows", c.GetInt(ConfigBoardRows), "board rows")
	fs.Int("cols", c.GetInt(ConfigBoardCols), "board columns")
	fs.Int("depth", c.GetInt(ConfigSearchDepth), "search depth in plies")
	fs.Int("movetime", c.GetInt(ConfigSearchMovetimeMs), "time budget per move in ms, 0 = none")
	fs.Uint64("nodes", c.GetUint64(ConfigSearchNodes), "node budget per move, 0 = none")
	fs.Int("workers", c.GetInt(ConfigSearchWorkers), "root-parallel search workers")
	fs.Bool("iterative", c.GetBool(ConfigSearchIterative), "iterative deepening when a budget is set")
	fs.Bool("center-first", c.GetBool(ConfigSearchCenterFirst), "try central cells first")
	fs.String("seed", c.GetString(ConfigEvalSeed), "hash/jitter seed (number or any string)")
	fs.Int("cache", c.GetInt(ConfigCacheCapacity), "eval cache entries, 0 = unbounded")
	fs.Bool("swap", c.GetBool(ConfigGameSwapRule), "enable the swap rule")
	fs.Bool("debug", c.GetBool(ConfigLogDebug), "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *cfgFile != "" {
		c.SetConfigFile(*cfgFile)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading %s: %w", *cfgFile, err)
		}
	}
	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			c.Set(key, f.Value.String())
		}
	})
	return c.Validate()
}

func (c *Config) Validate() error {
	rows, cols := c.BoardSize()
	switch {
	case rows < 1 || cols < 1:
		return fmt.Errorf("%w: board %dx%d", ErrInvalidConfig, rows, cols)
	case c.GetInt(ConfigSearchDepth) < 1:
		return fmt.Errorf("%w: depth %d", ErrInvalidConfig, c.GetInt(ConfigSearchDepth))
	case c.GetInt(ConfigSearchMovetimeMs) < 0:
		return fmt.Errorf("%w: negative movetime", ErrInvalidConfig)
	case c.GetInt(ConfigCacheCapacity) < 0:
		return fmt.Errorf("%w: negative cache capacity", ErrInvalidConfig)
	case c.GetInt(ConfigEvalJitter) < 0:
		return fmt.Errorf("%w: negative jitter", ErrInvalidConfig)
	}
	if f := c.GetFloat64(ConfigCacheMemoryFraction); f < 0 || f > 1 {
		return fmt.Errorf("%w: memory fraction %v", ErrInvalidConfig, f)
	}
	return nil
}

func (c *Config) BoardSize() (rows, cols int) {
	return c.GetInt(ConfigBoardRows), c.GetInt(ConfigBoardCols)
}

// Seed accepts a plain number; anything else is hashed.
func (c *Config) Seed() uint64 {
	s := strings.TrimSpace(c.GetString(ConfigEvalSeed))
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return n
	}
	return game.SeedFromString(s)
}

func (c *Config) EvalWeights() game.Weights {
	return game.Weights{
		Path:   c.GetInt(ConfigEvalPathWeight),
		Group:  c.GetInt(ConfigEvalGroupWeight),
		Jitter: c.GetInt(ConfigEvalJitter),
	}
}

func (c *Config) Limits() game.Limits {
	return game.Limits{
		Depth:    c.GetInt(ConfigSearchDepth),
		Nodes:    c.GetUint64(ConfigSearchNodes),
		Movetime: time.Duration(c.GetInt(ConfigSearchMovetimeMs)) * time.Millisecond,
	}
}

// CacheCapacity is cache.capacity, or a share of physical memory when only
// cache.memory_fraction is set.
func (c *Config) CacheCapacity() int {
	if n := c.GetInt(ConfigCacheCapacity); n > 0 {
		return n
	}
	if f := c.GetFloat64(ConfigCacheMemoryFraction); f > 0 {
		return game.CapacityFromMemory(f)
	}
	return 0
}

// SearchSettings builds engine options from the search, eval and cache keys.
func (c *Config) SearchSettings() game.Options {
	return game.Options{
		Limits:        c.Limits(),
		Workers:       c.GetInt(ConfigSearchWorkers),
		Iterative:     c.GetBool(ConfigSearchIterative),
		CenterFirst:   c.GetBool(ConfigSearchCenterFirst),
		Weights:       c.EvalWeights(),
		Seed:          c.Seed(),
		CacheCapacity: c.CacheCapacity(),
	}
}

// NewEngine is a shortcut for game.NewEngine(game.WithOptions(c.SearchSettings())).
func (c *Config) NewEngine() *game.Engine {
	return game.NewEngine(game.WithOptions(c.SearchSettings()))
}

// SanitizedSettings returns the flattened settings, keyed by dotted name.
func (c *Config) SanitizedSettings() map[string]any {
	return lo.SliceToMap(c.AllKeys(), func(k string) (string, any) { return k, c.Get(k) })
}

// LogSettings writes the effective settings at debug level.
func (c *Config) LogSettings() {
	log.Debug().Interface("settings", c.SanitizedSettings()).Msg("loaded-config")
}
