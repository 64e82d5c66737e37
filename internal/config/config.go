// Package config loads command-line settings. Every flag falls back to a
// BITCHESS_* environment variable and then to a built-in default.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/bitchess/internal/board"
	"github.com/hailam/bitchess/internal/engine"
)

// ErrInvalidConfig is returned for flag or environment values that fail
// validation.
var ErrInvalidConfig = errors.New("invalid config")

const envPrefix = "BITCHESS_"

// Config holds the settings shared by all subcommands.
type Config struct {
	Seed       uint64
	White      string // engine names
	Black      string
	Human      board.Color
	Games      int
	MaxPlies   int
	Budget     time.Duration // search time per side and game; 0 = unlimited
	DBDir      string        // empty = platform data dir
	InMemory   bool
	LogLevel   zerolog.Level
	Output     string
	SquareSize int
	ANSI       bool
	BenchTime  time.Duration
	CPUProfile string

	Args []string // positional arguments left after the flags
}

// env reads BITCHESS_<key> values and remembers the ones that fail to parse.
type env struct {
	getenv func(string) string
	errs   []error
}

func (e *env) lookup(key string) (string, bool) {
	v := strings.TrimSpace(e.getenv(envPrefix + key))
	return v, v != ""
}

func (e *env) getString(key, def string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return def
}

func (e *env) getBool(key string, def bool) bool {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	}
	e.errs = append(e.errs, fmt.Errorf("%s%s=%q: not a boolean", envPrefix, key, v))
	return def
}

func (e *env) getInt(key string, def int) int {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
		return def
	}
	return n
}

func (e *env) getUint(key string, def uint64) uint64 {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
		return def
	}
	return n
}

func (e *env) getDuration(key string, def time.Duration) time.Duration {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
		return def
	}
	return d
}

// raw holds flag values before validation.
type raw struct {
	human    string
	logLevel string
}

func newFlagSet(name string, cfg *Config, r *raw, e *env) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Uint64Var(&cfg.Seed, "seed", e.getUint("SEED", 1234567), "random seed")
	fs.StringVar(&cfg.White, "white", e.getString("WHITE", "alphabeta3-heuristic"), "White engine (see -engines)")
	fs.StringVar(&cfg.Black, "black", e.getString("BLACK", "paralphabeta4-heuristic"), "Black engine")
	fs.StringVar(&r.human, "human", e.getString("HUMAN", "white"), "side the human plays in play: white or black")
	fs.IntVar(&cfg.Games, "games", e.getInt("GAMES", 10), "games per match")
	fs.IntVar(&cfg.MaxPlies, "max-plies", e.getInt("MAX_PLIES", 200), "plies before a game is drawn; 0 = unlimited")
	fs.DurationVar(&cfg.Budget, "budget", e.getDuration("BUDGET", 0), "search time per side and game; 0 = unlimited")
	fs.StringVar(&cfg.DBDir, "db", e.getString("DB", ""), "database directory (default: platform data dir)")
	fs.BoolVar(&cfg.InMemory, "in-memory", e.getBool("IN_MEMORY", false), "keep the database in memory")
	fs.StringVar(&r.logLevel, "log-level", e.getString("LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	fs.StringVar(&cfg.Output, "o", e.getString("OUTPUT", ""), "output file for render (.png or .svg)")
	fs.IntVar(&cfg.SquareSize, "square", e.getInt("SQUARE", 64), "square size in pixels for render")
	fs.BoolVar(&cfg.ANSI, "ansi", e.getBool("ANSI", true), "colored terminal boards")
	fs.DurationVar(&cfg.BenchTime, "benchtime", e.getDuration("BENCHTIME", time.Second), "time per engine in bench")
	fs.StringVar(&cfg.CPUProfile, "cpuprofile", e.getString("CPUPROFILE", ""), "write cpu profile to file")
	return fs
}

// Load parses args (without the program or subcommand name) using getenv for
// defaults. flag.ErrHelp is returned unwrapped for -h.
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	var r raw
	e := &env{getenv: getenv}
	fs := newFlagSet("bitchess", cfg, &r, e)
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.Args = fs.Args()

	errs := e.errs
	switch strings.ToLower(r.human) {
	case "white", "w":
		cfg.Human = board.White
	case "black", "b":
		cfg.Human = board.Black
	default:
		errs = append(errs, fmt.Errorf("human: %q is not white or black", r.human))
	}
	level, err := zerolog.ParseLevel(strings.ToLower(r.logLevel))
	if err != nil {
		errs = append(errs, fmt.Errorf("log-level: %w", err))
	}
	cfg.LogLevel = level

	errs = append(errs, cfg.validate()...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return cfg, nil
}

func (cfg *Config) validate() []error {
	var errs []error
	for _, name := range []string{cfg.White, cfg.Black} {
		if _, err := engine.Parse(name); err != nil {
			errs = append(errs, err)
		}
	}
	if cfg.Games < 1 {
		errs = append(errs, fmt.Errorf("games: %d, need at least 1", cfg.Games))
	}
	if cfg.MaxPlies < 0 {
		errs = append(errs, fmt.Errorf("max-plies: %d is negative", cfg.MaxPlies))
	}
	if cfg.Budget < 0 {
		errs = append(errs, fmt.Errorf("budget: %v is negative", cfg.Budget))
	}
	if cfg.SquareSize < 8 || cfg.SquareSize > 512 {
		errs = append(errs, fmt.Errorf("square: %d outside 8..512", cfg.SquareSize))
	}
	if cfg.BenchTime <= 0 {
		errs = append(errs, fmt.Errorf("benchtime: %v must be positive", cfg.BenchTime))
	}
	return errs
}

// Usage writes the flag defaults to w.
func Usage(w io.Writer) {
	fs := newFlagSet("bitchess", &Config{}, &raw{}, &env{getenv: func(string) string { return "" }})
	fs.SetOutput(w)
	fs.PrintDefaults()
}
