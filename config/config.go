package config

import (
	"connectn/game"
	"connectn/meta"
	"connectn/searcher"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings of an interactive game. Flags override values
// loaded from a file.
type Config struct {
	Rows       int    `yaml:"rows"`
	Columns    int    `yaml:"columns"`
	ToWin      int    `yaml:"to_win"`
	Iterations int    `yaml:"iterations"`
	Goroutines int    `yaml:"goroutines"`
	Seed       uint64 `yaml:"seed"`  // 0 seeds from the clock
	Human      string `yaml:"human"` // Colour of the human player
	LogLevel   string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Rows:       meta.ROWS,
		Columns:    meta.COLUMNS,
		ToWin:      meta.TO_WIN,
		Iterations: meta.ITERATIONS,
		Goroutines: 1,
		Human:      "yellow",
		LogLevel:   meta.LOG_LEVEL,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse config: %w", err)
	}
	return c, nil
}

// Validate reports malformed settings before any game starts.
func (c Config) Validate() error {
	if _, err := c.NewBoard(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := searcher.NewMCTS(c.SearchOptions()...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.HumanPlayer(); err != nil {
		return err
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) NewBoard() (*game.Board, error) {
	return game.NewBoard(c.Rows, c.Columns, c.ToWin)
}

func (c Config) SearchOptions() []searcher.Option {
	options := []searcher.Option{
		searcher.WithIterations(c.Iterations),
		searcher.WithGoroutines(c.Goroutines),
	}
	if c.Seed != 0 {
		options = append(options, searcher.WithSeed(c.Seed))
	}
	return options
}

func (c Config) HumanPlayer() (game.Player, error) {
	p, ok := game.ParsePlayer(c.Human)
	if !ok {
		return p, fmt.Errorf("%w: unknown player %q", ErrInvalidConfig, c.Human)
	}
	return p, nil
}
