package game

import (
	"io/ioutil"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type GameConfig struct {
	Rows     int `yaml:"rows"`
	Cols     int `yaml:"cols"`
	NumMines int `yaml:"mines"`

	// Seed for mine placement; 0 picks one from the clock
	Seed int64 `yaml:"seed"`

	// Frontend to play with: "gui" or "tui"
	Frontend string `yaml:"frontend"`
	// Start playing right away instead of showing the entry screen
	SkipMenu bool `yaml:"skip_menu"`

	// Name of the director playing the game, empty for a human player
	Director string `yaml:"director"`
	// Time between two director moves
	DirectorInterval time.Duration `yaml:"director_interval"`

	LogLevel string `yaml:"log_level"`
	// Log destination; empty writes to stderr, except in the terminal
	// frontend where logs are dropped
	LogFile string `yaml:"log_file"`
}

// Largest board the entry screen and the command line accept
const (
	MaxRows = 99
	MaxCols = 99
)

func NewGameConfig() GameConfig {
	return GameConfig{
		Rows:             16,
		Cols:             16,
		NumMines:         40,
		Frontend:         "gui",
		DirectorInterval: 500 * time.Millisecond,
		LogLevel:         "info",
	}
}

// LoadGameConfig overlays the file at path onto config. Files ending in
// .toml are read as TOML, anything else as YAML; both use the same keys.
func LoadGameConfig(path string, config *GameConfig) error {
	in, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading config %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if in, err = tomlToYAML(in); err != nil {
			return errors.Wrapf(err, "parsing config %s", path)
		}
	}

	if err := yaml.UnmarshalStrict(in, config); err != nil {
		return errors.Wrapf(err, "parsing config %s", path)
	}
	return nil
}

// tomlToYAML re-encodes a TOML document so both formats share the YAML
// decoding rules, unknown keys and durations included
func tomlToYAML(in []byte) ([]byte, error) {
	tree, err := toml.LoadBytes(in)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(tree.ToMap())
}

// Validate checks the board dimensions. Mines must leave room for the
// largest exclusion zone a first click can need, so placing them cannot fail.
func (config GameConfig) Validate() error {
	if config.Rows <= 0 || config.Cols <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "board must have at least one row and column, got %dx%d",
			config.Rows, config.Cols)
	}
	if config.Rows > MaxRows || config.Cols > MaxCols {
		return errors.Wrapf(ErrInvalidConfig, "board can be at most %dx%d, got %dx%d",
			MaxRows, MaxCols, config.Rows, config.Cols)
	}
	if config.NumMines < 0 {
		return errors.Wrapf(ErrInvalidConfig, "mine count cannot be negative, got %d", config.NumMines)
	}
	if config.DirectorInterval < 0 {
		return errors.Wrapf(ErrInvalidConfig, "director interval cannot be negative, got %s", config.DirectorInterval)
	}

	numCells := config.Rows * config.Cols
	if config.NumMines >= numCells {
		return errors.Wrapf(ErrInvalidConfig, "%d mines do not fit in %d cells", config.NumMines, numCells)
	}
	if maxMines := numCells - ExclusionZoneSize(config.Rows, config.Cols); config.NumMines > maxMines {
		return errors.Wrapf(ErrInvalidConfig, "at most %d mines fit on a %dx%d board", maxMines, config.Rows, config.Cols)
	}
	return nil
}

// Rand returns the generator a board built from config draws from
func (config GameConfig) Rand() *rand.Rand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewSession starts a game on a fresh board
func (config GameConfig) NewSession() *Session {
	return NewSession(NewBoard(config.Rows, config.Cols, config.NumMines, config.Rand()))
}

// Next returns the config for the game following session, seeded from the
// previous board so a run of games is reproducible from the first seed
func (config GameConfig) Next(session *Session) GameConfig {
	config.Seed = nextSeed(session.board.rand)
	return config
}

// nextSeed draws a seed from rng, skipping 0, which Rand reads as "use
// the clock"
func nextSeed(rng *rand.Rand) int64 {
	for {
		if seed := rng.Int63(); seed != 0 {
			return seed
		}
	}
}
