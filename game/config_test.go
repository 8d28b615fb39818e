package game

import (
	"io/ioutil"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameConfigIsValid(t *testing.T) {
	config := NewGameConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, 16, config.Rows)
	assert.Equal(t, 16, config.Cols)
	assert.Equal(t, 40, config.NumMines)
}

func TestGameConfigValidate(t *testing.T) {
	for _, test := range []struct {
		name              string
		rows, cols, mines int
		valid             bool
	}{
		{"beginner", 9, 9, 10, true},
		{"no mines", 1, 1, 0, true},
		{"no rows", 0, 5, 0, false},
		{"negative cols", 5, -1, 0, false},
		{"negative mines", 5, 5, -1, false},
		{"mines fill the board", 5, 5, 25, false},
		{"largest valid", 5, 5, 16, true},
		{"no room for first click", 5, 5, 17, false},
		{"single row", 1, 10, 7, true},
		{"single row too full", 1, 10, 8, false},
		{"largest board", MaxRows, MaxCols, 99, true},
		{"too many rows", MaxRows + 1, 9, 10, false},
		{"too many cols", 9, MaxCols + 1, 10, false},
		{"entry screen limit", 9999, 9999, 0, false},
	} {
		config := NewGameConfig()
		config.Rows, config.Cols, config.NumMines = test.rows, test.cols, test.mines

		err := config.Validate()
		if test.valid {
			assert.NoError(t, err, test.name)
		} else {
			assert.True(t, errors.Is(err, ErrInvalidConfig), test.name)
		}
	}
}

func TestValidConfigAlwaysPlacesMines(t *testing.T) {
	for rows := 1; rows <= 5; rows++ {
		for cols := 1; cols <= 5; cols++ {
			config := NewGameConfig()
			config.Rows, config.Cols = rows, cols
			config.NumMines = rows*cols - ExclusionZoneSize(rows, cols)
			config.Seed = int64(rows*10 + cols)
			require.NoError(t, config.Validate())

			for row := 0; row < rows; row++ {
				for col := 0; col < cols; col++ {
					session := config.NewSession()
					_, err := session.Reveal(row, col)
					require.NoError(t, err, "%dx%d clicked at (%d, %d)", rows, cols, row, col)
				}
			}
		}
	}
}

func TestLoadGameConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "gosweep")
	require.NoError(t, err)
	path := filepath.Join(dir, "gosweep.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(`
rows: 9
cols: 12
mines: 10
seed: 1234
frontend: tui
director: constraint
director_interval: 250ms
`), 0644))

	config := NewGameConfig()
	require.NoError(t, LoadGameConfig(path, &config))

	assert.Equal(t, 9, config.Rows)
	assert.Equal(t, 12, config.Cols)
	assert.Equal(t, 10, config.NumMines)
	assert.Equal(t, int64(1234), config.Seed)
	assert.Equal(t, "tui", config.Frontend)
	assert.Equal(t, "constraint", config.Director)
	assert.Equal(t, 250*time.Millisecond, config.DirectorInterval)
	// untouched keys keep their defaults
	assert.Equal(t, "info", config.LogLevel)
}

func TestLoadGameConfigErrors(t *testing.T) {
	config := NewGameConfig()
	assert.Error(t, LoadGameConfig(filepath.Join("does", "not", "exist.yaml"), &config))

	dir, err := ioutil.TempDir("", "gosweep")
	require.NoError(t, err)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte("colour: blue\n"), 0644))
	assert.Error(t, LoadGameConfig(path, &config))
}

func TestLoadGameConfigTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gosweep.toml")
	require.NoError(t, ioutil.WriteFile(path, []byte(`
rows = 8
cols = 30
mines = 24
director = "random"
director_interval = "1s"
`), 0644))

	config := NewGameConfig()
	require.NoError(t, LoadGameConfig(path, &config))
	assert.Equal(t, 8, config.Rows)
	assert.Equal(t, 30, config.Cols)
	assert.Equal(t, 24, config.NumMines)
	assert.Equal(t, "random", config.Director)
	assert.Equal(t, time.Second, config.DirectorInterval)
	assert.Equal(t, "gui", config.Frontend)

	require.NoError(t, ioutil.WriteFile(path, []byte("colour = \"blue\"\n"), 0644))
	assert.Error(t, LoadGameConfig(path, &config))

	require.NoError(t, ioutil.WriteFile(path, []byte("rows = \n"), 0644))
	assert.Error(t, LoadGameConfig(path, &config))
}

// zeroFirstSource yields 0 once, then counts up from 1
type zeroFirstSource struct {
	next int64
}

func (source *zeroFirstSource) Int63() int64 {
	value := source.next
	source.next++
	return value
}

func (source *zeroFirstSource) Seed(int64) {}

func TestNextSeedSkipsZero(t *testing.T) {
	rng := rand.New(&zeroFirstSource{})
	assert.Equal(t, int64(1), nextSeed(rng))
	assert.Equal(t, int64(2), nextSeed(rng))
}

func TestNextKeepsRunsReproducible(t *testing.T) {
	config := NewGameConfig()
	config.Seed = 77

	first := config.Next(config.NewSession())
	second := config.Next(config.NewSession())
	assert.NotZero(t, first.Seed)
	assert.Equal(t, first.Seed, second.Seed)
}
