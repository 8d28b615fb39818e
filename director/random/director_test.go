package random

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/they4kman/gosweep/game"
)

func TestDirectorRevealsHiddenUnflaggedCell(t *testing.T) {
	board, err := game.ParseLayout(`
		..1O
		..1f
		.111
		##O#
	`, nil)
	require.NoError(t, err)
	session := game.NewSession(board)
	director := New(rand.New(rand.NewSource(1)))

	for i := 0; i < 20; i++ {
		action, ok := director.Next(session)
		require.True(t, ok)
		assert.Equal(t, game.RevealAction, action.Type)

		cell := board.CellAt(action.Row, action.Col)
		require.NotNil(t, cell)
		assert.False(t, cell.IsRevealed())
		assert.False(t, cell.IsFlagged())
	}
}

func TestDirectorPlaysUntilTheGameEnds(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		config := game.NewGameConfig()
		config.Rows, config.Cols, config.NumMines, config.Seed = 8, 8, 10, seed+1
		session := config.NewSession()
		director := New(rand.New(rand.NewSource(seed)))

		for moves := 0; session.CanPlay(); moves++ {
			require.Less(t, moves, 64)
			action, ok := director.Next(session)
			require.True(t, ok)
			_, err := session.Apply(action)
			require.NoError(t, err)
		}

		_, ok := director.Next(session)
		assert.False(t, ok)
	}
}
