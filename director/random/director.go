package random

import (
	"math/rand"
	"time"

	"github.com/they4kman/gosweep/game"
)

// Director reveals hidden, unflagged cells at random
type Director struct {
	rand *rand.Rand
}

// New returns a Director drawing from rng, or from the clock if rng is nil
func New(rng *rand.Rand) *Director {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Director{rand: rng}
}

func (director *Director) Next(session *game.Session) (game.Action, bool) {
	if !session.CanPlay() {
		return game.Action{}, false
	}

	var candidates []*game.Cell
	for _, cell := range session.Board().Cells() {
		if !cell.IsRevealed() && !cell.IsFlagged() {
			candidates = append(candidates, cell)
		}
	}
	if len(candidates) == 0 {
		return game.Action{}, false
	}

	cell := candidates[director.rand.Intn(len(candidates))]
	return game.Action{
		Type: game.RevealAction,
		Row:  cell.Row(),
		Col:  cell.Col(),
	}, true
}
