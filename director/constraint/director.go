package constraint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/gosweep/director/random"
	"github.com/they4kman/gosweep/game"
	"github.com/they4kman/gosweep/util/collections"
)

// Director deduces safe cells and mines from the revealed numbers, and
// hands over to a fallback director when nothing can be deduced
type Director struct {
	fallback game.Director
}

// New returns a constraint Director; a nil fallback plays at random
func New(fallback game.Director) *Director {
	if fallback == nil {
		fallback = random.New(nil)
	}
	return &Director{fallback: fallback}
}

// Observation states that exactly numMines of cells are mines
type Observation struct {
	origin   *game.Cell
	numMines int
	cells    collections.Set[*game.Cell]
}

func (observation Observation) String() string {
	cells := observation.sortedCells()
	reprs := make([]string, len(cells))
	for i, cell := range cells {
		reprs[i] = fmt.Sprintf("(%d, %d)", cell.Row(), cell.Col())
	}

	originRepr := "?"
	if observation.origin != nil {
		originRepr = fmt.Sprintf("(%d, %d)", observation.origin.Row(), observation.origin.Col())
	}

	return fmt.Sprintf("Obs[%8s, %d ε %s]", originRepr, observation.numMines, strings.Join(reprs, ", "))
}

func (observation Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(len(observation.cells))
}

// sortedCells orders the observed cells row by row, so the director's
// choices do not depend on map iteration order
func (observation Observation) sortedCells() []*game.Cell {
	cells := make([]*game.Cell, 0, len(observation.cells))
	for cell := range observation.cells {
		cells = append(cells, cell)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row() != cells[j].Row() {
			return cells[i].Row() < cells[j].Row()
		}
		return cells[i].Col() < cells[j].Col()
	})
	return cells
}

func (director *Director) Next(session *game.Session) (game.Action, bool) {
	if !session.CanPlay() {
		return game.Action{}, false
	}

	board := session.Board()
	observations := observe(board)

	actors := []func([]*Observation) (game.Action, bool){
		actDeliberate,
		actSubsets,
		func(observations []*Observation) (game.Action, bool) {
			return actLowestProbability(board, observations)
		},
	}
	for _, actor := range actors {
		if action, ok := actor(observations); ok {
			logrus.WithField("action", action).Debug("constraint director acting")
			return action, true
		}
	}

	return director.fallback.Next(session)
}

// observe collects one observation per revealed number still bordering
// hidden, unflagged cells. Flags are trusted.
func observe(board *game.Board) []*Observation {
	var observations []*Observation

	for _, cell := range board.Cells() {
		if !cell.IsRevealed() || cell.IsMine() || cell.NeighborMines() == 0 {
			continue
		}

		observation := Observation{
			origin:   cell,
			numMines: cell.NeighborMines(),
			cells:    make(collections.Set[*game.Cell]),
		}
		for _, neighbor := range board.Neighbors(cell.Row(), cell.Col()) {
			if neighbor.IsRevealed() {
				continue
			}
			if neighbor.IsFlagged() {
				observation.numMines--
			} else {
				observation.cells.Add(neighbor)
			}
		}

		if len(observation.cells) > 0 {
			observations = append(observations, &observation)
		}
	}

	return observations
}

func actOn(actionType game.ActionType, cell *game.Cell) (game.Action, bool) {
	return game.Action{Type: actionType, Row: cell.Row(), Col: cell.Col()}, true
}

// actDeliberate handles observations settled on their own: all mines or
// no mines at all
func actDeliberate(observations []*Observation) (game.Action, bool) {
	for _, observation := range observations {
		switch observation.numMines {
		case len(observation.cells):
			return actOn(game.FlagAction, observation.sortedCells()[0])
		case 0:
			return actOn(game.RevealAction, observation.sortedCells()[0])
		}
	}
	return game.Action{}, false
}

// actSubsets splits an observation by another one covering a subset of its
// cells; the cells left over hold the difference in mines
func actSubsets(observations []*Observation) (game.Action, bool) {
	for _, observation := range observations {
		for _, other := range observations {
			if other == observation || observation.cells.Equal(other.cells) {
				continue
			}
			if _, isSubset := observation.cells.IntersectionEx(other.cells); !isSubset {
				continue
			}

			split := Observation{
				numMines: other.numMines - observation.numMines,
				cells:    other.cells.Difference(observation.cells),
			}
			switch split.numMines {
			case len(split.cells):
				return actOn(game.FlagAction, split.sortedCells()[0])
			case 0:
				return actOn(game.RevealAction, split.sortedCells()[0])
			}
		}
	}
	return game.Action{}, false
}

// actLowestProbability reveals the observed cell least likely to be a mine,
// provided it beats a blind guess among all hidden cells
func actLowestProbability(board *game.Board, observations []*Observation) (game.Action, bool) {
	numHidden := 0
	for _, cell := range board.Cells() {
		if !cell.IsRevealed() && !cell.IsFlagged() {
			numHidden++
		}
	}
	if numHidden == 0 {
		return game.Action{}, false
	}
	lowestProbability := float64(board.NumMines()-board.NumFlags()) / float64(numHidden)

	var lowest *game.Cell
	for _, observation := range observations {
		if probability := observation.MineProbability(); probability < lowestProbability {
			lowestProbability = probability
			lowest = observation.sortedCells()[0]
		}
	}

	if lowest == nil {
		return game.Action{}, false
	}
	return actOn(game.RevealAction, lowest)
}
