package game

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger()

// SetLogger replaces the logger used for game events
func SetLogger(logger *logrus.Logger) {
	log = logger
}

// Session drives a single board from its first click to a win or loss.
// A new game needs a new Session.
type Session struct {
	// tags every log line of this game
	id    xid.ID
	board *Board
	state BoardState

	startedAt, endedAt time.Time
	now                func() time.Time
}

func NewSession(board *Board) *Session {
	return &Session{
		id:    xid.New(),
		board: board,
		state: Uninitialized,
		now:   time.Now,
	}
}

func (session *Session) ID() string {
	return session.id.String()
}

func (session *Session) Board() *Board {
	return session.board
}

func (session *Session) State() BoardState {
	return session.state
}

func (session *Session) CanPlay() bool {
	return !session.state.IsOver()
}

// Remaining is the mine counter shown to the player: mines less flags
func (session *Session) Remaining() int {
	return session.board.numMines - session.board.NumFlags()
}

// Elapsed is the time since the first reveal, frozen once the game ends
func (session *Session) Elapsed() time.Duration {
	switch {
	case session.startedAt.IsZero():
		return 0
	case !session.endedAt.IsZero():
		return session.endedAt.Sub(session.startedAt)
	default:
		return session.now().Sub(session.startedAt)
	}
}

// Reveal handles a left click. The first reveal places the mines around
// the clicked cell; a configuration error there is returned untouched by
// any board mutation.
func (session *Session) Reveal(row, col int) (BoardState, error) {
	cell := session.board.CellAt(row, col)
	if cell == nil || !session.CanPlay() {
		return session.state, nil
	}

	if session.state == Uninitialized {
		if session.board.FirstClick() {
			if err := session.board.PlaceMines(row, col); err != nil {
				return session.state, errors.Wrap(err, "placing mines")
			}

			log.WithFields(logrus.Fields{
				"game":  session.ID(),
				"row":   row,
				"col":   col,
				"mines": session.board.numMines,
			}).Debug("mines placed")
		}
		session.state = InProgress
		session.startedAt = session.now()
	}

	session.afterReveal(cell, cell.Reveal(session.board))
	return session.state, nil
}

// ToggleFlag handles a right click
func (session *Session) ToggleFlag(row, col int) BoardState {
	cell := session.board.CellAt(row, col)
	if cell == nil || !session.CanPlay() {
		return session.state
	}

	cell.ToggleFlag()
	log.WithFields(logrus.Fields{
		"game":    session.ID(),
		"row":     row,
		"col":     col,
		"flagged": cell.isFlagged,
	}).Debug("flag toggled")

	return session.state
}

// Chord handles a middle click: once a revealed number has as many flags
// around it as it has mines, all its other hidden neighbors are revealed
func (session *Session) Chord(row, col int) BoardState {
	cell := session.board.CellAt(row, col)
	if cell == nil || session.state != InProgress || !cell.isRevealed || cell.isMine {
		return session.state
	}

	numFlaggedNeighbors := 0
	for _, neighbor := range session.board.Neighbors(row, col) {
		if neighbor.isFlagged {
			numFlaggedNeighbors++
		}
	}
	if numFlaggedNeighbors != cell.neighborMines {
		return session.state
	}

	for _, neighbor := range session.board.Neighbors(row, col) {
		session.afterReveal(neighbor, neighbor.Reveal(session.board))
		if session.state.IsOver() {
			break
		}
	}
	return session.state
}

// Apply performs an action proposed by a Director
func (session *Session) Apply(action Action) (BoardState, error) {
	switch action.Type {
	case RevealAction:
		return session.Reveal(action.Row, action.Col)
	case FlagAction:
		return session.ToggleFlag(action.Row, action.Col), nil
	case ChordAction:
		return session.Chord(action.Row, action.Col), nil
	default:
		return session.state, errors.Errorf("unknown action %d", action.Type)
	}
}

func (session *Session) afterReveal(cell *Cell, outcome RevealOutcome) {
	switch outcome {
	case MineTriggered:
		session.board.RevealAllMines()
		session.end(Lost, cell)
	case Safe:
		if session.board.CheckWin() {
			session.end(Won, cell)
		}
	}
}

func (session *Session) end(state BoardState, cell *Cell) {
	session.state = state
	session.endedAt = session.now()

	entry := log.WithFields(logrus.Fields{
		"game":    session.ID(),
		"row":     cell.row,
		"col":     cell.col,
		"state":   state,
		"elapsed": session.Elapsed().Round(time.Second),
	})
	entry.Info("game over")
	entry.Debugf("final board:\n%s", session.board.Layout())
}
