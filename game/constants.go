package game

type CellState int
type BoardState int

const (
	Unrevealed CellState = iota - 1
	Empty
	Number1
	Number2
	Number3
	Number4
	Number5
	Number6
	Number7
	Number8
	Flag
	Mine
)

var CellStates = []CellState{
	Unrevealed,
	Empty,
	Number1,
	Number2,
	Number3,
	Number4,
	Number5,
	Number6,
	Number7,
	Number8,
	Flag,
	Mine,
}

const (
	Uninitialized BoardState = iota
	InProgress
	Won
	Lost
)

func (state BoardState) String() string {
	switch state {
	case Uninitialized:
		return "uninitialized"
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// IsOver reports whether no further moves are accepted
func (state BoardState) IsOver() bool {
	return state == Won || state == Lost
}

// RevealOutcome is the result of a single reveal request
type RevealOutcome int

const (
	NoChange RevealOutcome = iota
	Safe
	MineTriggered
)

func (outcome RevealOutcome) String() string {
	switch outcome {
	case NoChange:
		return "no change"
	case Safe:
		return "safe"
	case MineTriggered:
		return "mine triggered"
	default:
		return "unknown"
	}
}
