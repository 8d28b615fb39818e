package game

import "fmt"

type ActionType int

const (
	RevealAction ActionType = iota
	FlagAction
	ChordAction
)

// Action is a single move on the board, as a click would produce
type Action struct {
	Type     ActionType
	Row, Col int
}

func (action Action) String() string {
	var name string
	switch action.Type {
	case RevealAction:
		name = "reveal"
	case FlagAction:
		name = "flag"
	case ChordAction:
		name = "chord"
	default:
		name = "unknown"
	}
	return fmt.Sprintf("%s(%d, %d)", name, action.Row, action.Col)
}

// Director plays the game in place of a human
type Director interface {
	/**
	 * Propose the next action for the session, or false if there is none
	 */
	Next(*Session) (Action, bool)
}
