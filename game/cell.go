package game

import (
	"fmt"
)

type Cell struct {
	row, col      int
	neighborMines int

	isMine, isRevealed, isFlagged bool
}

func (cell *Cell) String() string {
	return fmt.Sprintf("Cell(%v, %v)", cell.row, cell.col)
}

func (cell *Cell) Row() int {
	return cell.row
}

func (cell *Cell) Col() int {
	return cell.col
}

func (cell *Cell) Position() Position {
	return Position{Row: cell.row, Col: cell.col}
}

func (cell *Cell) IsMine() bool {
	return cell.isMine
}

func (cell *Cell) IsRevealed() bool {
	return cell.isRevealed
}

func (cell *Cell) IsFlagged() bool {
	return cell.isFlagged
}

// NeighborMines is only meaningful for cells which are not mines
func (cell *Cell) NeighborMines() int {
	return cell.neighborMines
}

// State returns how the cell should be drawn
func (cell *Cell) State() CellState {
	switch {
	case cell.isRevealed && cell.isMine:
		return Mine
	case cell.isRevealed:
		return CellState(cell.neighborMines)
	case cell.isFlagged:
		return Flag
	default:
		return Unrevealed
	}
}

// Reveal uncovers the cell. Flagged and already-revealed cells are left
// alone. Uncovering a cell with no neighboring mines cascades into its
// neighborhood, but never onto a mine.
func (cell *Cell) Reveal(board *Board) RevealOutcome {
	if cell.isFlagged || cell.isRevealed {
		return NoChange
	}

	cell.isRevealed = true

	if cell.isMine {
		return MineTriggered
	}

	if cell.neighborMines == 0 {
		board.cascadeEmpty(cell)
	}
	return Safe
}

func (cell *Cell) ToggleFlag() {
	if !cell.isRevealed {
		cell.isFlagged = !cell.isFlagged
	}
}

// canCascade reports whether flood fill may uncover the cell
func (cell *Cell) canCascade() bool {
	return !cell.isRevealed && !cell.isFlagged && !cell.isMine
}
