package game

import (
	"math/rand"
	"strings"

	"github.com/pkg/errors"
)

// Layout characters, one per cell:
//
//	#  hidden        f  flagged        .  revealed, no neighboring mines
//	O  hidden mine   F  flagged mine   *  revealed mine
//	1-8 revealed, with that many neighboring mines
func (cell *Cell) serialize() byte {
	switch {
	case cell.isMine:
		switch {
		case cell.isRevealed:
			return '*'
		case cell.isFlagged:
			return 'F'
		default:
			return 'O'
		}
	case cell.isFlagged:
		return 'f'
	case cell.isRevealed:
		if cell.neighborMines == 0 {
			return '.'
		}
		return byte('0' + cell.neighborMines)
	default:
		return '#'
	}
}

// deserialize applies a layout character to a fresh cell. Mines have
// already been placed by the time this runs.
func (cell *Cell) deserialize(c byte) bool {
	switch {
	case c == '*':
		cell.isRevealed = true
	case c == 'F' || c == 'f':
		cell.isFlagged = true
	case c == '.' || (c >= '1' && c <= '8'):
		cell.isRevealed = true
	case c == 'O' || c == '#':
	default:
		return false
	}
	return true
}

func isMineChar(c byte) bool {
	return c == '*' || c == 'F' || c == 'O'
}

// Layout renders the board, one line per row
func (board *Board) Layout() string {
	var builder strings.Builder
	for row := range board.cells {
		if row > 0 {
			builder.WriteByte('\n')
		}
		for col := range board.cells[row] {
			builder.WriteByte(board.cells[row][col].serialize())
		}
	}
	return builder.String()
}

// ParseLayout builds a board from its text layout. Leading and trailing
// blank space around the layout and around each row is ignored. Mines are
// placed as given, so the returned board is past its first click; numbers
// in the layout are recomputed rather than trusted.
func ParseLayout(layout string, rng *rand.Rand) (*Board, error) {
	lines := strings.Split(strings.TrimSpace(layout), "\n")
	rows := make([]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, strings.TrimSpace(line))
	}

	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Wrap(ErrInvalidLayout, "empty layout")
	}

	cols := len(rows[0])
	var mines []Position
	for r, row := range rows {
		if len(row) != cols {
			return nil, errors.Wrapf(ErrInvalidLayout, "row %d has %d cells, expected %d", r, len(row), cols)
		}
		for c := 0; c < cols; c++ {
			if isMineChar(row[c]) {
				mines = append(mines, Position{Row: r, Col: c})
			}
		}
	}

	board := NewBoard(len(rows), cols, len(mines), rng)
	if err := board.PlaceMinesAt(mines); err != nil {
		return nil, err
	}

	for r, row := range rows {
		for c := 0; c < cols; c++ {
			if !board.cells[r][c].deserialize(row[c]) {
				return nil, errors.Wrapf(ErrInvalidLayout, "unknown cell %q at (%d, %d)", row[c], r, c)
			}
		}
	}

	return board, nil
}
