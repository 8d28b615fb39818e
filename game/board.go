package game

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/they4kman/gosweep/util/collections"
)

type Position struct {
	Row, Col int
}

type Board struct {
	rows, cols int // in number of cells
	numMines   int
	cells      [][]Cell

	mineLocations []Position
	firstClick    bool

	rand *rand.Rand
}

// NewBoard allocates a rows x cols board of hidden cells. Mines are not
// placed until PlaceMines is called with the first click. A nil rng seeds
// a fresh source from the clock.
func NewBoard(rows, cols, numMines int, rng *rand.Rand) *Board {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	board := &Board{
		rows:       rows,
		cols:       cols,
		numMines:   numMines,
		cells:      make([][]Cell, rows),
		firstClick: true,
		rand:       rng,
	}

	for row := 0; row < rows; row++ {
		board.cells[row] = make([]Cell, cols)
		for col := 0; col < cols; col++ {
			cell := &board.cells[row][col]
			cell.row, cell.col = row, col
		}
	}

	return board
}

func (board *Board) Rows() int {
	return board.rows
}

func (board *Board) Cols() int {
	return board.cols
}

func (board *Board) NumMines() int {
	return board.numMines
}

func (board *Board) NumCells() int {
	return board.rows * board.cols
}

// FirstClick reports whether mines are still waiting for the first reveal
func (board *Board) FirstClick() bool {
	return board.firstClick
}

// MineLocations returns a copy of the positions holding mines
func (board *Board) MineLocations() []Position {
	locations := make([]Position, len(board.mineLocations))
	copy(locations, board.mineLocations)
	return locations
}

func (board *Board) Rand() *rand.Rand {
	return board.rand
}

func (board *Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < board.rows && col < board.cols
}

func (board *Board) CellAt(row, col int) *Cell {
	if board.InBounds(row, col) {
		return &board.cells[row][col]
	}
	return nil
}

// Cells returns every cell in row-major order
func (board *Board) Cells() []*Cell {
	cells := make([]*Cell, 0, board.NumCells())
	for row := range board.cells {
		for col := range board.cells[row] {
			cells = append(cells, &board.cells[row][col])
		}
	}
	return cells
}

// neighborhood returns the positions of the 3x3 block centered on
// (row, col), clipped to the board. The center is included.
func (board *Board) neighborhood(row, col int) []Position {
	positions := make([]Position, 0, 9)
	for r := row - 1; r <= row+1; r++ {
		for c := col - 1; c <= col+1; c++ {
			if board.InBounds(r, c) {
				positions = append(positions, Position{Row: r, Col: c})
			}
		}
	}
	return positions
}

// Neighbors returns the cells surrounding (row, col), diagonals included,
// clipped to the board
func (board *Board) Neighbors(row, col int) []*Cell {
	neighbors := make([]*Cell, 0, 8)
	for _, pos := range board.neighborhood(row, col) {
		if pos.Row == row && pos.Col == col {
			continue
		}
		neighbors = append(neighbors, &board.cells[pos.Row][pos.Col])
	}
	return neighbors
}

// PlaceMines scatters the board's mines uniformly at random, keeping the
// clicked cell and its neighbors clear
func (board *Board) PlaceMines(excludeRow, excludeCol int) error {
	if !board.firstClick {
		return ErrMinesPlaced
	}
	if !board.InBounds(excludeRow, excludeCol) {
		return errors.Wrapf(ErrInvalidPosition, "first click (%d, %d) outside %dx%d board",
			excludeRow, excludeCol, board.rows, board.cols)
	}

	excluded := collections.NewSet(board.neighborhood(excludeRow, excludeCol)...)

	candidates := make([]Position, 0, board.NumCells())
	for row := 0; row < board.rows; row++ {
		for col := 0; col < board.cols; col++ {
			pos := Position{Row: row, Col: col}
			if !excluded.Contains(pos) {
				candidates = append(candidates, pos)
			}
		}
	}

	if board.numMines < 0 || board.numMines > len(candidates) {
		return errors.Wrapf(ErrTooManyMines, "%d mines requested, %d cells available around first click (%d, %d)",
			board.numMines, len(candidates), excludeRow, excludeCol)
	}

	board.rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	return board.PlaceMinesAt(candidates[:board.numMines])
}

// PlaceMinesAt lays mines on exactly the given positions. The number of
// positions must match the board's mine count.
func (board *Board) PlaceMinesAt(positions []Position) error {
	if !board.firstClick {
		return ErrMinesPlaced
	}
	if len(positions) != board.numMines {
		return errors.Wrapf(ErrTooManyMines, "%d positions given for %d mines", len(positions), board.numMines)
	}

	seen := collections.NewSet[Position]()
	for _, pos := range positions {
		if !board.InBounds(pos.Row, pos.Col) {
			return errors.Wrapf(ErrInvalidPosition, "mine (%d, %d) outside %dx%d board",
				pos.Row, pos.Col, board.rows, board.cols)
		}
		if seen.Contains(pos) {
			return errors.Wrapf(ErrInvalidPosition, "duplicate mine at (%d, %d)", pos.Row, pos.Col)
		}
		seen.Add(pos)
	}

	board.mineLocations = make([]Position, len(positions))
	copy(board.mineLocations, positions)
	for _, pos := range positions {
		board.cells[pos.Row][pos.Col].isMine = true
	}
	board.firstClick = false

	board.CalculateNeighborMines()
	return nil
}

// CalculateNeighborMines stores the surrounding mine count on every safe cell
func (board *Board) CalculateNeighborMines() {
	for row := range board.cells {
		for col := range board.cells[row] {
			cell := &board.cells[row][col]
			if !cell.isMine {
				cell.neighborMines = board.CountMinesAround(row, col)
			}
		}
	}
}

// CountMinesAround counts mines among the up to 8 cells surrounding
// (row, col); the cell itself is not counted
func (board *Board) CountMinesAround(row, col int) int {
	count := 0
	for _, neighbor := range board.Neighbors(row, col) {
		if neighbor.isMine {
			count++
		}
	}
	return count
}

// RevealAllMines uncovers every mine, as shown after a loss
func (board *Board) RevealAllMines() {
	for _, pos := range board.mineLocations {
		board.cells[pos.Row][pos.Col].isRevealed = true
	}
}

// CheckWin reports whether every safe cell has been revealed. Flags are
// not considered.
func (board *Board) CheckWin() bool {
	for row := range board.cells {
		for col := range board.cells[row] {
			cell := &board.cells[row][col]
			if !cell.isMine && !cell.isRevealed {
				return false
			}
		}
	}
	return true
}

func (board *Board) NumRevealed() int {
	count := 0
	for _, cell := range board.Cells() {
		if cell.isRevealed {
			count++
		}
	}
	return count
}

func (board *Board) NumFlags() int {
	count := 0
	for _, cell := range board.Cells() {
		if cell.isFlagged {
			count++
		}
	}
	return count
}

// ExclusionZoneSize is the largest number of cells a first click can keep
// clear of mines on a rows x cols board
func ExclusionZoneSize(rows, cols int) int {
	return minInt(rows, 3) * minInt(cols, 3)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
