package game

import "github.com/gammazero/deque"

type NeighborGetter func(*Cell) []*Cell
type Visitor func(*Cell) bool

// flood walks outward from an already-visited cell. Cells accepted by visit
// are expanded through getNeighbors.
func flood(cell *Cell, visit Visitor, getNeighbors NeighborGetter) {
	var frontier deque.Deque
	frontier.PushBack(cell)

	for frontier.Len() > 0 {
		current := frontier.PopFront().(*Cell)

		for _, neighbor := range getNeighbors(current) {
			if visit(neighbor) {
				frontier.PushBack(neighbor)
			}
		}
	}
}

// cascadeEmpty uncovers the zero-region connected to cell and the numbered
// cells bordering it. cell itself must already be revealed.
func (board *Board) cascadeEmpty(cell *Cell) {
	flood(
		cell,
		func(neighbor *Cell) bool {
			if !neighbor.canCascade() {
				return false
			}
			neighbor.isRevealed = true
			return neighbor.neighborMines == 0
		},
		func(cell *Cell) []*Cell {
			return board.Neighbors(cell.row, cell.col)
		},
	)
}
