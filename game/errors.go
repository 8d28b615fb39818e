package game

import "github.com/pkg/errors"

var (
	// ErrTooManyMines is returned when the configured mines do not fit
	// outside the first click's exclusion zone
	ErrTooManyMines = errors.New("too many mines for board")

	// ErrMinesPlaced is returned when mines are placed a second time
	ErrMinesPlaced = errors.New("mines already placed")

	ErrInvalidPosition = errors.New("invalid position")
	ErrInvalidLayout   = errors.New("invalid board layout")
	ErrInvalidConfig   = errors.New("invalid game config")
)
