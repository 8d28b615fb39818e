package ui

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/gosweep/game"
)

const (
	RowsField = iota
	ColsField
	MinesField
	numFields
)

var FieldLabels = [numFields]string{"Rows: ", "Cols: ", "Mines: "}

var fieldNames = [numFields]string{"rows", "cols", "mines"}

// maxFieldLength keeps entered numbers well inside int range
const maxFieldLength = 4

// EntryForm holds the text of the three numeric boxes of the entry screen
type EntryForm struct {
	Values [numFields]string
	// Index of the box receiving keystrokes, -1 for none
	Active int
	// Shown under the boxes after a rejected submit
	Message string
}

func NewEntryForm(config game.GameConfig) *EntryForm {
	return &EntryForm{
		Values: [numFields]string{
			strconv.Itoa(config.Rows),
			strconv.Itoa(config.Cols),
			strconv.Itoa(config.NumMines),
		},
		Active: -1,
	}
}

// Activate focuses a box; an out-of-range index clears the focus
func (form *EntryForm) Activate(field int) {
	if field < 0 || field >= numFields {
		form.Active = -1
		return
	}
	form.Active = field
}

// Next moves focus to the following box, wrapping around
func (form *EntryForm) Next() {
	form.Active = (form.Active + 1) % numFields
}

// Type appends the digits of text to the active box; anything else is dropped
func (form *EntryForm) Type(text string) {
	if form.Active < 0 {
		return
	}
	for _, r := range text {
		if r >= '0' && r <= '9' && len(form.Values[form.Active]) < maxFieldLength {
			form.Values[form.Active] += string(r)
		}
	}
}

func (form *EntryForm) Backspace() {
	if form.Active < 0 {
		return
	}
	if value := form.Values[form.Active]; len(value) > 0 {
		form.Values[form.Active] = value[:len(value)-1]
	}
}

// Submit parses the boxes into a copy of base. A rejected entry leaves a
// message on the form and is not fatal.
func (form *EntryForm) Submit(base game.GameConfig) (game.GameConfig, error) {
	var numbers [numFields]int
	for field, value := range form.Values {
		number, err := strconv.Atoi(value)
		if err != nil {
			err = errors.Wrapf(game.ErrInvalidConfig, "%s %q is not a number", fieldNames[field], value)
			form.reject(err)
			return base, err
		}
		numbers[field] = number
	}

	config := base
	config.Rows, config.Cols, config.NumMines = numbers[RowsField], numbers[ColsField], numbers[MinesField]
	if err := config.Validate(); err != nil {
		form.reject(err)
		return base, err
	}

	form.Message = ""
	return config, nil
}

func (form *EntryForm) reject(err error) {
	logrus.WithFields(logrus.Fields{
		"rows":  form.Values[RowsField],
		"cols":  form.Values[ColsField],
		"mines": form.Values[MinesField],
	}).WithError(err).Warn("invalid input")
	form.Message = "Invalid input!"
}
