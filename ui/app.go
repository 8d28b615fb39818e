package ui

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/gosweep/game"
)

type Screen int

const (
	MenuScreen Screen = iota
	BoardScreen
)

type MouseButton int

const (
	LeftButton MouseButton = iota
	RightButton
	MiddleButton
)

// App is the frontend-independent part of the game: which screen is up,
// the entry form, the running session and its optional director. Frontends
// translate their input into App calls and draw what App holds.
type App struct {
	Config   game.GameConfig
	Form     *EntryForm
	Session  *game.Session
	Screen   Screen
	Director game.Director

	lastDirectorStep time.Time
}

func NewApp(config game.GameConfig, director game.Director) *App {
	app := &App{
		Config:   config,
		Form:     NewEntryForm(config),
		Screen:   MenuScreen,
		Director: director,
	}
	if config.SkipMenu {
		app.startGame(config)
	}
	return app
}

// Submit starts a game with the values of the entry form. Rejected values
// keep the menu up.
func (app *App) Submit() bool {
	config, err := app.Form.Submit(app.Config)
	if err != nil {
		return false
	}
	app.startGame(config)
	return true
}

func (app *App) startGame(config game.GameConfig) {
	app.Config = config
	app.Session = config.NewSession()
	app.Screen = BoardScreen
	app.lastDirectorStep = time.Time{}

	logrus.WithFields(logrus.Fields{
		"game":  app.Session.ID(),
		"rows":  config.Rows,
		"cols":  config.Cols,
		"mines": config.NumMines,
	}).Info("new game")
}

// Reset goes back to the entry screen; the next game is seeded from the
// one just played
func (app *App) Reset() {
	if app.Session != nil {
		app.Config = app.Config.Next(app.Session)
	}
	app.Session = nil
	app.Form = NewEntryForm(app.Config)
	app.Screen = MenuScreen
}

// Click forwards a mouse click on a board cell to the session
func (app *App) Click(button MouseButton, row, col int) {
	if app.Screen != BoardScreen {
		return
	}

	switch button {
	case LeftButton:
		app.apply(game.Action{Type: game.RevealAction, Row: row, Col: col})
	case RightButton:
		app.apply(game.Action{Type: game.FlagAction, Row: row, Col: col})
	case MiddleButton:
		app.apply(game.Action{Type: game.ChordAction, Row: row, Col: col})
	}
}

// Step lets the director play one move once its interval has passed
func (app *App) Step(now time.Time) {
	if app.Screen != BoardScreen || app.Director == nil || !app.Session.CanPlay() {
		return
	}
	if now.Sub(app.lastDirectorStep) < app.Config.DirectorInterval {
		return
	}
	app.lastDirectorStep = now

	if action, ok := app.Director.Next(app.Session); ok {
		app.apply(action)
	}
}

func (app *App) apply(action game.Action) {
	if _, err := app.Session.Apply(action); err != nil {
		// only reachable with a config that skipped validation
		logrus.WithError(err).WithField("action", action).Error("move rejected")
		app.Reset()
		app.Form.Message = "Invalid input!"
	}
}

func TimerText(elapsed time.Duration) string {
	return fmt.Sprintf("Time: %d", int(elapsed/time.Second))
}

// CounterText pads the count to three digits; once flags outnumber mines
// the plain negative number is shown
func CounterText(remaining int) string {
	if remaining < 0 {
		return fmt.Sprintf("Mines: %d", remaining)
	}
	return fmt.Sprintf("Mines: %03d", remaining)
}

func ResultText(state game.BoardState) string {
	switch state {
	case game.Won:
		return "You Win!"
	case game.Lost:
		return "Game Over!"
	default:
		return ""
	}
}

// ResetLabel is the caption of the button leading back to the entry screen
const ResetLabel = "Reset"

// Title of the entry screen
const Title = "Minesweeper"
