package tui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/gosweep/game"
	"github.com/they4kman/gosweep/ui"
)

const (
	// each cell takes two terminal columns so the grid looks square
	cellWidth   = 2
	panelHeight = 4
	tick        = 100 * time.Millisecond
)

var (
	styleText     = tcell.StyleDefault
	styleHidden   = tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorBlack)
	styleRevealed = tcell.StyleDefault.Background(tcell.ColorSilver).Foreground(tcell.ColorBlack)
	styleFlag     = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
	styleMine     = tcell.StyleDefault.Background(tcell.ColorRed).Foreground(tcell.ColorBlack)
	styleButton   = tcell.StyleDefault.Background(tcell.ColorRoyalBlue).Foreground(tcell.ColorWhite)
	styleActive   = tcell.StyleDefault.Reverse(true)
	styleError    = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

var numberColors = map[int]tcell.Color{
	1: tcell.ColorBlue,
	2: tcell.ColorGreen,
	3: tcell.ColorRed,
	4: tcell.ColorNavy,
	5: tcell.ColorMaroon,
	6: tcell.ColorTeal,
	7: tcell.ColorBlack,
	8: tcell.ColorGray,
}

// Terminal draws an App on a tcell screen and feeds it mouse and key input
type Terminal struct {
	screen tcell.Screen
	app    *ui.App

	// buttons held at the previous mouse event; tcell reports drags and
	// releases as mouse events too, so clicks are taken on the press edge
	buttons tcell.ButtonMask
}

func NewTerminal(screen tcell.Screen, app *ui.App) *Terminal {
	return &Terminal{screen: screen, app: app}
}

// Run takes over the terminal and plays until the player quits
func Run(config game.GameConfig, director game.Director) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "opening terminal")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "initializing terminal")
	}
	defer screen.Fini()

	screen.EnableMouse()
	screen.SetStyle(styleText)

	return NewTerminal(screen, ui.NewApp(config, director)).Loop()
}

// Loop processes events until quit. A ticker goroutine only posts
// interrupts; the app itself is touched from this goroutine alone.
func (term *Terminal) Loop() error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(tick)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				term.screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	term.Draw()
	for {
		ev := term.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if quit := term.Handle(ev); quit {
			logrus.Info("terminal closed")
			return nil
		}
		term.Draw()
	}
}

// Handle applies one event to the app and reports whether to quit
func (term *Terminal) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		term.screen.Sync()
	case *tcell.EventInterrupt:
		term.app.Step(ev.When())
	case *tcell.EventKey:
		return term.handleKey(ev)
	case *tcell.EventMouse:
		pressed := ev.Buttons() &^ term.buttons
		term.buttons = ev.Buttons()
		x, y := ev.Position()
		term.handleClick(pressed, x, y)
	}
	return false
}

func (term *Terminal) handleKey(ev *tcell.EventKey) bool {
	app := term.app

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEscape:
		if app.Screen == ui.MenuScreen {
			return true
		}
		app.Reset()
	}

	if app.Screen != ui.MenuScreen {
		if ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q') {
			return true
		}
		return false
	}

	switch ev.Key() {
	case tcell.KeyEnter:
		app.Submit()
	case tcell.KeyTab:
		app.Form.Next()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		app.Form.Backspace()
	case tcell.KeyRune:
		app.Form.Type(string(ev.Rune()))
	}
	return false
}

// menu layout, in terminal cells from the top-left corner
const (
	menuLeft     = 2
	menuBoxLeft  = 10
	menuBoxWidth = 8
	menuFirstRow = 3
)

func inputBoxAt(x, y int) int {
	for field := 0; field < len(ui.FieldLabels); field++ {
		if y == menuFirstRow+2*field && x >= menuBoxLeft && x < menuBoxLeft+menuBoxWidth {
			return field
		}
	}
	return -1
}

// resetButton spans the first panel line, after the timer
func resetButtonAt(x, y int) bool {
	return y == 0 && x >= 20 && x < 20+len(ui.ResetLabel)+2
}

// gridPosition maps a terminal cell onto a board cell
func gridPosition(x, y int, board *game.Board) (row, col int, ok bool) {
	if x < 0 || y < panelHeight {
		return 0, 0, false
	}
	row, col = y-panelHeight, x/cellWidth
	return row, col, board.InBounds(row, col)
}

func (term *Terminal) handleClick(pressed tcell.ButtonMask, x, y int) {
	app := term.app
	if pressed == tcell.ButtonNone {
		return
	}

	if app.Screen == ui.MenuScreen {
		if pressed&tcell.Button1 != 0 {
			app.Form.Activate(inputBoxAt(x, y))
		}
		return
	}

	if pressed&tcell.Button1 != 0 && resetButtonAt(x, y) {
		app.Reset()
		return
	}

	row, col, ok := gridPosition(x, y, app.Session.Board())
	if !ok {
		return
	}
	switch {
	case pressed&tcell.Button1 != 0:
		app.Click(ui.LeftButton, row, col)
	case pressed&tcell.Button2 != 0:
		app.Click(ui.RightButton, row, col)
	case pressed&tcell.Button3 != 0:
		app.Click(ui.MiddleButton, row, col)
	}
}

func (term *Terminal) print(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		term.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func (term *Terminal) Draw() {
	term.screen.Clear()
	if term.app.Screen == ui.MenuScreen {
		term.drawMenu()
	} else {
		term.drawBoard()
	}
	term.screen.Show()
}

func (term *Terminal) drawMenu() {
	form := term.app.Form

	term.print(menuLeft, 1, styleText, ui.Title)
	for field, value := range form.Values {
		y := menuFirstRow + 2*field
		term.print(menuLeft, y, styleText, ui.FieldLabels[field])

		style := styleHidden
		if field == form.Active {
			style = styleActive
		}
		term.print(menuBoxLeft, y, style, fmt.Sprintf("%-*s", menuBoxWidth, value))
	}

	term.print(menuLeft, menuFirstRow+7, styleText, "Press Enter to start, Esc to quit")
	if form.Message != "" {
		term.print(menuLeft, menuFirstRow+8, styleError, form.Message)
	}
}

func (term *Terminal) drawBoard() {
	session := term.app.Session

	term.print(0, 0, styleText, ui.TimerText(session.Elapsed()))
	term.print(20, 0, styleButton, " "+ui.ResetLabel+" ")
	term.print(0, 1, styleText, ui.CounterText(session.Remaining()))
	term.print(0, 2, styleError, ui.ResultText(session.State()))

	for _, cell := range session.Board().Cells() {
		x, y := cell.Col()*cellWidth, panelHeight+cell.Row()
		style, glyph := cellStyle(cell)
		term.print(x, y, style, " "+string(glyph))
	}
}

func cellStyle(cell *game.Cell) (tcell.Style, rune) {
	switch state := cell.State(); state {
	case game.Mine:
		return styleMine, '*'
	case game.Flag:
		return styleFlag, 'F'
	case game.Unrevealed:
		return styleHidden, ' '
	case game.Empty:
		return styleRevealed, ' '
	default:
		return styleRevealed.Foreground(numberColors[int(state)]), rune('0' + int(state))
	}
}
