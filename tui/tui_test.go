package tui

import (
	"io/ioutil"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/they4kman/gosweep/game"
	"github.com/they4kman/gosweep/ui"
)

func init() {
	logrus.SetOutput(ioutil.Discard)
}

func newTestTerminal(t *testing.T, config game.GameConfig) *Terminal {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 40)
	t.Cleanup(screen.Fini)

	return NewTerminal(screen, ui.NewApp(config, nil))
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func click(term *Terminal, buttons tcell.ButtonMask, x, y int) {
	term.Handle(tcell.NewEventMouse(x, y, buttons, tcell.ModNone))
	term.Handle(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func contentAt(term *Terminal, x, y int) rune {
	r, _, _, _ := term.screen.GetContent(x, y)
	return r
}

func TestMenuEntry(t *testing.T) {
	term := newTestTerminal(t, game.NewGameConfig())

	click(term, tcell.Button1, menuBoxLeft+1, menuFirstRow)
	assert.Equal(t, ui.RowsField, term.app.Form.Active)

	term.Handle(key(tcell.KeyBackspace2))
	term.Handle(key(tcell.KeyBackspace2))
	term.Handle(runeKey('8'))
	term.Handle(key(tcell.KeyTab))
	term.Handle(key(tcell.KeyBackspace))
	term.Handle(key(tcell.KeyBackspace))
	term.Handle(runeKey('9'))
	term.Handle(key(tcell.KeyTab))
	term.Handle(key(tcell.KeyBackspace))
	term.Handle(runeKey('x'))
	assert.Equal(t, [3]string{"8", "9", "4"}, term.app.Form.Values)

	assert.False(t, term.Handle(key(tcell.KeyEnter)))
	require.Equal(t, ui.BoardScreen, term.app.Screen)
	assert.Equal(t, 8, term.app.Session.Board().Rows())
	assert.Equal(t, 9, term.app.Session.Board().Cols())
	assert.Equal(t, 4, term.app.Session.Board().NumMines())
}

func TestMenuRejectsInvalidInput(t *testing.T) {
	term := newTestTerminal(t, game.NewGameConfig())
	term.app.Form.Values = [3]string{"2", "2", "3"}

	term.Handle(key(tcell.KeyEnter))
	term.Draw()

	assert.Equal(t, ui.MenuScreen, term.app.Screen)
	assert.Equal(t, 'I', contentAt(term, menuLeft, menuFirstRow+8))
}

func boardConfig() game.GameConfig {
	config := game.NewGameConfig()
	config.Rows, config.Cols, config.NumMines, config.Seed = 6, 6, 3, 5
	config.SkipMenu = true
	return config
}

func TestBoardClicks(t *testing.T) {
	term := newTestTerminal(t, boardConfig())
	board := term.app.Session.Board()

	click(term, tcell.Button2, 5*cellWidth, panelHeight+5)
	assert.True(t, board.CellAt(5, 5).IsFlagged())

	click(term, tcell.Button1, 0, panelHeight)
	assert.True(t, board.CellAt(0, 0).IsRevealed())
	assert.NotEqual(t, game.Uninitialized, term.app.Session.State())

	// clicking the panel does not touch the board
	click(term, tcell.Button1, 0, 1)
	assert.Equal(t, 1, board.NumFlags())
}

func TestHeldButtonClicksOnce(t *testing.T) {
	term := newTestTerminal(t, boardConfig())
	board := term.app.Session.Board()

	term.Handle(tcell.NewEventMouse(0, panelHeight, tcell.Button2, tcell.ModNone))
	term.Handle(tcell.NewEventMouse(0, panelHeight, tcell.Button2, tcell.ModNone))
	assert.True(t, board.CellAt(0, 0).IsFlagged())
}

func TestResetButton(t *testing.T) {
	term := newTestTerminal(t, boardConfig())

	click(term, tcell.Button1, 21, 0)
	assert.Equal(t, ui.MenuScreen, term.app.Screen)
}

func TestDrawBoard(t *testing.T) {
	term := newTestTerminal(t, boardConfig())
	board := term.app.Session.Board()

	click(term, tcell.Button2, 5*cellWidth, panelHeight+5)
	term.Draw()
	assert.Equal(t, 'T', contentAt(term, 0, 0))
	assert.Equal(t, 'F', contentAt(term, 5*cellWidth+1, panelHeight+5))

	click(term, tcell.Button1, 0, panelHeight)
	term.Draw()
	for _, cell := range board.Cells() {
		_, glyph := cellStyle(cell)
		assert.Equal(t, glyph, contentAt(term, cell.Col()*cellWidth+1, panelHeight+cell.Row()))
	}
}

func TestQuitKeys(t *testing.T) {
	term := newTestTerminal(t, game.NewGameConfig())
	assert.True(t, term.Handle(key(tcell.KeyCtrlC)))
	assert.True(t, term.Handle(key(tcell.KeyEscape)))

	term = newTestTerminal(t, boardConfig())
	assert.False(t, term.Handle(key(tcell.KeyEscape)), "escape leaves the board first")
	assert.Equal(t, ui.MenuScreen, term.app.Screen)

	term = newTestTerminal(t, boardConfig())
	assert.True(t, term.Handle(runeKey('q')))
}

func TestInterruptStepsDirector(t *testing.T) {
	config := boardConfig()
	config.DirectorInterval = time.Millisecond
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	director := &flagDirector{}
	term := NewTerminal(screen, ui.NewApp(config, director))

	term.Handle(tcell.NewEventInterrupt(nil))
	assert.True(t, term.app.Session.Board().CellAt(2, 3).IsFlagged())
}

type flagDirector struct{}

func (flagDirector) Next(session *game.Session) (game.Action, bool) {
	return game.Action{Type: game.FlagAction, Row: 2, Col: 3}, !session.Board().CellAt(2, 3).IsFlagged()
}

func TestLoopQuitsAndStopsTicker(t *testing.T) {
	defer leaktest.Check(t)()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 40)
	term := NewTerminal(screen, ui.NewApp(boardConfig(), nil))

	done := make(chan error, 1)
	go func() {
		done <- term.Loop()
	}()
	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModNone)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not quit")
	}
	screen.Fini()
}
