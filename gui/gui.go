package gui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"github.com/faiface/pixel/text"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/gosweep/game"
	"github.com/they4kman/gosweep/ui"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	cellWidth      = 30
	panelHeight    = 100
	minWindowWidth = 200
	fps            = 30
	menuWidth      = 600
	menuHeight     = 700
)

var numberColors = map[int]color.Color{
	1: colornames.Blue,
	2: colornames.Green,
	3: colornames.Red,
	4: colornames.Navy,
	5: colornames.Maroon,
	6: colornames.Teal,
	7: colornames.Black,
	8: colornames.Gray,
}

// window is everything Run draws with. Fonts and the window itself live
// exactly as long as Run.
type window struct {
	*pixelgl.Window

	atlas *text.Atlas
	imd   *imdraw.IMDraw
	txt   *text.Text
}

// Run opens the game window and plays until it is closed. It must be called
// from within pixelgl.Run.
func Run(config game.GameConfig, director game.Director) error {
	cfg := pixelgl.WindowConfig{
		Title:  "gosweep",
		Bounds: pixel.R(0, 0, menuWidth, menuHeight),
		VSync:  true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return errors.Wrap(err, "creating window")
	}
	defer win.Destroy()

	atlas := text.NewAtlas(basicfont.Face7x13, text.ASCII)
	w := &window{
		Window: win,
		atlas:  atlas,
		imd:    imdraw.New(nil),
		txt:    text.New(pixel.ZV, atlas),
	}

	app := ui.NewApp(config, director)
	screen := ui.Screen(-1)

	frame := time.NewTicker(time.Second / fps)
	defer frame.Stop()

	for !w.Closed() {
		if app.Screen != screen {
			screen = app.Screen
			w.resize(app)
		}

		switch app.Screen {
		case ui.MenuScreen:
			w.handleMenu(app)
		case ui.BoardScreen:
			w.handleBoard(app)
			app.Step(time.Now())
		}

		// input may have switched screens; draw what is current
		if app.Screen == screen {
			w.Clear(colornames.White)
			w.imd.Clear()
			w.txt.Clear()

			if app.Screen == ui.MenuScreen {
				w.drawMenu(app.Form)
			} else {
				w.drawBoard(app.Session)
			}

			w.imd.Draw(w)
			w.txt.Draw(w, pixel.IM)
		}

		w.Update()
		<-frame.C
	}

	logrus.Info("window closed")
	return nil
}

func (w *window) resize(app *ui.App) {
	var width, height float64 = menuWidth, menuHeight
	if app.Screen == ui.BoardScreen {
		board := app.Session.Board()
		width = math.Max(float64(board.Cols()*cellWidth), minWindowWidth)
		height = float64(board.Rows()*cellWidth + panelHeight)
	}
	w.SetBounds(pixel.R(0, 0, width, height))
}

// rect converts a rectangle given from the top-left corner, as the layout
// is described, to pixel's bottom-left based coordinates
func (w *window) rect(x, y, width, height float64) pixel.Rect {
	top := w.Bounds().H()
	return pixel.R(x, top-y-height, x+width, top-y)
}

// gridPosition maps a point in the window onto a board cell
func (w *window) gridPosition(pos pixel.Vec, board *game.Board) (row, col int, ok bool) {
	fromTop := w.Bounds().H() - panelHeight - pos.Y
	if fromTop < 0 || pos.X < 0 {
		return 0, 0, false
	}
	row = int(math.Floor(fromTop / cellWidth))
	col = int(math.Floor(pos.X / cellWidth))
	return row, col, board.InBounds(row, col)
}

func (w *window) inputBox(field int) pixel.Rect {
	return w.rect(200, float64(250+50*field), 100, 36)
}

func (w *window) resetButton(board *game.Board) pixel.Rect {
	width := math.Max(float64(board.Cols()*cellWidth), minWindowWidth)
	return w.rect(width-100, 20, 80, 40)
}

func (w *window) handleMenu(app *ui.App) {
	form := app.Form

	if w.JustPressed(pixelgl.MouseButtonLeft) {
		form.Activate(-1)
		for field := range form.Values {
			if w.inputBox(field).Contains(w.MousePosition()) {
				form.Activate(field)
				break
			}
		}
	}

	form.Type(w.Typed())

	if w.JustPressed(pixelgl.KeyBackspace) || w.Repeated(pixelgl.KeyBackspace) {
		form.Backspace()
	}
	if w.JustPressed(pixelgl.KeyTab) {
		form.Next()
	}
	if w.JustPressed(pixelgl.KeyEnter) || w.JustPressed(pixelgl.KeyKPEnter) {
		app.Submit()
	}
}

func (w *window) handleBoard(app *ui.App) {
	board := app.Session.Board()

	if w.JustPressed(pixelgl.KeyEscape) {
		app.Reset()
		return
	}

	if w.JustPressed(pixelgl.MouseButtonLeft) && w.resetButton(board).Contains(w.MousePosition()) {
		app.Reset()
		return
	}

	row, col, ok := w.gridPosition(w.MousePosition(), board)
	if !ok {
		return
	}

	for button, uiButton := range map[pixelgl.Button]ui.MouseButton{
		pixelgl.MouseButtonLeft:   ui.LeftButton,
		pixelgl.MouseButtonRight:  ui.RightButton,
		pixelgl.MouseButtonMiddle: ui.MiddleButton,
	} {
		if w.JustPressed(button) {
			app.Click(uiButton, row, col)
		}
	}
}

func (w *window) label(pos pixel.Vec, c color.Color, s string) {
	w.txt.Dot = pos
	w.txt.Color = c
	fmt.Fprint(w.txt, s)
}

func (w *window) fill(r pixel.Rect, c color.Color) {
	w.imd.Color = c
	w.imd.Push(r.Min, r.Max)
	w.imd.Rectangle(0)
}

func (w *window) outline(r pixel.Rect, c color.Color, thickness float64) {
	w.imd.Color = c
	w.imd.Push(r.Min, r.Max)
	w.imd.Rectangle(thickness)
}

func (w *window) drawMenu(form *ui.EntryForm) {
	top := w.Bounds().H()

	w.label(pixel.V(250, top-110), colornames.Black, ui.Title)

	for field, value := range form.Values {
		box := w.inputBox(field)

		w.label(pixel.V(100, box.Min.Y+12), colornames.Black, ui.FieldLabels[field])

		border := colornames.Dimgray
		if field == form.Active {
			border = colornames.Royalblue
		}
		w.outline(box, border, 2)
		w.label(pixel.V(box.Min.X+8, box.Min.Y+12), colornames.Black, value)
	}

	w.label(pixel.V(200, top-460), colornames.Black, "Press Enter to start")
	if form.Message != "" {
		w.label(pixel.V(200, top-490), colornames.Red, form.Message)
	}
}

func (w *window) drawBoard(session *game.Session) {
	board := session.Board()
	top := w.Bounds().H()
	width := w.Bounds().W()

	// panel
	w.fill(pixel.R(0, top-panelHeight, width, top), colornames.Lightgray)
	w.label(pixel.V(10, top-25), colornames.Black, ui.TimerText(session.Elapsed()))
	w.label(pixel.V(10, top-45), colornames.Black, ui.CounterText(session.Remaining()))

	reset := w.resetButton(board)
	w.fill(reset, colornames.Royalblue)
	w.label(pixel.V(reset.Min.X+22, reset.Min.Y+16), colornames.White, ui.ResetLabel)

	if result := ui.ResultText(session.State()); result != "" {
		w.label(pixel.V(10, top-75), colornames.Red, result)
	}

	for _, cell := range board.Cells() {
		r := w.rect(
			float64(cell.Col()*cellWidth),
			float64(panelHeight+cell.Row()*cellWidth),
			cellWidth, cellWidth,
		)
		labelPos := pixel.V(r.Min.X+11, r.Min.Y+10)

		switch state := cell.State(); state {
		case game.Mine:
			w.fill(r, colornames.Red)
			w.label(labelPos, colornames.Black, "M")
		case game.Flag:
			w.fill(r, colornames.Yellow)
			w.label(labelPos, colornames.Black, "F")
		case game.Unrevealed:
			w.fill(r, colornames.Dimgray)
		default:
			w.fill(r, colornames.Lightgray)
			if state != game.Empty {
				w.label(labelPos, numberColors[int(state)], fmt.Sprint(int(state)))
			}
		}
		w.outline(r, colornames.Black, 1)
	}
}
