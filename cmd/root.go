package cmd

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/faiface/pixel/pixelgl"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/gosweep/director/constraint"
	"github.com/they4kman/gosweep/director/random"
	"github.com/they4kman/gosweep/game"
	"github.com/they4kman/gosweep/gui"
	"github.com/they4kman/gosweep/tui"
)

var gameConfig = game.NewGameConfig()
var configPath string

var rootCmd = &cobra.Command{
	Use:   "gosweep",
	Short: "Play Minesweeper in a window or a terminal",
	Long: `gosweep is a Minesweeper game. Pick the board size and mine
count on the entry screen, then left-click to reveal, right-click to flag
and middle-click a number to clear around it.

Run with no arguments to play in a window
	gosweep

Play in the terminal instead
	gosweep --frontend tui

Let the computer play for you
	gosweep --director constraint
`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		closeLog, err := setupLogging(config)
		if err != nil {
			return err
		}
		defer closeLog()

		director, err := newDirector(config)
		if err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"frontend": config.Frontend,
			"director": config.Director,
			"seed":     config.Seed,
		}).Debug("starting")

		switch config.Frontend {
		case "gui":
			var runErr error
			pixelgl.Run(func() {
				runErr = gui.Run(config, director)
			})
			return runErr
		case "tui":
			return tui.Run(config, director)
		default:
			return errors.Errorf("unknown frontend %q", config.Frontend)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadConfig layers the config file under the flags given on the command
// line. Only flags actually set override the file.
func loadConfig(cmd *cobra.Command) (game.GameConfig, error) {
	config := game.NewGameConfig()
	if configPath != "" {
		if err := game.LoadGameConfig(configPath, &config); err != nil {
			return config, err
		}
	}

	flags := cmd.Flags()
	overrides := map[string]func(){
		"height":            func() { config.Rows = gameConfig.Rows },
		"width":             func() { config.Cols = gameConfig.Cols },
		"mines":             func() { config.NumMines = gameConfig.NumMines },
		"seed":              func() { config.Seed = gameConfig.Seed },
		"frontend":          func() { config.Frontend = gameConfig.Frontend },
		"skip-menu":         func() { config.SkipMenu = gameConfig.SkipMenu },
		"director":          func() { config.Director = gameConfig.Director },
		"director-interval": func() { config.DirectorInterval = gameConfig.DirectorInterval },
		"log-level":         func() { config.LogLevel = gameConfig.LogLevel },
		"log-file":          func() { config.LogFile = gameConfig.LogFile },
	}
	for name, override := range overrides {
		if flags.Changed(name) {
			override()
		}
	}

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// setupLogging points logrus at the configured destination. The terminal
// frontend owns the screen, so it logs nowhere unless given a file.
func setupLogging(config game.GameConfig) (func(), error) {
	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "parsing log level")
	}
	logrus.SetLevel(level)

	var out io.Writer = os.Stderr
	closeLog := func() {}
	switch {
	case config.LogFile != "":
		file, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, errors.Wrap(err, "opening log file")
		}
		out = file
		closeLog = func() { file.Close() }
	case config.Frontend == "tui":
		out = ioutil.Discard
	}
	logrus.SetOutput(out)
	game.SetLogger(logrus.StandardLogger())

	return closeLog, nil
}

func newDirector(config game.GameConfig) (game.Director, error) {
	switch config.Director {
	case "":
		return nil, nil
	case "random":
		return random.New(config.Rand()), nil
	case "constraint":
		return constraint.New(random.New(config.Rand())), nil
	default:
		return nil, errors.Errorf("unknown director %q", config.Director)
	}
}

// choiceValue is a string flag restricted to a fixed set of names
type choiceValue struct {
	value   *string
	choices []string
}

func newChoiceValue(val string, p *string, choices ...string) *choiceValue {
	*p = val
	return &choiceValue{value: p, choices: choices}
}

func (choice *choiceValue) String() string {
	return *choice.value
}

func (choice *choiceValue) Set(value string) error {
	for _, name := range choice.choices {
		if name == value {
			*choice.value = value
			return nil
		}
	}
	return errors.Errorf("must be one of %q", choice.choices)
}

func (choice *choiceValue) Type() string {
	return "string"
}

func init() {
	// Define our root -help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	rootCmd.Flags().Bool("help", false, "Help for this command")

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML file with game settings")
	rootCmd.Flags().IntVarP(&gameConfig.Cols, "width", "w", gameConfig.Cols, "Width of game board, in cells")
	rootCmd.Flags().IntVarP(&gameConfig.Rows, "height", "h", gameConfig.Rows, "Height of game board, in cells")
	rootCmd.Flags().IntVarP(&gameConfig.NumMines, "mines", "m", gameConfig.NumMines, "Number of mines to place in the game board")
	rootCmd.Flags().Int64VarP(&gameConfig.Seed, "seed", "s", 0, "Seed for mine placement (0 picks one from the clock)")
	rootCmd.Flags().VarP(newChoiceValue(gameConfig.Frontend, &gameConfig.Frontend, "gui", "tui"), "frontend", "f", `Where to play:
gui: a window
tui: the terminal, with mouse support`)
	rootCmd.Flags().BoolVar(&gameConfig.SkipMenu, "skip-menu", false, "Start playing right away with the configured board")
	rootCmd.Flags().VarP(newChoiceValue("", &gameConfig.Director, "", "random", "constraint"), "director", "d", `Make the computer play:
random: reveal hidden cells at random
constraint: deduce safe cells and mines from the numbers, guessing only when stuck`)
	rootCmd.Flags().DurationVar(&gameConfig.DirectorInterval, "director-interval", gameConfig.DirectorInterval, "Time between two moves of the director")
	rootCmd.Flags().Var(newChoiceValue(gameConfig.LogLevel, &gameConfig.LogLevel, "debug", "info", "warn", "error"), "log-level", "Logging level")
	rootCmd.Flags().StringVar(&gameConfig.LogFile, "log-file", "", "Write logs to this file instead of stderr")
}
