package main

import (
	"connectn/config"
	"connectn/engine"
	"connectn/experiments"
	"connectn/game"
	"connectn/gamemaster"
	"connectn/meta"
	"connectn/searcher"
	"connectn/searcher/agent"
	"connectn/tui"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
)

const usage = `usage: connectn <command> [flags]

commands:
  play    play against the computer (default)
  watch   let the computer play itself
  arena   run an experiment between configured agents
`

func main() {
	command, args := "play", os.Args[1:]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		command, args = args[0], args[1:]
	}

	var err error
	switch command {
	case "play":
		err = runPlay(args)
	case "watch":
		err = runWatch(args)
	case "arena":
		err = runArena(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Msgf("%s failed", command)
		os.Exit(1)
	}
}

// parseConfig loads the optional config file, then applies the flags that
// were set on the command line.
func parseConfig(fs *flag.FlagSet, args []string) (config.Config, error) {
	path := fs.String("config", "", "YAML config file")
	rows := fs.Int("rows", meta.ROWS, "Board height")
	columns := fs.Int("cols", meta.COLUMNS, "Board width")
	toWin := fs.Int("towin", meta.TO_WIN, "Discs in a line needed to win")
	iterations := fs.Int("iterations", meta.ITERATIONS, "Search iterations per move")
	goroutines := fs.Int("goroutines", 1, "Independent search trees per move")
	seed := fs.Uint64("seed", 0, "Search seed, 0 seeds from the clock")
	human := fs.String("human", "yellow", "Colour played by the human: yellow moves first, red second")
	logLevel := fs.String("log-level", meta.LOG_LEVEL, "Log level")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	c := config.Default()
	if *path != "" {
		loaded, err := config.Load(*path)
		if err != nil {
			return c, err
		}
		c = loaded
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rows":
			c.Rows = *rows
		case "cols":
			c.Columns = *columns
		case "towin":
			c.ToWin = *toWin
		case "iterations":
			c.Iterations = *iterations
		case "goroutines":
			c.Goroutines = *goroutines
		case "seed":
			c.Seed = *seed
		case "human":
			c.Human = *human
		case "log-level":
			c.LogLevel = *logLevel
		}
	})

	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, config.SetupLogging(c.LogLevel, os.Stderr)
}

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	plain := fs.Bool("plain", false, "Read columns line by line instead of the interactive board")
	c, err := parseConfig(fs, args)
	if err != nil {
		return err
	}

	board, err := c.NewBoard()
	if err != nil {
		return err
	}
	session, err := gamemaster.NewSession(board, game.First)
	if err != nil {
		return err
	}
	human, err := c.HumanPlayer()
	if err != nil {
		return err
	}
	mcts, err := searcher.NewMCTS(c.SearchOptions()...)
	if err != nil {
		return err
	}
	computer := agent.NewEvaluationAgent(mcts)

	if !*plain {
		result, over, err := tui.Play(session, computer, human, os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		if over {
			fmt.Println(result)
		}
		return nil
	}

	agents := make([]agent.Agent, 2)
	agents[human] = agent.NewHumanAgent("you", os.Stdin, os.Stdout)
	agents[human.Opponent()] = computer
	profile := termenv.EnvColorProfile()
	fmt.Print(tui.RenderBoard(session.Board(), profile))

	result, _, _, err := engine.LocalEngine(agents, session, func(update gamemaster.Update, board *game.Board) {
		fmt.Printf("\n%s played column %d\n%s", update.Player, update.Move+1, tui.RenderBoard(board, profile))
	}).Run()
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	c, err := parseConfig(fs, args)
	if err != nil {
		return err
	}

	board, err := c.NewBoard()
	if err != nil {
		return err
	}
	session, err := gamemaster.NewSession(board, game.First)
	if err != nil {
		return err
	}
	agents := make([]agent.Agent, 2)
	for i := range agents {
		mcts, err := searcher.NewMCTS(c.SearchOptions()...)
		if err != nil {
			return err
		}
		agents[i] = agent.NewEvaluationAgent(mcts)
	}

	profile := termenv.EnvColorProfile()
	result, gameMetric, _, err := engine.LocalEngine(agents, session, func(update gamemaster.Update, board *game.Board) {
		fmt.Printf("move %d: %s played column %d\n%s\n", update.Step, update.Player, update.Move+1, tui.RenderBoard(board, profile))
	}).Run()
	if err != nil {
		return err
	}
	fmt.Printf("%s after %d moves in %s\n", result, gameMetric.TotalMoves, gameMetric.Duration)
	return nil
}

func runArena(args []string) error {
	fs := flag.NewFlagSet("arena", flag.ExitOnError)
	setupPath := fs.String("setup", "", "YAML experiment setup, defaults to the built-in arena")
	throughput := fs.Bool("throughput", false, "Compare search throughput across goroutine counts")
	games := fs.Int("games", meta.ARENA_GAMES, "Games per matchup")
	iterations := fs.Int("iterations", 2000, "Iterations per move for -throughput")
	outputDir := fs.String("out", meta.OUTPUT_DIR, "Directory for experiment records, empty to skip writing")
	logLevel := fs.String("log-level", meta.LOG_LEVEL, "Log level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := config.SetupLogging(*logLevel, os.Stderr); err != nil {
		return err
	}

	var setup experiments.Setup
	switch {
	case *throughput:
		setup = experiments.ThroughputSetup(experiments.ThroughputGoroutines, *iterations, *games, *outputDir)
	case *setupPath != "":
		loaded, err := experiments.LoadSetup(*setupPath)
		if err != nil {
			return err
		}
		setup = loaded
	default:
		setup = experiments.DefaultSetup()
		setup.Games = *games
		setup.OutputDir = *outputDir
	}

	report, err := experiments.Run(setup)
	if err != nil {
		return err
	}

	for _, s := range report.Summaries {
		fmt.Printf("agent %d vs agent %d: %d wins, %d losses, %d draws\n", s.Agent1, s.Agent2, s.Wins1, s.Wins2, s.Draws)
	}
	if *throughput {
		perGoroutines := experiments.Throughput(setup, report)
		counts := make([]int, 0, len(perGoroutines))
		for g := range perGoroutines {
			counts = append(counts, g)
		}
		sort.Ints(counts)
		for _, g := range counts {
			fmt.Printf("%2d goroutines: %.0f episodes/s\n", g, perGoroutines[g])
		}
	}
	if report.Dir != "" {
		fmt.Printf("records written to %s\n", report.Dir)
	}
	return nil
}
