package experiments

import (
	"connectn/engine"
	"connectn/experiments/metrics"
	"connectn/game"
	"connectn/gamemaster"
	"connectn/meta"
	"connectn/searcher"
	"connectn/searcher/agent"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSetup = errors.New("invalid experiment setup")

type MatchUp struct {
	Agent1 int `yaml:"agent1"` // AgentConfig.ID
	Agent2 int `yaml:"agent2"` // AgentConfig.ID
}

// Setup describes an arena run. Every matchup plays Games games and the two
// agents take turns playing first.
type Setup struct {
	Name      string                `yaml:"name"`
	Rows      int                   `yaml:"rows"`
	Columns   int                   `yaml:"columns"`
	ToWin     int                   `yaml:"to_win"`
	Games     int                   `yaml:"games"`
	Parallel  int                   `yaml:"parallel"` // Games played at once
	OutputDir string                `yaml:"output_dir"`
	Agents    []metrics.AgentConfig `yaml:"agents"`
	MatchUps  []MatchUp             `yaml:"matchups"`
}

type MatchUpSummary struct {
	MatchUp
	Wins1 int
	Wins2 int
	Draws int
}

type Report struct {
	Dir       string // Empty when nothing was written
	Summaries []MatchUpSummary
	Games     []metrics.GameRecord
	Moves     []metrics.MoveRecord
}

// DefaultSetup pits the search against a random player and against itself
// with more iterations.
func DefaultSetup() Setup {
	return Setup{
		Name:      "arena",
		Rows:      meta.ROWS,
		Columns:   meta.COLUMNS,
		ToWin:     meta.TO_WIN,
		Games:     meta.ARENA_GAMES,
		Parallel:  meta.GO_ROUTINES,
		OutputDir: meta.OUTPUT_DIR,
		Agents: []metrics.AgentConfig{
			{ID: 0, Kind: metrics.KindRandom},
			{ID: 1, Kind: metrics.KindMCTS, Goroutines: 1, Iterations: 1000},
			{ID: 2, Kind: metrics.KindMCTS, Goroutines: 1, Iterations: meta.ITERATIONS},
			{ID: 3, Kind: metrics.KindSampling, Goroutines: 1, Iterations: 1000, Temperature: 1.0},
		},
		MatchUps: []MatchUp{
			{Agent1: 1, Agent2: 0},
			{Agent1: 2, Agent2: 1},
			{Agent1: 1, Agent2: 3},
		},
	}
}

func LoadSetup(path string) (Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Setup{}, fmt.Errorf("failed to read experiment setup: %w", err)
	}
	setup := DefaultSetup()
	setup.Agents, setup.MatchUps = nil, nil
	if err := yaml.Unmarshal(data, &setup); err != nil {
		return Setup{}, fmt.Errorf("failed to parse experiment setup: %w", err)
	}
	return setup, setup.Validate()
}

func (s Setup) Validate() error {
	if _, err := game.NewBoard(s.Rows, s.Columns, s.ToWin); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSetup, err)
	}
	if s.Games <= 0 {
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalidSetup, s.Games)
	}
	if s.Parallel < 0 {
		return fmt.Errorf("%w: parallel must not be negative, got %d", ErrInvalidSetup, s.Parallel)
	}
	if len(s.MatchUps) == 0 {
		return fmt.Errorf("%w: no matchups", ErrInvalidSetup)
	}

	ids := map[int]bool{}
	for _, config := range s.Agents {
		if ids[config.ID] {
			return fmt.Errorf("%w: duplicate agent id %d", ErrInvalidSetup, config.ID)
		}
		ids[config.ID] = true
		if _, err := createAgent(config, 1); err != nil {
			return fmt.Errorf("%w: agent %d: %w", ErrInvalidSetup, config.ID, err)
		}
	}
	for _, m := range s.MatchUps {
		if !ids[m.Agent1] || !ids[m.Agent2] {
			return fmt.Errorf("%w: matchup %d vs %d references an unknown agent", ErrInvalidSetup, m.Agent1, m.Agent2)
		}
	}
	return nil
}

type gameTask struct {
	matchUp int
	index   int // Within the matchup
	first   metrics.AgentConfig
	second  metrics.AgentConfig
}

type gameOutcome struct {
	record metrics.GameRecord
	moves  []metrics.MoveRecord
}

// Run plays every matchup of setup and writes the records below
// setup.OutputDir, if set.
func Run(setup Setup) (Report, error) {
	if err := setup.Validate(); err != nil {
		return Report{}, err
	}
	configs := map[int]metrics.AgentConfig{}
	for _, config := range setup.Agents {
		configs[config.ID] = config
	}

	tasks := []gameTask{}
	for mi, m := range setup.MatchUps {
		for i := 0; i < setup.Games; i++ {
			task := gameTask{matchUp: mi, index: i, first: configs[m.Agent1], second: configs[m.Agent2]}
			if i%2 == 1 { // Alternate the starting agent
				task.first, task.second = task.second, task.first
			}
			tasks = append(tasks, task)
		}
	}

	log.Info().Msgf("starting %s experiment with %d games...", setup.Name, len(tasks))

	outcomes := make([]gameOutcome, len(tasks))
	var g errgroup.Group
	g.SetLimit(max(1, setup.Parallel))
	for ti, task := range tasks {
		g.Go(func() error {
			outcome, err := runGame(setup, task, uint64(ti))
			if err != nil {
				return fmt.Errorf("matchup %d game %d: %w", task.matchUp+1, task.index+1, err)
			}
			outcomes[ti] = outcome
			log.Info().Msgf("completed matchup %d of %d game %d of %d: %s",
				task.matchUp+1, len(setup.MatchUps), task.index+1, setup.Games, outcome.record.Result)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	log.Info().Msgf("completed %s experiment", setup.Name)

	report := summarize(setup, tasks, outcomes)
	if setup.OutputDir == "" {
		return report, nil
	}

	dir, err := writeRecords(setup, report)
	if err != nil {
		return report, err
	}
	report.Dir = dir
	return report, nil
}

func summarize(setup Setup, tasks []gameTask, outcomes []gameOutcome) Report {
	report := Report{Summaries: make([]MatchUpSummary, len(setup.MatchUps))}
	for mi, m := range setup.MatchUps {
		report.Summaries[mi].MatchUp = m
	}
	for ti, task := range tasks {
		record := outcomes[ti].record
		report.Games = append(report.Games, record)
		report.Moves = append(report.Moves, outcomes[ti].moves...)

		summary := &report.Summaries[task.matchUp]
		winner, ok := record.Result.Winner()
		switch {
		case !ok:
			summary.Draws++
		case (winner == game.First) == (record.Agent1 == summary.Agent1):
			summary.Wins1++
		default:
			summary.Wins2++
		}
	}
	return report
}

func writeRecords(setup Setup, report Report) (string, error) {
	writer, err := metrics.NewWriter(setup.OutputDir, setup.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(setup.Agents); err != nil {
		return "", err
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(report.Games); err != nil {
		return "", err
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(report.Moves); err != nil {
		return "", err
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}

// runGame plays a single game of task on a fresh board.
func runGame(setup Setup, task gameTask, salt uint64) (gameOutcome, error) {
	first, err := createAgent(task.first, 2*salt)
	if err != nil {
		return gameOutcome{}, err
	}
	second, err := createAgent(task.second, 2*salt+1)
	if err != nil {
		return gameOutcome{}, err
	}

	board, err := game.NewBoard(setup.Rows, setup.Columns, setup.ToWin)
	if err != nil {
		return gameOutcome{}, err
	}
	session, err := gamemaster.NewSession(board, game.First)
	if err != nil {
		return gameOutcome{}, err
	}

	_, gameMetric, moveMetrics, err := engine.LocalEngine([]agent.Agent{first, second}, session, nil).Run()
	if err != nil {
		return gameOutcome{}, err
	}

	outcome := gameOutcome{
		record: metrics.GameRecord{
			ID:         uuid.New(),
			Agent1:     task.first.ID,
			Agent2:     task.second.ID,
			GameMetric: gameMetric,
		},
	}
	for _, mm := range moveMetrics {
		outcome.moves = append(outcome.moves, metrics.MoveRecord{
			Game:       outcome.record.ID,
			MoveMetric: mm,
		})
	}
	return outcome, nil
}

// createAgent builds a fresh agent for one game. A configured seed is offset by
// salt so games differ but stay reproducible.
func createAgent(config metrics.AgentConfig, salt uint64) (agent.Agent, error) {
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	seed += salt

	switch config.Kind {
	case metrics.KindRandom:
		return agent.NewRandomAgent(rand.New(rand.NewSource(seed))), nil
	case metrics.KindMCTS, "":
		m, err := createMCTS(config, seed)
		if err != nil {
			return nil, err
		}
		return agent.NewEvaluationAgent(m), nil
	case metrics.KindSampling:
		m, err := createMCTS(config, seed)
		if err != nil {
			return nil, err
		}
		return agent.NewSamplingAgent(m, config.Temperature, rand.New(rand.NewSource(^seed)))
	}
	return nil, fmt.Errorf("unknown agent kind %q", config.Kind)
}

func createMCTS(config metrics.AgentConfig, seed uint64) (*searcher.MCTS, error) {
	options := []searcher.Option{searcher.WithSeed(seed), searcher.WithMetrics()}

	if config.Iterations != 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.Goroutines != 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}

	return searcher.NewMCTS(options...)
}
