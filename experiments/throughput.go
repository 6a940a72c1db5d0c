package experiments

import (
	"connectn/experiments/metrics"
	"connectn/game"
	"connectn/meta"

	"github.com/google/uuid"
)

// ThroughputGoroutines are the default worker counts compared by the
// throughput experiment.
var ThroughputGoroutines = []int{1, 2, 4, 8, 16}

// ThroughputSetup plays each goroutine count against itself, so both sides
// have the same strength and games have similar length. Compare episodes per
// second across the move records.
func ThroughputSetup(goroutineCounts []int, iterations, games int, outputDir string) Setup {
	setup := Setup{
		Name:      "throughput",
		Rows:      meta.ROWS,
		Columns:   meta.COLUMNS,
		ToWin:     meta.TO_WIN,
		Games:     games,
		Parallel:  1, // One game at a time so the workers don't compete
		OutputDir: outputDir,
	}
	for i, goroutines := range goroutineCounts {
		setup.Agents = append(setup.Agents, metrics.AgentConfig{
			ID:         i + 1,
			Kind:       metrics.KindMCTS,
			Goroutines: goroutines,
			Iterations: iterations,
		})
		setup.MatchUps = append(setup.MatchUps, MatchUp{Agent1: i + 1, Agent2: i + 1})
	}
	return setup
}

// Throughput returns the mean episodes per second over every searched move,
// keyed by goroutine count.
func Throughput(setup Setup, report Report) map[int]float64 {
	goroutines := map[int]int{}
	for _, config := range setup.Agents {
		goroutines[config.ID] = config.Goroutines
	}
	type seat struct {
		game   uuid.UUID
		player game.Player
	}
	playedBy := map[seat]int{} // Agent ID per game and player
	for _, record := range report.Games {
		playedBy[seat{record.ID, game.First}] = record.Agent1
		playedBy[seat{record.ID, game.Second}] = record.Agent2
	}

	sums := map[int]float64{}
	counts := map[int]int{}
	for _, move := range report.Moves {
		g := goroutines[playedBy[seat{move.Game, move.Player}]]
		sums[g] += move.Throughput()
		counts[g]++
	}
	for g := range sums {
		sums[g] /= float64(counts[g])
	}
	return sums
}
