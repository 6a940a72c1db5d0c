package agent

import (
	"connectn/experiments/metrics"
	"connectn/game"
	"connectn/searcher"
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

var ErrInvalidTemperature = errors.New("temperature must be positive")

type samplingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewSamplingAgent returns an agent that samples its move from the root visit
// counts raised to 1/temperature. Low temperatures approach the most visited
// move, high ones approach uniform play over the searched moves.
func NewSamplingAgent(mcts *searcher.MCTS, temperature float64, rng *rand.Rand) (Agent, error) {
	if temperature <= 0 || math.IsInf(temperature, 0) || math.IsNaN(temperature) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidTemperature, temperature)
	}
	return samplingAgent{mcts: mcts, temperature: temperature, rng: rng}, nil
}

func (a samplingAgent) Name() string {
	return fmt.Sprintf("sampling(%d iterations, temperature %.2f)", a.mcts.Iterations(), a.temperature)
}

func (a samplingAgent) FindMove(board *game.Board, toMove game.Player) (game.Move, metrics.SearchMetric, error) {
	result, err := a.mcts.Search(board, toMove)
	if err != nil {
		return game.NoMove, metrics.SearchMetric{}, err
	}
	policy := adjustTemperature(result.Children, a.temperature)
	return result.Children[sample(policy, a.rng)].Move, result.Metric, nil
}

func adjustTemperature(children []searcher.ChildStats, temperature float64) []float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	maxVisits := 0
	for _, child := range children {
		maxVisits = max(maxVisits, child.Visits)
	}

	sum := 0.0
	policy := make([]float64, len(children))
	for i, child := range children {
		// Scale by the largest count so the power cannot overflow
		prob := math.Pow(float64(child.Visits)/float64(maxVisits), exponent)
		sum += prob
		policy[i] = prob
	}
	// Normalize
	for i := range policy {
		policy[i] /= sum
	}
	return policy
}

func sample(policy []float64, rng *rand.Rand) int {
	sampled := rng.Float64()
	cumulative := 0.0
	for i, prob := range policy {
		cumulative += prob
		if sampled < cumulative {
			return i
		}
	}
	return len(policy) - 1 // Fallback in case of rounding errors
}
