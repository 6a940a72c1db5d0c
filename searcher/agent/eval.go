package agent

import (
	"connectn/experiments/metrics"
	"connectn/game"
	"connectn/searcher"
	"fmt"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns an agent that always plays the most visited move.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) Name() string {
	return fmt.Sprintf("mcts(%d iterations, %d goroutines)", a.mcts.Iterations(), a.mcts.Goroutines())
}

func (a evaluationAgent) FindMove(board *game.Board, toMove game.Player) (game.Move, metrics.SearchMetric, error) {
	result, err := a.mcts.Search(board, toMove)
	if err != nil {
		return game.NoMove, metrics.SearchMetric{}, err
	}
	return result.Move, result.Metric, nil
}
