package searcher

import (
	"connectn/game"
	"math"
)

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const WIN = 1.0   // Reward for the player who moved into the node
const LOSS = -WIN // Reward when the player to move from the node won
const DRAW = 0.0

type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}

// reward scores a playout result for a node whose next mover is toMove. The
// node is good for the opponent of toMove, who made the move into it.
func reward(result game.Result, toMove game.Player) float64 {
	winner, ok := result.Winner()
	switch {
	case !ok:
		return DRAW
	case winner == toMove:
		return LOSS
	default:
		return WIN
	}
}
