package agent

import (
	"connectn/experiments/metrics"
	"connectn/game"
)

type Agent interface {
	// FindMove returns a legal move for toMove on board and the search metrics (if collected)
	FindMove(board *game.Board, toMove game.Player) (game.Move, metrics.SearchMetric, error)
	Name() string
}
