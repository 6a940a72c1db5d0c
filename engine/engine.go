package engine

import (
	"connectn/experiments/metrics"
	"connectn/game"
)

type Engine interface {
	// Run plays a game till there's a winner or the board is full
	Run() (result game.Result, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
