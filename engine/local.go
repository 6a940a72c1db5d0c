package engine

import (
	"connectn/experiments/metrics"
	"connectn/game"
	"connectn/gamemaster"
	"connectn/searcher/agent"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Observer is called after every accepted move with the new position.
type Observer func(update gamemaster.Update, board *game.Board)

type localEngine struct {
	session  *gamemaster.Session
	agents   []agent.Agent // Indexed by game.Player
	observer Observer
}

// LocalEngine runs a game in process. agents[0] plays First and agents[1]
// plays Second, whichever of them the session lets start.
func LocalEngine(agents []agent.Agent, session *gamemaster.Session, observer Observer) Engine {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}
	return &localEngine{
		session:  session,
		agents:   agents,
		observer: observer,
	}
}

// Run executes the entire game loop until the session reports a result.
func (e *localEngine) Run() (game.Result, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.session.ToMove(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s player is starting: %s vs %s", e.session.ToMove(), e.agents[game.First].Name(), e.agents[game.Second].Name())

	for !e.session.Over() {
		player := e.session.ToMove()
		current := e.agents[player]

		move, searchMetric, err := current.FindMove(e.session.Board(), player)
		if err != nil {
			return game.Draw, gameMetric, moveMetrics, fmt.Errorf("%s failed to find a move: %w", current.Name(), err)
		}

		update, err := e.session.Play(move)
		if err != nil {
			return game.Draw, gameMetric, moveMetrics, fmt.Errorf("%s played an illegal move: %w", current.Name(), err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         update.Step,
			Player:       player,
			Move:         move,
			SearchMetric: searchMetric,
		})
		log.Debug().Msgf("move %d: %s dropped into column %d", update.Step, player, move)

		if e.observer != nil {
			e.observer(update, e.session.Board())
		}
	}

	result, _ := e.session.Result()
	gameMetric.Result = result
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	log.Info().Msgf("game over after %d moves: %s", gameMetric.TotalMoves, result)
	return result, gameMetric, moveMetrics, nil
}
