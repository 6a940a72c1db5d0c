package searcher

import (
	"connectn/game"

	"golang.org/x/exp/rand"
)

// rollout plays uniformly random moves on board until the game is over.
// toMove is the player to move on board. It returns the result and the
// number of moves played.
func rollout(board *game.Board, toMove game.Player, rng *rand.Rand, moves []game.Move) (game.Result, int) {
	plies := 0
	for {
		if board.HasLineOfN() {
			// The player who just moved completed the line
			return game.WinFor(toMove.Opponent()), plies
		}
		moves = board.AppendLegalMoves(moves[:0])
		if len(moves) == 0 {
			return game.Draw, plies
		}
		board.Place(moves[rng.Intn(len(moves))], toMove)
		toMove = toMove.Opponent()
		plies++
	}
}
