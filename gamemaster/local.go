package gamemaster

import (
	"connectn/game"
	"connectn/utils"
	"errors"
	"fmt"
)

var (
	ErrGameOver    = errors.New("game is over - no moves allowed")
	ErrIllegalMove = errors.New("illegal move")
)

// Update records one accepted move.
type Update struct {
	Step   int
	Player game.Player
	Move   game.Move
}

// Session is the authoritative state of one game. It accepts moves only from
// the player whose turn it is and only while the game is running.
type Session struct {
	board    *game.Board
	first    game.Player
	toMove   game.Player
	history  []Update
	result   game.Result
	gameOver bool
}

// NewSession starts a game on a copy of board with first to move.
func NewSession(board *game.Board, first game.Player) (*Session, error) {
	if board.IsTerminal() {
		return nil, ErrGameOver
	}
	return &Session{
		board:  board.Copy(),
		first:  first,
		toMove: first,
	}, nil
}

// Board returns a copy of the current position.
func (s *Session) Board() *game.Board {
	return s.board.Copy()
}

func (s *Session) First() game.Player  { return s.first }
func (s *Session) ToMove() game.Player { return s.toMove }
func (s *Session) Over() bool          { return s.gameOver }

// Result returns the outcome once the game is over.
func (s *Session) Result() (game.Result, bool) {
	return s.result, s.gameOver
}

func (s *Session) History() []Update {
	history := make([]Update, len(s.history))
	copy(history, s.history)
	return history
}

// Play applies move for the player to move and hands the turn over.
func (s *Session) Play(move game.Move) (Update, error) {
	if s.gameOver {
		return Update{}, ErrGameOver
	}

	legalMoves := s.board.LegalMoves()
	if utils.FindIndex(legalMoves, move) == -1 {
		return Update{}, fmt.Errorf("%w: column %d not in %v", ErrIllegalMove, move, legalMoves)
	}
	if err := s.board.Play(move, s.toMove); err != nil {
		return Update{}, fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}

	u := Update{Step: len(s.history) + 1, Player: s.toMove, Move: move}
	s.history = append(s.history, u)

	// Check if game is over after this move
	if result, over := s.board.Outcome(s.toMove); over {
		s.result = result
		s.gameOver = true
	}
	s.toMove = s.toMove.Opponent()
	return u, nil
}
