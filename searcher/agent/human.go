package agent

import (
	"bufio"
	"connectn/experiments/metrics"
	"connectn/game"
	"connectn/searcher"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrNoInput = errors.New("no more input")

type humanAgent struct {
	name    string
	scanner *bufio.Scanner
	out     io.Writer
}

// NewHumanAgent returns an agent that reads 1-based column numbers, one per
// line, from in. Prompts and rejections are written to out. Invalid input is
// rejected and the player is asked again.
func NewHumanAgent(name string, in io.Reader, out io.Writer) Agent {
	return &humanAgent{name: name, scanner: bufio.NewScanner(in), out: out}
}

func (a *humanAgent) Name() string {
	return a.name
}

func (a *humanAgent) FindMove(board *game.Board, toMove game.Player) (game.Move, metrics.SearchMetric, error) {
	if board.NumLegalMoves() == 0 {
		return game.NoMove, metrics.SearchMetric{}, searcher.ErrNoLegalMoves
	}

	for {
		fmt.Fprintf(a.out, "%s (%c), choose a column [1-%d]: ", a.name, toMove.Disc().Rune(), board.Columns())
		if !a.scanner.Scan() {
			if err := a.scanner.Err(); err != nil {
				return game.NoMove, metrics.SearchMetric{}, fmt.Errorf("failed to read move: %w", err)
			}
			return game.NoMove, metrics.SearchMetric{}, fmt.Errorf("%w: %w", ErrNoInput, io.EOF)
		}

		column, err := strconv.Atoi(strings.TrimSpace(a.scanner.Text()))
		if err != nil || column < 1 || column > board.Columns() {
			fmt.Fprintf(a.out, "not a column between 1 and %d\n", board.Columns())
			continue
		}
		move := game.Move(column - 1)
		if board.ColumnFull(move) {
			fmt.Fprintf(a.out, "column %d is full\n", column)
			continue
		}
		return move, metrics.SearchMetric{}, nil
	}
}
