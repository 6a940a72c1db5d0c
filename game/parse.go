package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDiagram = errors.New("invalid board diagram")

// NewBoardFromString parses a diagram as printed by Board.String: one line per
// row, top row first, '.' for empty cells, 'X' for first and 'O' for second.
// Blank lines and surrounding whitespace are ignored.
func NewBoardFromString(diagram string, toWin int) (*Board, error) {
	lines := []string{}
	for _, line := range strings.Split(diagram, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDiagram)
	}

	b, err := NewBoard(len(lines), len(lines[0]), toWin)
	if err != nil {
		return nil, err
	}

	for row, line := range lines {
		if len(line) != b.columns {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidDiagram, row, len(line), b.columns)
		}
		for column, ch := range line {
			var cell Cell
			switch ch {
			case '.':
				cell = Empty
			case 'X', 'x':
				cell = FirstDisc
			case 'O', 'o':
				cell = SecondDisc
			default:
				return nil, fmt.Errorf("%w: unexpected %q at row %d column %d", ErrInvalidDiagram, ch, row, column)
			}
			b.cells[b.index(row, column)] = cell
		}
	}

	// Discs rest on the bottom row or on another disc
	for column := 0; column < b.columns; column++ {
		for row := 0; row < b.rows-1; row++ {
			if b.At(row, column) != Empty && b.At(row+1, column) == Empty {
				return nil, fmt.Errorf("%w: floating disc at row %d column %d", ErrInvalidDiagram, row, column)
			}
		}
	}
	return b, nil
}

// ToMove infers whose turn it is from the disc counts, assuming first moved
// first.
func (b *Board) ToMove() Player {
	first, second := 0, 0
	for _, cell := range b.cells {
		switch cell {
		case FirstDisc:
			first++
		case SecondDisc:
			second++
		}
	}
	if first > second {
		return Second
	}
	return First
}
