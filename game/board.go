package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	ErrColumnOutOfRange  = errors.New("column out of range")
	ErrColumnFull        = errors.New("column is full")
)

const (
	StandardRows    = 6
	StandardColumns = 7
	StandardToWin   = 4
)

// Board is a grid of cells filled by gravity. Cells are stored row-major in a
// single slice with row 0 at the top, the side discs are dropped in from.
type Board struct {
	rows    int
	columns int
	toWin   int
	cells   []Cell
}

// NewBoard returns an empty board. toWin must fit along at least one axis.
func NewBoard(rows, columns, toWin int) (*Board, error) {
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("%w: %dx%d grid", ErrInvalidDimensions, rows, columns)
	}
	if toWin <= 0 {
		return nil, fmt.Errorf("%w: toWin=%d must be positive", ErrInvalidDimensions, toWin)
	}
	if toWin > rows && toWin > columns {
		return nil, fmt.Errorf("%w: toWin=%d exceeds both %d rows and %d columns",
			ErrInvalidDimensions, toWin, rows, columns)
	}
	return &Board{
		rows:    rows,
		columns: columns,
		toWin:   toWin,
		cells:   make([]Cell, rows*columns),
	}, nil
}

// NewStandardBoard returns the classic 6x7 four-in-a-row board.
func NewStandardBoard() *Board {
	b, err := NewBoard(StandardRows, StandardColumns, StandardToWin)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Board) Rows() int    { return b.rows }
func (b *Board) Columns() int { return b.columns }
func (b *Board) ToWin() int   { return b.toWin }

func (b *Board) index(row, column int) int {
	return row*b.columns + column
}

func (b *Board) At(row, column int) Cell {
	return b.cells[b.index(row, column)]
}

// Place drops a disc of player p into the column. It returns false and leaves
// the board untouched when the column is full or does not exist.
func (b *Board) Place(move Move, p Player) bool {
	column := int(move)
	if column < 0 || column >= b.columns {
		return false
	}
	row := -1
	for row+1 < b.rows && b.cells[b.index(row+1, column)] == Empty {
		row++
	}
	if row == -1 {
		return false
	}
	b.cells[b.index(row, column)] = p.Disc()
	return true
}

// Play is Place for callers that want to know why a move was rejected.
func (b *Board) Play(move Move, p Player) error {
	if int(move) < 0 || int(move) >= b.columns {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrColumnOutOfRange, move, b.columns)
	}
	if !b.Place(move, p) {
		return fmt.Errorf("%w: %d", ErrColumnFull, move)
	}
	return nil
}

// ColumnFull reports whether no disc fits in the column anymore.
func (b *Board) ColumnFull(move Move) bool {
	return b.cells[int(move)] != Empty
}

// Height returns the number of discs stacked in the column.
func (b *Board) Height(move Move) int {
	height := 0
	for row := b.rows - 1; row >= 0 && b.cells[b.index(row, int(move))] != Empty; row-- {
		height++
	}
	return height
}

// LegalMoves returns the columns that still take a disc, in ascending order.
func (b *Board) LegalMoves() []Move {
	return b.AppendLegalMoves(make([]Move, 0, b.columns))
}

// AppendLegalMoves appends the legal moves to dst, in ascending order.
func (b *Board) AppendLegalMoves(dst []Move) []Move {
	// The top row is the first row of the buffer
	for column, cell := range b.cells[:b.columns] {
		if cell == Empty {
			dst = append(dst, Move(column))
		}
	}
	return dst
}

func (b *Board) NumLegalMoves() int {
	n := 0
	for _, cell := range b.cells[:b.columns] {
		if cell == Empty {
			n++
		}
	}
	return n
}

// IsFull reports whether the top row has no empty cell left.
func (b *Board) IsFull() bool {
	for _, cell := range b.cells[:b.columns] {
		if cell == Empty {
			return false
		}
	}
	return true
}

// IsTerminal reports whether the game on this board is over.
func (b *Board) IsTerminal() bool {
	return b.HasLineOfN() || b.IsFull()
}

// Outcome returns the result of a terminal board, given the player who placed
// the last disc. The second value is false while the game is still going.
func (b *Board) Outcome(lastMover Player) (Result, bool) {
	if b.HasLineOfN() {
		return WinFor(lastMover), true
	}
	if b.IsFull() {
		return Draw, true
	}
	return Draw, false
}

// Discs counts the occupied cells.
func (b *Board) Discs() int {
	n := 0
	for _, cell := range b.cells {
		if cell != Empty {
			n++
		}
	}
	return n
}

// Copy returns an independent board with the same cells.
func (b *Board) Copy() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		rows:    b.rows,
		columns: b.columns,
		toWin:   b.toWin,
		cells:   cells,
	}
}

// CopyFrom overwrites b with the contents of src, reusing b's buffer when the
// sizes match.
func (b *Board) CopyFrom(src *Board) {
	if len(b.cells) != len(src.cells) {
		b.cells = make([]Cell, len(src.cells))
	}
	b.rows, b.columns, b.toWin = src.rows, src.columns, src.toWin
	copy(b.cells, src.cells)
}

// Equal reports whether both boards have the same shape and cells.
func (b *Board) Equal(other *Board) bool {
	if b.rows != other.rows || b.columns != other.columns || b.toWin != other.toWin {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String draws the board top row first, using the same symbols as
// NewBoardFromString.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.columns + 1) * b.rows)
	for row := 0; row < b.rows; row++ {
		for column := 0; column < b.columns; column++ {
			sb.WriteRune(b.At(row, column).Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
