package game

import (
	"connectn/utils"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNewBoard(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		columns int
		toWin   int
		wantErr bool
	}{
		{name: "standard", rows: 6, columns: 7, toWin: 4},
		{name: "toWin fits columns only", rows: 3, columns: 7, toWin: 4},
		{name: "toWin fits rows only", rows: 7, columns: 3, toWin: 5},
		{name: "single cell", rows: 1, columns: 1, toWin: 1},
		{name: "toWin exceeds both axes", rows: 3, columns: 3, toWin: 4, wantErr: true},
		{name: "zero rows", rows: 0, columns: 7, toWin: 4, wantErr: true},
		{name: "negative columns", rows: 6, columns: -1, toWin: 4, wantErr: true},
		{name: "zero toWin", rows: 6, columns: 7, toWin: 0, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := NewBoard(test.rows, test.columns, test.toWin)
			if test.wantErr {
				require.ErrorIs(t, err, ErrInvalidDimensions)
				require.Nil(t, b)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.rows, b.Rows())
			require.Equal(t, test.columns, b.Columns())
			require.Equal(t, test.toWin, b.ToWin())
			require.Zero(t, b.Discs(), "New board should be empty")
		})
	}
}

func TestPlace(t *testing.T) {
	t.Run("discs stack from the bottom row", func(t *testing.T) {
		b := NewStandardBoard()

		require.True(t, b.Place(3, First))
		require.True(t, b.Place(3, Second))

		require.Equal(t, FirstDisc, b.At(5, 3))
		require.Equal(t, SecondDisc, b.At(4, 3))
		require.Equal(t, Empty, b.At(3, 3))
		require.Equal(t, 2, b.Height(3))
	})

	t.Run("full column is a no-op", func(t *testing.T) {
		b := NewStandardBoard()
		for i := 0; i < b.Rows(); i++ {
			require.True(t, b.Place(2, Player(i%2)))
		}
		before := b.Copy()

		require.False(t, b.Place(2, First), "Placing into a full column should fail")
		require.True(t, b.Equal(before), "Failed placement should not mutate the board")
		require.True(t, b.ColumnFull(2))
	})

	t.Run("out of range column is rejected", func(t *testing.T) {
		b := NewStandardBoard()

		require.False(t, b.Place(-1, First))
		require.False(t, b.Place(7, First))
		require.Zero(t, b.Discs())
	})

	t.Run("play reports why a move was rejected", func(t *testing.T) {
		b, err := NewBoard(1, 2, 1)
		require.NoError(t, err)

		require.NoError(t, b.Play(0, First))
		require.ErrorIs(t, b.Play(0, Second), ErrColumnFull)
		require.ErrorIs(t, b.Play(5, Second), ErrColumnOutOfRange)
	})

	t.Run("columns stay contiguous from the bottom", func(t *testing.T) {
		r := rand.New(rand.NewSource(7))
		b := NewStandardBoard()
		player := First
		for !b.IsFull() {
			moves := b.LegalMoves()
			require.True(t, b.Place(moves[r.Intn(len(moves))], player))
			player = player.Opponent()

			for column := 0; column < b.Columns(); column++ {
				seenEmpty := false
				for row := b.Rows() - 1; row >= 0; row-- {
					if b.At(row, column) == Empty {
						seenEmpty = true
					} else {
						require.False(t, seenEmpty, "Disc above an empty cell in column %d", column)
					}
				}
			}
		}
		require.Equal(t, b.Rows()*b.Columns(), b.Discs())
	})
}

func TestLegalMoves(t *testing.T) {
	t.Run("empty board offers every column in order", func(t *testing.T) {
		b := NewStandardBoard()
		require.Equal(t, []Move{0, 1, 2, 3, 4, 5, 6}, b.LegalMoves())
		require.Equal(t, 7, b.NumLegalMoves())
	})

	t.Run("full columns are skipped", func(t *testing.T) {
		b, err := NewBoardFromString(`
			X.O
			O.X
		`, 2)
		require.NoError(t, err)

		require.Equal(t, []Move{1}, b.LegalMoves())
		for column := 0; column < b.Columns(); column++ {
			require.Equal(t, !b.ColumnFull(Move(column)), utils.Contains(b.LegalMoves(), Move(column)))
		}
	})

	t.Run("append form reuses the destination", func(t *testing.T) {
		b := NewStandardBoard()
		buf := make([]Move, 0, b.Columns())
		got := b.AppendLegalMoves(buf)
		require.Len(t, got, 7)
		require.Equal(t, cap(buf), cap(got), "Should not grow a buffer with enough capacity")
	})
}

func TestIsFull(t *testing.T) {
	b, err := NewBoard(2, 2, 2)
	require.NoError(t, err)

	require.False(t, b.IsFull())
	b.Place(0, First)
	b.Place(1, Second)
	require.False(t, b.IsFull(), "Only the bottom row is filled")
	b.Place(0, Second)
	b.Place(1, First)
	require.True(t, b.IsFull())
	require.Empty(t, b.LegalMoves(), "A full board has no legal moves")
}

func TestQueriesAreIdempotent(t *testing.T) {
	b, err := NewBoardFromString(`
		.......
		.......
		.......
		...O...
		..XO...
		.XXO.X.
	`, 4)
	require.NoError(t, err)

	moves, line, full := b.LegalMoves(), b.HasLineOfN(), b.IsFull()
	for i := 0; i < 3; i++ {
		assert.Equal(t, moves, b.LegalMoves())
		assert.Equal(t, line, b.HasLineOfN())
		assert.Equal(t, full, b.IsFull())
	}
}

func TestCopy(t *testing.T) {
	t.Run("copy does not alias the original", func(t *testing.T) {
		b := NewStandardBoard()
		b.Place(0, First)

		c := b.Copy()
		require.True(t, b.Equal(c))

		c.Place(0, Second)
		require.Equal(t, 1, b.Discs(), "Mutating the copy should not touch the original")
		require.Equal(t, 2, c.Discs())
	})

	t.Run("copy from reuses the buffer", func(t *testing.T) {
		src := NewStandardBoard()
		src.Place(4, Second)
		dst := NewStandardBoard()
		dst.Place(1, First)

		dst.CopyFrom(src)
		require.True(t, dst.Equal(src))

		dst.Place(4, First)
		require.Equal(t, 1, src.Discs())
	})

	t.Run("copy from resizes a mismatched buffer", func(t *testing.T) {
		src := NewStandardBoard()
		dst, err := NewBoard(2, 2, 2)
		require.NoError(t, err)

		dst.CopyFrom(src)
		require.True(t, dst.Equal(src))
	})
}

func TestOutcome(t *testing.T) {
	b, err := NewBoardFromString(`
		O..
		XO.
		XXO
	`, 3)
	require.NoError(t, err)

	result, over := b.Outcome(Second)
	require.True(t, over)
	require.Equal(t, SecondWin, result)

	draw, err := NewBoardFromString(`
		XO
		OX
	`, 3)
	require.Error(t, err, "toWin=3 does not fit a 2x2 grid")
	require.Nil(t, draw)

	draw, err = NewBoardFromString(`
		XOX
		XOX
	`, 3)
	require.NoError(t, err)
	result, over = draw.Outcome(First)
	require.True(t, over)
	require.Equal(t, Draw, result)
}

func TestBoardString(t *testing.T) {
	diagram := "...\n...\nXXO\n"
	b, err := NewBoardFromString(diagram, 3)
	require.NoError(t, err)

	require.Equal(t, diagram, b.String())
	require.Equal(t, Second, b.ToMove(), "Three discs placed, first moved twice")
}
