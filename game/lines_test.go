package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasLineOfN(t *testing.T) {
	tests := []struct {
		name    string
		diagram string
		toWin   int
		want    Cell
	}{
		{
			name: "empty board",
			diagram: `
				.......
				.......
				.......
				.......
				.......
				.......`,
			toWin: 4,
			want:  Empty,
		},
		{
			name: "horizontal run of exactly toWin",
			diagram: `
				.......
				.......
				.......
				.......
				.......
				..XXXX.`,
			toWin: 4,
			want:  FirstDisc,
		},
		{
			name: "horizontal run of toWin-1",
			diagram: `
				.......
				.......
				.......
				.......
				.......
				..XXXO.`,
			toWin: 4,
			want:  Empty,
		},
		{
			name: "horizontal run broken by the opponent",
			diagram: `
				.......
				.......
				.......
				.......
				.......
				XXOXX..`,
			toWin: 4,
			want:  Empty,
		},
		{
			name: "run longer than toWin",
			diagram: `
				.......
				.......
				.......
				.......
				.......
				OOOOOO.`,
			toWin: 4,
			want:  SecondDisc,
		},
		{
			name: "vertical",
			diagram: `
				.......
				.......
				......O
				......O
				X.....O
				XX....O`,
			toWin: 4,
			want:  SecondDisc,
		},
		{
			name: "vertical run of toWin-1",
			diagram: `
				.......
				.......
				.......
				......O
				X.....O
				XX....O`,
			toWin: 4,
			want:  Empty,
		},
		{
			name: "diagonal rising to the right",
			diagram: `
				.......
				.......
				...X...
				..XO...
				.XOO...
				XOOO...`,
			toWin: 4,
			want:  FirstDisc,
		},
		{
			name: "diagonal rising to the left",
			diagram: `
				.......
				.......
				...X...
				...OX..
				...OOX.
				...OOOX`,
			toWin: 4,
			want:  FirstDisc,
		},
		{
			name: "diagonal touching the top-right corner",
			diagram: `
				......O
				.....OX
				....OXX
				...OXXO`,
			toWin: 4,
			want:  SecondDisc,
		},
		{
			name: "diagonal on a wide board",
			diagram: `
				....X
				...XO
				..XOO`,
			toWin: 3,
			want:  FirstDisc,
		},
		{
			name: "diagonal on a tall board",
			diagram: `
				...
				X..
				OX.
				OOX
				XOX`,
			toWin: 3,
			want:  FirstDisc,
		},
		{
			name: "toWin of one",
			diagram: `
				..
				.O`,
			toWin: 1,
			want:  SecondDisc,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := NewBoardFromString(test.diagram, test.toWin)
			require.NoError(t, err)

			require.Equal(t, test.want, b.LineOwner())
			require.Equal(t, test.want != Empty, b.HasLineOfN())
		})
	}
}

func TestFourInARowOnStandardBoard(t *testing.T) {
	t.Run("bottom row", func(t *testing.T) {
		b := NewStandardBoard()
		for column := Move(1); column <= 3; column++ {
			require.True(t, b.Place(column, First))
			require.False(t, b.HasLineOfN(), "No line before the fourth disc")
		}

		require.True(t, b.Place(4, First))
		require.True(t, b.HasLineOfN(), "Four adjacent discs in a row should win")
		require.Equal(t, FirstDisc, b.LineOwner())
	})

	t.Run("row resting on supporting discs", func(t *testing.T) {
		b := NewStandardBoard()
		for _, support := range []struct {
			move   Move
			player Player
		}{{1, Second}, {2, Second}, {3, First}, {4, First}} {
			require.True(t, b.Place(support.move, support.player))
		}
		require.False(t, b.HasLineOfN())

		for column := Move(1); column <= 3; column++ {
			require.True(t, b.Place(column, Second))
			require.False(t, b.HasLineOfN(), "No line before the fourth disc")
		}

		require.True(t, b.Place(4, Second))
		require.True(t, b.HasLineOfN())
		require.Equal(t, SecondDisc, b.LineOwner())
		require.Equal(t, SecondDisc, b.At(4, 4), "The fourth disc lands on its support")
	})
}

func TestLineScanMatchesBruteForce(t *testing.T) {
	diagrams := []string{
		`
		O.X.O..
		X.O.X..
		O.X.O.X
		XOXOXOX
		OXOXOXO
		XOXOXOX`,
		`
		.......
		..O....
		..X.X..
		.OXXO..
		XOOXXO.
		OXXOOXX`,
		`
		XXXOXXX
		OOOXOOO
		XXXOXXX
		OOOXOOO
		XXXOXXX
		OOOXOOO`,
	}

	for _, diagram := range diagrams {
		for toWin := 1; toWin <= 7; toWin++ {
			b, err := NewBoardFromString(diagram, toWin)
			require.NoError(t, err)

			require.Equal(t, bruteForceLine(b), b.HasLineOfN(), "toWin=%d board:\n%s", toWin, b)
		}
	}
}

// bruteForceLine checks every cell in every direction without skipping runs.
func bruteForceLine(b *Board) bool {
	directions := [][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for row := 0; row < b.Rows(); row++ {
		for column := 0; column < b.Columns(); column++ {
			if b.At(row, column) == Empty {
				continue
			}
			for _, d := range directions {
				if b.runLength(row, column, d[0], d[1]) >= b.ToWin() {
					return true
				}
			}
		}
	}
	return false
}
