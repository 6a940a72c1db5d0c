package searcher

import (
	"connectn/game"
	"testing"

	"github.com/stretchr/testify/require"
)

// First to move wins immediately in column 3.
const immediateWin = `
	.......
	.......
	.......
	.......
	....O..
	XXX.OO.
`

// Second to move must block column 3.
const mustBlock = `
	.......
	.......
	.......
	.......
	X...O..
	XXX.OO.
`

func mustBoard(t *testing.T, diagram string, toWin int) *game.Board {
	t.Helper()
	b, err := game.NewBoardFromString(diagram, toWin)
	require.NoError(t, err)
	return b
}

func TestNewMCTS(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		m, err := NewMCTS()
		require.NoError(t, err)
		require.Equal(t, DefaultIterations, m.Iterations())
		require.Equal(t, 1, m.Goroutines())
	})

	t.Run("rejects non-positive iterations", func(t *testing.T) {
		for _, iterations := range []int{0, -5} {
			m, err := NewMCTS(WithIterations(iterations))
			require.ErrorIs(t, err, ErrInvalidIterations)
			require.Nil(t, m)
		}
	})

	t.Run("rejects non-positive goroutines", func(t *testing.T) {
		m, err := NewMCTS(WithGoroutines(0))
		require.ErrorIs(t, err, ErrInvalidGoroutines)
		require.Nil(t, m)
	})

	t.Run("package level search checks iterations", func(t *testing.T) {
		move, err := ChooseMove(game.NewStandardBoard(), game.First, 0)
		require.ErrorIs(t, err, ErrInvalidIterations)
		require.Equal(t, game.NoMove, move)
	})
}

func TestSearchPreconditions(t *testing.T) {
	m, err := NewMCTS(WithIterations(10), WithSeed(1))
	require.NoError(t, err)

	t.Run("full board has no legal moves", func(t *testing.T) {
		move, err := m.ChooseMove(mustBoard(t, "XOX\nXOX", 3), game.First)
		require.ErrorIs(t, err, ErrNoLegalMoves)
		require.Equal(t, game.NoMove, move)
	})

	t.Run("board with a line is over", func(t *testing.T) {
		_, err := m.Search(mustBoard(t, "....\nOOO.\nXXXX", 4), game.Second)
		require.ErrorIs(t, err, ErrGameOver)
	})
}

func TestSearch(t *testing.T) {
	t.Run("root child visits sum to the iteration count", func(t *testing.T) {
		for _, goroutines := range []int{1, 3, 8} {
			for _, iterations := range []int{1, 2, 7, 100, 1000} {
				m, err := NewMCTS(WithIterations(iterations), WithGoroutines(goroutines), WithSeed(uint64(iterations)))
				require.NoError(t, err)

				result, err := m.Search(game.NewStandardBoard(), game.First)
				require.NoError(t, err)
				require.Equal(t, iterations, result.Visits(), "goroutines=%d iterations=%d", goroutines, iterations)
			}
		}
	})

	t.Run("children are ordered by move and chosen by visits", func(t *testing.T) {
		m, err := NewMCTS(WithIterations(500), WithGoroutines(4), WithSeed(3))
		require.NoError(t, err)

		result, err := m.Search(game.NewStandardBoard(), game.First)
		require.NoError(t, err)
		require.Len(t, result.Children, 7)
		for i, child := range result.Children {
			require.Equal(t, game.Move(i), child.Move)
		}
		require.Equal(t, mostVisited(result.Children).Move, result.Move)

		sum := 0.0
		for _, p := range result.Policy() {
			sum += p
		}
		require.InDelta(t, 1.0, sum, 1e-9)
	})

	t.Run("few iterations expand moves in ascending order", func(t *testing.T) {
		m, err := NewMCTS(WithIterations(3), WithSeed(5))
		require.NoError(t, err)

		result, err := m.Search(game.NewStandardBoard(), game.Second)
		require.NoError(t, err)
		require.Equal(t, []game.Move{0, 1, 2}, moves(result.Children))
		require.Equal(t, game.Move(0), result.Move, "Equal visits go to the first expanded move")
	})

	t.Run("only one legal move", func(t *testing.T) {
		m, err := NewMCTS(WithIterations(50), WithSeed(5))
		require.NoError(t, err)

		move, err := m.ChooseMove(mustBoard(t, "X.O\nO.X\nX.O\nOXX", 3), game.Second)
		require.NoError(t, err)
		require.Equal(t, game.Move(1), move)
	})

	t.Run("caller board is not mutated", func(t *testing.T) {
		board := mustBoard(t, mustBlock, 4)
		before := board.Copy()

		for _, goroutines := range []int{1, 4} {
			m, err := NewMCTS(WithIterations(300), WithGoroutines(goroutines), WithSeed(8))
			require.NoError(t, err)
			_, err = m.Search(board, game.Second)
			require.NoError(t, err)
			require.True(t, board.Equal(before))
		}
	})

	t.Run("same seed gives the same search", func(t *testing.T) {
		for _, goroutines := range []int{1, 4} {
			search := func() SearchResult {
				m, err := NewMCTS(WithIterations(400), WithGoroutines(goroutines), WithSeed(42))
				require.NoError(t, err)
				result, err := m.Search(game.NewStandardBoard(), game.First)
				require.NoError(t, err)
				return result
			}

			first, second := search(), search()
			require.Equal(t, first.Move, second.Move)
			require.Equal(t, first.Children, second.Children)
		}
	})
}

func TestSearchStrength(t *testing.T) {
	tests := []struct {
		name    string
		diagram string
		toMove  game.Player
		want    game.Move
	}{
		{"takes an immediate win", immediateWin, game.First, 3},
		{"blocks an immediate loss", mustBlock, game.Second, 3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board := mustBoard(t, test.diagram, 4)
			hits := 0
			for seed := uint64(1); seed <= 10; seed++ {
				m, err := NewMCTS(WithIterations(3000), WithSeed(seed))
				require.NoError(t, err)

				move, err := m.ChooseMove(board, test.toMove)
				require.NoError(t, err)
				if move == test.want {
					hits++
				}
			}
			require.GreaterOrEqual(t, hits, 8, "Should find move %d in most seeded runs", test.want)
		})
	}
}

func TestSearchMetrics(t *testing.T) {
	t.Run("every iteration is recorded", func(t *testing.T) {
		m, err := NewMCTS(WithIterations(600), WithSeed(11), WithMetrics())
		require.NoError(t, err)

		result, err := m.Search(mustBoard(t, immediateWin, 4), game.First)
		require.NoError(t, err)

		metric := result.Metric
		require.Equal(t, 600, metric.Episodes)
		require.Equal(t, 600, metric.Iterations)
		require.Equal(t, 1, metric.Goroutines)
		require.Positive(t, metric.TerminalHits, "The winning child is terminal")
		require.Equal(t, 1+600-metric.TerminalHits, metric.Nodes, "Every non-terminal iteration adds one node")
		require.GreaterOrEqual(t, metric.MaxDepth, 1)
	})

	t.Run("parallel searches count every tree", func(t *testing.T) {
		m, err := NewMCTS(WithIterations(200), WithGoroutines(4), WithSeed(11), WithMetrics())
		require.NoError(t, err)

		result, err := m.Search(game.NewStandardBoard(), game.First)
		require.NoError(t, err)
		require.Equal(t, 200, result.Metric.Episodes)
		require.Equal(t, 4, result.Metric.Goroutines)
		require.Equal(t, 4+200-result.Metric.TerminalHits, result.Metric.Nodes)
	})
}

func TestSplitIterations(t *testing.T) {
	require.Equal(t, []int{4, 3, 3}, splitIterations(10, 3))
	require.Equal(t, []int{1, 1}, splitIterations(2, 2))
	require.Equal(t, []int{5}, splitIterations(5, 1))
}

func TestMergeStats(t *testing.T) {
	merged := mergeStats([][]ChildStats{
		{{Move: 0, Visits: 2, Rewards: 1}, {Move: 2, Visits: 3, Rewards: -1}},
		{{Move: 0, Visits: 1, Rewards: -1}, {Move: 1, Visits: 4, Rewards: 2}},
	}, 4)

	require.Equal(t, []ChildStats{
		{Move: 0, Visits: 3, Rewards: 0},
		{Move: 1, Visits: 4, Rewards: 2},
		{Move: 2, Visits: 3, Rewards: -1},
	}, merged)
}

func moves(children []ChildStats) []game.Move {
	out := make([]game.Move, 0, len(children))
	for _, child := range children {
		out = append(out, child.Move)
	}
	return out
}
