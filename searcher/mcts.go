package searcher

import (
	"connectn/experiments/metrics"
	"connectn/game"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

const DefaultIterations = 5000

var (
	ErrInvalidIterations = errors.New("iterations must be positive")
	ErrInvalidGoroutines = errors.New("goroutines must be positive")
	ErrNoLegalMoves      = errors.New("no legal moves")
	ErrGameOver          = errors.New("game is already over")
)

type Option func(mcts *MCTS)

// MCTS chooses moves by Monte-Carlo tree search with random playouts. Every
// search builds a fresh tree and drops it once the move is chosen. An MCTS
// draws from a single generator and is not safe for concurrent use.
type MCTS struct {
	goroutines int
	iterations int
	rng        *rand.Rand
	metrics    metrics.Collector
}

type ChildStats struct {
	Move    game.Move
	Visits  int
	Rewards float64
}

// Mean returns the average reward, from the perspective of the player who
// played Move.
func (c ChildStats) Mean() float64 {
	if c.Visits == 0 {
		return 0
	}
	return c.Rewards / float64(c.Visits)
}

type SearchResult struct {
	Move     game.Move
	Children []ChildStats // Root children, ascending by move
	Metric   metrics.SearchMetric
}

// Visits returns the number of iterations that reached a root child.
func (r SearchResult) Visits() int {
	total := 0
	for _, child := range r.Children {
		total += child.Visits
	}
	return total
}

// Policy returns the share of root visits per move.
func (r SearchResult) Policy() map[game.Move]float64 {
	total := float64(r.Visits())
	policy := make(map[game.Move]float64, len(r.Children))
	for _, child := range r.Children {
		policy[child.Move] = float64(child.Visits) / total
	}
	return policy
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		m.iterations = iterations
	}
}

// WithGoroutines splits the iterations across independent trees searched in
// parallel. Their root statistics are summed per move.
func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		m.goroutines = goroutines
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) (*MCTS, error) {
	m := &MCTS{ // Default values
		goroutines: 1,
		iterations: DefaultIterations,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.iterations <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidIterations, m.iterations)
	}
	if m.goroutines <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGoroutines, m.goroutines)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m, nil
}

func (m *MCTS) Iterations() int { return m.iterations }
func (m *MCTS) Goroutines() int { return m.goroutines }

// ChooseMove returns the legal move whose root child collected the most visits.
func (m *MCTS) ChooseMove(board *game.Board, toMove game.Player) (game.Move, error) {
	result, err := m.Search(board, toMove)
	if err != nil {
		return game.NoMove, err
	}
	return result.Move, nil
}

// ChooseMove searches with a single tree of the given number of iterations.
func ChooseMove(board *game.Board, toMove game.Player, iterations int) (game.Move, error) {
	m, err := NewMCTS(WithIterations(iterations))
	if err != nil {
		return game.NoMove, err
	}
	return m.ChooseMove(board, toMove)
}

// Search runs the configured iterations from board with toMove to play. The
// board is only read.
func (m *MCTS) Search(board *game.Board, toMove game.Player) (SearchResult, error) {
	if board.HasLineOfN() {
		return SearchResult{}, fmt.Errorf("%w: board already holds a line of %d", ErrGameOver, board.ToWin())
	}
	if board.NumLegalMoves() == 0 {
		return SearchResult{}, ErrNoLegalMoves
	}

	workers := min(m.goroutines, m.iterations)

	m.metrics.Start(workers, m.iterations)
	var children []ChildStats
	if workers == 1 {
		children = m.buildTree(board, toMove, m.iterations, m.rng).rootStats()
	} else {
		var err error
		children, err = m.searchParallel(board, toMove, workers)
		if err != nil {
			return SearchResult{}, err
		}
	}
	metric := m.metrics.Complete()

	best := mostVisited(children)
	log.Debug().Msgf("%s chose move %d with %d of %d visits (mean reward %.3f, %d goroutines)",
		toMove, best.Move, best.Visits, m.iterations, best.Mean(), workers)

	return SearchResult{
		Move:     best.Move,
		Children: children,
		Metric:   metric,
	}, nil
}

// buildTree runs iterations episodes on a new tree rooted at board. Each
// episode starts from a fresh copy of board in one reused buffer.
func (m *MCTS) buildTree(board *game.Board, toMove game.Player, iterations int, rng *rand.Rand) *tree {
	t := newTree(toMove, iterations+1)
	work := board.Copy()
	moves := make([]game.Move, 0, board.Columns())

	for i := 0; i < iterations; i++ {
		work.CopyFrom(board)
		nodes := t.size()
		leaf, depth := t.selectLeaf(work, moves)
		if t.size() == nodes { // Reached a known terminal node
			m.metrics.AddTerminalHit()
		}
		result, _ := rollout(work, t.nodes[leaf].toMove, rng, moves)
		t.backup(leaf, result)

		m.metrics.AddEpisode()
		m.metrics.ObserveDepth(depth)
	}

	m.metrics.AddNodes(t.size())
	return t
}

// searchParallel builds one tree per worker and sums their root statistics per
// move. Worker seeds are drawn up front so a seeded MCTS stays reproducible.
func (m *MCTS) searchParallel(board *game.Board, toMove game.Player, workers int) ([]ChildStats, error) {
	budgets := splitIterations(m.iterations, workers)
	seeds := make([]uint64, workers)
	for i := range seeds {
		seeds[i] = m.rng.Uint64()
	}

	results := make([][]ChildStats, workers)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seeds[i]))
			stats := m.buildTree(board, toMove, budgets[i], rng).rootStats()
			if len(stats) == 0 {
				return fmt.Errorf("worker %d expanded no root children", i)
			}
			results[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parallel search failed: %w", err)
	}

	return mergeStats(results, board.Columns()), nil
}

// splitIterations divides total into parts that differ by at most one.
func splitIterations(total, parts int) []int {
	budgets := make([]int, parts)
	for i := range budgets {
		budgets[i] = total / parts
		if i < total%parts {
			budgets[i]++
		}
	}
	return budgets
}

func mergeStats(results [][]ChildStats, columns int) []ChildStats {
	merged := make([]ChildStats, columns)
	seen := make([]bool, columns)
	for _, stats := range results {
		for _, child := range stats {
			merged[child.Move].Move = child.Move
			merged[child.Move].Visits += child.Visits
			merged[child.Move].Rewards += child.Rewards
			seen[child.Move] = true
		}
	}

	children := make([]ChildStats, 0, columns)
	for column, ok := range seen {
		if ok {
			children = append(children, merged[column])
		}
	}
	return children
}
