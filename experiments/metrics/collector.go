package metrics

import (
	"connectn/game"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines   int
	Iterations   int
	Duration     time.Duration
	Episodes     int
	TerminalHits int // Iterations ending on an already expanded terminal node
	Nodes        int
	MaxDepth     int
}

// Throughput returns the number of episodes completed per second.
func (m SearchMetric) Throughput() float64 {
	if m.Duration <= 0 {
		return 0
	}
	return float64(m.Episodes) / m.Duration.Seconds()
}

type MoveMetric struct {
	Step   int
	Player game.Player
	Move   game.Move
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Player
	Result         game.Result
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines, iterations int)
	AddEpisode()
	AddTerminalHit()
	AddNodes(n int)
	ObserveDepth(depth int)
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	iterations   int
	startTime    time.Time
	episodes     atomic.Int32
	terminalHits atomic.Int32
	nodes        atomic.Int32
	maxDepth     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, iterations int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.iterations = iterations
	m.episodes.Store(0)
	m.terminalHits.Store(0)
	m.nodes.Store(0)
	m.maxDepth.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddTerminalHit() {
	m.terminalHits.Add(1)
}

func (m *collector) AddNodes(n int) {
	m.nodes.Add(int32(n))
}

func (m *collector) ObserveDepth(depth int) {
	d := int32(depth)
	for {
		current := m.maxDepth.Load()
		if d <= current || m.maxDepth.CompareAndSwap(current, d) {
			return
		}
	}
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Iterations:   m.iterations,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		TerminalHits: int(m.terminalHits.Load()),
		Nodes:        int(m.nodes.Load()),
		MaxDepth:     int(m.maxDepth.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, iterations int) {}
func (m *dummyCollector) AddEpisode()                      {}
func (m *dummyCollector) AddTerminalHit()                  {}
func (m *dummyCollector) AddNodes(n int)                   {}
func (m *dummyCollector) ObserveDepth(depth int)           {}
func (m *dummyCollector) Complete() SearchMetric           { return SearchMetric{} }
