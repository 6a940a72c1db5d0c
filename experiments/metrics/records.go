package metrics

import (
	"github.com/google/uuid"
)

// Agent kinds understood by the arena.
const (
	KindMCTS     = "mcts"
	KindSampling = "sampling"
	KindRandom   = "random"
)

type AgentConfig struct {
	ID          int     `yaml:"id"`
	Kind        string  `yaml:"kind"`
	Goroutines  int     `yaml:"goroutines"`
	Iterations  int     `yaml:"iterations"`
	Temperature float64 `yaml:"temperature,omitempty"` // Sampling agents only
	Seed        uint64  `yaml:"seed,omitempty"`        // 0 seeds from the clock
}

type GameRecord struct {
	ID     uuid.UUID
	Agent1 int // AgentConfig.ID of the first player
	Agent2 int // AgentConfig.ID of the second player
	GameMetric
}

type MoveRecord struct {
	Game uuid.UUID // GameRecord.ID
	MoveMetric
}

// GameRow is the Parquet layout of a GameRecord.
type GameRow struct {
	ID             string `parquet:"id"`
	Agent1         int32  `parquet:"agent1"`
	Agent2         int32  `parquet:"agent2"`
	StartingPlayer string `parquet:"starting_player,dict"`
	Result         string `parquet:"result,dict"`
	StartTimeMs    int64  `parquet:"start_time_ms"`
	EndTimeMs      int64  `parquet:"end_time_ms"`
	DurationNs     int64  `parquet:"duration_ns"`
	TotalMoves     int32  `parquet:"total_moves"`
}

// MoveRow is the Parquet layout of a MoveRecord.
type MoveRow struct {
	Game         string `parquet:"game,dict"`
	Step         int32  `parquet:"step"`
	Player       string `parquet:"player,dict"`
	Move         int32  `parquet:"move"`
	Goroutines   int32  `parquet:"goroutines"`
	Iterations   int32  `parquet:"iterations"`
	DurationNs   int64  `parquet:"duration_ns"`
	Episodes     int32  `parquet:"episodes"`
	TerminalHits int32  `parquet:"terminal_hits"`
	Nodes        int32  `parquet:"nodes"`
	MaxDepth     int32  `parquet:"max_depth"`
}

func (r GameRecord) Row() GameRow {
	return GameRow{
		ID:             r.ID.String(),
		Agent1:         int32(r.Agent1),
		Agent2:         int32(r.Agent2),
		StartingPlayer: r.StartingPlayer.String(),
		Result:         r.Result.String(),
		StartTimeMs:    r.StartTime.UnixMilli(),
		EndTimeMs:      r.EndTime.UnixMilli(),
		DurationNs:     int64(r.Duration),
		TotalMoves:     int32(r.TotalMoves),
	}
}

func (r MoveRecord) Row() MoveRow {
	return MoveRow{
		Game:         r.Game.String(),
		Step:         int32(r.Step),
		Player:       r.Player.String(),
		Move:         int32(r.Move),
		Goroutines:   int32(r.Goroutines),
		Iterations:   int32(r.Iterations),
		DurationNs:   int64(r.Duration),
		Episodes:     int32(r.Episodes),
		TerminalHits: int32(r.TerminalHits),
		Nodes:        int32(r.Nodes),
		MaxDepth:     int32(r.MaxDepth),
	}
}
