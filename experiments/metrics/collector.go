package metrics

import (
	"sync/atomic"
	"time"

	"othello/game"
)

type SearchMetric struct {
	Depth    int // Deepest fully completed iteration
	MaxDepth int
	Nodes    int
	Score    int
	Endgame  bool // Whether the search was widened to solve the endgame
	Duration time.Duration
}

type MoveMetric struct {
	Step   int
	Player game.Player
	Move   game.Move
	SearchMetric
}

type GameMetric struct {
	Winner     string // "Black", "White" or "Draw"
	BlackScore int
	WhiteScore int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Passes     int
}

type Collector interface {
	Start(maxDepth int, endgame bool)
	AddNodes(n int)
	CompleteDepth(depth, score int)
	Complete() SearchMetric
}

type collector struct {
	maxDepth  int
	endgame   bool
	startTime time.Time
	nodes     atomic.Int64
	depth     atomic.Int32
	score     atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(maxDepth int, endgame bool) {
	m.startTime = time.Now()
	m.maxDepth = maxDepth
	m.endgame = endgame
	m.nodes.Store(0)
	m.depth.Store(0)
	m.score.Store(0)
}

func (m *collector) AddNodes(n int) {
	m.nodes.Add(int64(n))
}

func (m *collector) CompleteDepth(depth, score int) {
	m.depth.Store(int32(depth))
	m.score.Store(int64(score))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:    int(m.depth.Load()),
		MaxDepth: m.maxDepth,
		Nodes:    int(m.nodes.Load()),
		Score:    int(m.score.Load()),
		Endgame:  m.endgame,
		Duration: time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(maxDepth int, endgame bool) {}
func (m *dummyCollector) AddNodes(n int)                   {}
func (m *dummyCollector) CompleteDepth(depth, score int)   {}
func (m *dummyCollector) Complete() SearchMetric           { return SearchMetric{} }
