package metrics

import (
	"reversi/game"
	"sync/atomic"
	"time"
)

// SearchMetric describes the work done for one decision.
type SearchMetric struct {
	Strategy    string
	Duration    time.Duration
	Nodes       int // Tree nodes created
	Visits      int // Recursive descents or search positions visited
	Rollouts    int
	Evaluations int
	// Scores holds the final per-move statistic in legal-move order (mean
	// reward for bandit and tree searches, backed-up value for minimax).
	Scores []float64
}

type MoveMetric struct {
	Step   int
	Player game.Player
	Move   game.Move
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Player
	Winner         game.Player
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Passes         int
	BlackDiscs     int
	WhiteDiscs     int
}

// Collector counts search work. One collector serves one decision.
type Collector interface {
	Start(strategy string)
	AddNode()
	AddVisit()
	AddRollout()
	AddEvaluation()
	SetScores(scores []float64)
	Complete() SearchMetric
}

type collector struct {
	strategy    string
	startTime   time.Time
	nodes       atomic.Int64
	visits      atomic.Int64
	rollouts    atomic.Int64
	evaluations atomic.Int64
	scores      []float64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(strategy string) {
	m.strategy = strategy
	m.startTime = time.Now()
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddVisit() {
	m.visits.Add(1)
}

func (m *collector) AddRollout() {
	m.rollouts.Add(1)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) SetScores(scores []float64) {
	m.scores = scores
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Strategy:    m.strategy,
		Duration:    time.Since(m.startTime),
		Nodes:       int(m.nodes.Load()),
		Visits:      int(m.visits.Load()),
		Rollouts:    int(m.rollouts.Load()),
		Evaluations: int(m.evaluations.Load()),
		Scores:      m.scores,
	}
}
