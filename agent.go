package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gitlandbot/internal/board"
	"gitlandbot/internal/pathfind"
	"gitlandbot/internal/protocol"
	"gitlandbot/internal/render"
	"gitlandbot/internal/strategy"
	"gitlandbot/internal/world"
)

// AgentState represents what an agent is doing right now
type AgentState int

const (
	AgentWaiting AgentState = iota
	AgentSyncing
	AgentDeciding
	AgentPublishing
	AgentStopped
)

func (s AgentState) String() string {
	switch s {
	case AgentWaiting:
		return "WAITING"
	case AgentSyncing:
		return "SYNCING"
	case AgentDeciding:
		return "DECIDING"
	case AgentPublishing:
		return "PUBLISHING"
	case AgentStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// Syncer moves the shared repository state in and out of a cycle.
type Syncer interface {
	Pull(ctx context.Context) error
	Publish(ctx context.Context) error
}

// Recorder archives completed cycles.
type Recorder interface {
	SaveCycle(ctx context.Context, r *protocol.CycleReport) error
}

// Publisher fans completed cycles out to spectators.
type Publisher interface {
	Publish(r *protocol.CycleReport)
}

// Rosterer lists every player of the game.
type Rosterer interface {
	Roster() ([]world.Player, error)
}

// Agent plays one gitland player. Each agent owns its provider, sink and
// sync so several agents can share a process.
type Agent struct {
	Name     string
	Interval time.Duration
	Verbose  bool

	provider world.Provider
	sink     world.Sink
	syncer   Syncer
	roster   Rosterer
	recorder Recorder
	hub      Publisher
	ordering pathfind.Ordering
	selector strategy.Selector
	now      func() time.Time

	mu       sync.RWMutex
	state    AgentState
	last     *protocol.CycleReport
	cycles   int
	failures int
}

func NewAgent(name string, provider world.Provider, sink world.Sink) *Agent {
	return &Agent{
		Name:     name,
		Interval: 30 * time.Second,
		provider: provider,
		sink:     sink,
		ordering: pathfind.PriorityOrdering{},
		selector: strategy.DefaultSelector(),
		now:      time.Now,
	}
}

func (a *Agent) setState(s AgentState) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

// State returns the current state of the agent.
func (a *Agent) State() AgentState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Last returns the most recent successful cycle, or nil.
func (a *Agent) Last() *protocol.CycleReport {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.last
}

// Run plays one cycle immediately and then one per interval until ctx is done.
// A failed cycle is logged and skipped.
func (a *Agent) Run(ctx context.Context) {
	defer a.setState(AgentStopped)

	ticker := time.NewTicker(a.Interval)
	defer ticker.Stop()

	for {
		if _, err := a.RunCycle(ctx); err != nil && ctx.Err() == nil {
			log.Printf("[Agent %s] Cycle failed: %v", a.Name, err)
		}

		select {
		case <-ctx.Done():
			log.Printf("[Agent %s] Shutting down", a.Name)
			return
		case <-ticker.C:
		}
	}
}

// RunCycle fetches the world, decides a move and emits it.
func (a *Agent) RunCycle(ctx context.Context) (*protocol.CycleReport, error) {
	report, err := a.runCycle(ctx)

	a.mu.Lock()
	a.state = AgentWaiting
	if err != nil {
		a.failures++
	} else {
		a.cycles++
		a.last = report
	}
	a.mu.Unlock()

	return report, err
}

func (a *Agent) runCycle(ctx context.Context) (*protocol.CycleReport, error) {
	if a.syncer != nil {
		a.setState(AgentSyncing)
		if err := a.syncer.Pull(ctx); err != nil {
			log.Printf("[Agent %s] Pull failed: %v (using local state)", a.Name, err)
		}
	}

	a.setState(AgentDeciding)
	st, err := a.provider.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch world state: %w", err)
	}
	grid, decay, err := board.Parse(st.Board, st.Decay)
	if err != nil {
		return nil, err
	}
	cc, err := strategy.NewCycleContext(grid, decay, st.Team, st.Position, a.ordering)
	if err != nil {
		return nil, err
	}
	decision := a.selector.Decide(cc)

	if err := a.sink.Emit(ctx, decision.Move); err != nil {
		return nil, fmt.Errorf("emit move: %w", err)
	}

	report := a.buildReport(cc, decision)
	log.Printf("[Agent %s] Move %s (%s) from %v", a.Name, report.Move, strategyLabel(decision), cc.Position)
	if a.Verbose {
		a.logBoard(cc, decision)
	}

	a.setState(AgentPublishing)
	if a.recorder != nil {
		if err := a.recorder.SaveCycle(ctx, report); err != nil {
			log.Printf("[Agent %s] Journal write failed: %v", a.Name, err)
		}
	}
	if a.hub != nil {
		a.hub.Publish(report)
	}
	if a.syncer != nil {
		if err := a.syncer.Publish(ctx); err != nil {
			return report, fmt.Errorf("publish move: %w", err)
		}
	}
	return report, nil
}

func (a *Agent) buildReport(cc strategy.CycleContext, d strategy.Decision) *protocol.CycleReport {
	w, h := cc.Grid.Bounds()
	return &protocol.CycleReport{
		ID:        uuid.New().String(),
		Agent:     a.Name,
		DecidedAt: a.now(),
		Team:      cc.Team.String(),
		Position:  cc.Position,
		Move:      d.Move.String(),
		Strategy:  d.Strategy,
		Target:    d.Target,
		Width:     w,
		Height:    h,
		Board:     cc.Grid.CSV(),
		Counters:  cc.Counters,
	}
}

func strategyLabel(d strategy.Decision) string {
	if d.Strategy == "" {
		return "no reachable target"
	}
	return fmt.Sprintf("%s toward %v", d.Strategy, *d.Target)
}

func (a *Agent) logBoard(cc strategy.CycleContext, d strategy.Decision) {
	rule := strings.Repeat("=", 50) + "\n"

	var sb strings.Builder
	sb.WriteString(render.Summary(a.Name, cc.Team, cc.Position, d.Move.String()))
	sb.WriteString(render.Board(cc.Grid, cc.Position))
	sb.WriteString(rule)
	sb.WriteString(render.Stats(cc.Counters))
	sb.WriteString(rule)
	if a.roster != nil {
		if players, err := a.roster.Roster(); err == nil {
			sb.WriteString(render.Roster(players, a.now()))
			sb.WriteString(rule)
		}
	}
	log.Printf("[Agent %s] Cycle view:\n%s", a.Name, sb.String())
}
