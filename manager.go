package main

import (
	"context"
	"fmt"
	"log"
	"sync"

	"gitlandbot/internal/pathfind"
	"gitlandbot/internal/world"
)

type AgentManager struct {
	config   *Config
	recorder Recorder
	hub      Publisher

	agents []*Agent
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.RWMutex
}

func NewAgentManager(config *Config, recorder Recorder, hub Publisher) *AgentManager {
	return &AgentManager{
		config:   config,
		recorder: recorder,
		hub:      hub,
		agents:   make([]*Agent, 0, len(config.Agents)),
	}
}

// newAgent wires an agent to the gitland clone and repository named by ac.
func (m *AgentManager) newAgent(ac AgentConfig) (*Agent, error) {
	ordering, ok := pathfind.OrderingByName(ac.Ordering)
	if !ok {
		return nil, fmt.Errorf("agent %s: unknown ordering %q", ac.Name, ac.Ordering)
	}

	gitlandDir := m.config.GitlandPath(ac)
	gitland := world.NewGitland(gitlandDir, ac.Name)

	agent := NewAgent(ac.Name, gitland, &world.ActFile{Dir: ac.RepoDir})
	agent.Interval = m.config.Interval
	agent.Verbose = m.config.Verbose
	agent.ordering = ordering
	agent.roster = gitland
	agent.recorder = m.recorder
	agent.hub = m.hub
	if m.config.Sync {
		agent.syncer = world.NewGit(gitlandDir, ac.RepoDir)
	}
	return agent, nil
}

// Start builds every configured agent and runs each in its own goroutine
func (m *AgentManager) Start(ctx context.Context) error {
	log.Printf("Starting %d agent(s)", len(m.config.Agents))

	agents := make([]*Agent, 0, len(m.config.Agents))
	for _, ac := range m.config.Agents {
		agent, err := m.newAgent(ac)
		if err != nil {
			return err
		}
		agents = append(agents, agent)
	}

	ctx, m.cancel = context.WithCancel(ctx)

	m.mu.Lock()
	m.agents = agents
	m.mu.Unlock()

	for i, agent := range agents {
		m.wg.Add(1)
		go func(a *Agent) {
			defer m.wg.Done()
			a.Run(ctx)
		}(agent)
		log.Printf("Agent %d/%d (%s) started", i+1, len(agents), agent.Name)
	}
	return nil
}

// RunOnce plays a single cycle for every configured agent, one after another.
func (m *AgentManager) RunOnce(ctx context.Context) error {
	var failed int
	for _, ac := range m.config.Agents {
		agent, err := m.newAgent(ac)
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.agents = append(m.agents, agent)
		m.mu.Unlock()

		if _, err := agent.RunCycle(ctx); err != nil {
			log.Printf("[Agent %s] Cycle failed: %v", agent.Name, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d agent cycles failed", failed, len(m.config.Agents))
	}
	return nil
}

// Stop cancels every agent and waits for their current cycle to finish
func (m *AgentManager) Stop() {
	log.Println("Stopping agents...")
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	log.Printf("All %d agents stopped", len(m.Agents()))
}

func (m *AgentManager) Agents() []*Agent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*Agent(nil), m.agents...)
}

// GetStats returns per-state agent counts plus cycle totals
func (m *AgentManager) GetStats() map[string]int {
	stats := map[string]int{
		"total":    0,
		"cycles":   0,
		"failures": 0,
	}
	for _, a := range m.Agents() {
		stats["total"]++
		a.mu.RLock()
		stats["cycles"] += a.cycles
		stats["failures"] += a.failures
		stats[a.state.String()]++
		a.mu.RUnlock()
	}
	return stats
}
