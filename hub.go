package main

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"gitlandbot/internal/protocol"
)

// Hub maintains the set of connected spectators and fans cycle reports out to them
type Hub struct {
	clients    map[*Client]bool
	latest     map[string]*protocol.CycleReport
	register   chan *Client
	unregister chan *Client
	reports    chan *protocol.CycleReport
	done       chan struct{}
}

func newHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		latest:     make(map[string]*protocol.CycleReport),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		reports:    make(chan *protocol.CycleReport, 16),
		done:       make(chan struct{}),
	}
}

func (h *Hub) run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.handleConnect(client)
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("[Hub] Spectator %s disconnected", client.id)
			}
		case report := <-h.reports:
			h.latest[report.Agent] = report
			h.broadcast(&protocol.Message{Type: protocol.TypeCycle, Report: report})
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			log.Println("[Hub] Stopped")
			return
		}
	}
}

// Publish queues a report for broadcast. It never blocks an agent for long.
func (h *Hub) Publish(report *protocol.CycleReport) {
	select {
	case h.reports <- report:
	case <-h.done:
	case <-time.After(time.Second):
		log.Printf("[Hub] Dropped report %s: hub busy", report.ID)
	}
}

func (h *Hub) handleConnect(client *Client) {
	agents := make([]string, 0, len(h.latest))
	for name := range h.latest {
		agents = append(agents, name)
	}
	sort.Strings(agents)

	h.sendToClient(client, &protocol.Message{
		Type:        protocol.TypeWelcome,
		SpectatorID: client.id,
		Agents:      agents,
	})
	for _, name := range agents {
		h.sendToClient(client, &protocol.Message{Type: protocol.TypeCycle, Report: h.latest[name]})
	}

	log.Printf("[Hub] Spectator %s connected", client.id)
}

func (h *Hub) broadcast(msg *protocol.Message) {
	for client := range h.clients {
		h.sendToClient(client, msg)
	}
}

func (h *Hub) sendToClient(client *Client, msg *protocol.Message) {
	if _, ok := h.clients[client]; !ok {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[Hub] Error marshaling message: %v", err)
		return
	}

	select {
	case client.send <- data:
	default:
		close(client.send)
		delete(h.clients, client)
		log.Printf("[Hub] Dropped slow spectator %s", client.id)
	}
}
