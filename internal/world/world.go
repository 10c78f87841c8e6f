// Package world connects the decision core to the shared gitland repository:
// reading the board and player files, writing the act file and syncing with git.
package world

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gitlandbot/internal/board"
	"gitlandbot/internal/strategy"
)

// State is the raw world state for one agent and one cycle.
type State struct {
	Board    []byte
	Decay    []byte
	Team     board.Color
	Position board.Position
}

// Provider fetches the world state at the start of a cycle.
type Provider interface {
	Fetch(ctx context.Context) (*State, error)
}

// Sink receives the move chosen for a cycle.
type Sink interface {
	Emit(ctx context.Context, m strategy.Move) error
}

// Gitland reads a local clone of the gitland repository:
//
//	<Dir>/map, <Dir>/decay, <Dir>/players/<Player>/{team,x,y,timestamp}
type Gitland struct {
	Dir    string
	Player string
}

func NewGitland(dir, player string) *Gitland {
	return &Gitland{Dir: dir, Player: player}
}

func (g *Gitland) Fetch(ctx context.Context) (*State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rawBoard, err := os.ReadFile(filepath.Join(g.Dir, "map"))
	if err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	rawDecay, err := os.ReadFile(filepath.Join(g.Dir, "decay"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read decay: %w", err)
	}

	p, err := readPlayer(filepath.Join(g.Dir, "players", g.Player))
	if err != nil {
		return nil, err
	}
	return &State{
		Board:    rawBoard,
		Decay:    rawDecay,
		Team:     p.Team,
		Position: p.Position,
	}, nil
}

func readPlayer(dir string) (*Player, error) {
	read := func(name string) (string, error) {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return "", fmt.Errorf("read player %s: %w", name, err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	readInt := func(name string) (int, error) {
		s, err := read(name)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, &board.MalformedInputError{Reason: "invalid player " + name, Value: s, Row: -1, Col: -1}
		}
		return v, nil
	}

	team, err := read("team")
	if err != nil {
		return nil, err
	}
	color, err := board.ParseColor(team)
	if err != nil {
		return nil, err
	}
	x, err := readInt("x")
	if err != nil {
		return nil, err
	}
	y, err := readInt("y")
	if err != nil {
		return nil, err
	}
	return &Player{
		Name:     filepath.Base(dir),
		Team:     color,
		Position: board.Position{X: x, Y: y},
	}, nil
}

// ActFile writes the move token to <Dir>/act.
type ActFile struct {
	Dir string
}

func (a *ActFile) Path() string {
	return filepath.Join(a.Dir, "act")
}

func (a *ActFile) Emit(ctx context.Context, m strategy.Move) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(a.Path(), []byte(m.String()), 0644); err != nil {
		return fmt.Errorf("write act: %w", err)
	}
	return nil
}
