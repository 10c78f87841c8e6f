package world

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"gitlandbot/internal/board"
)

// Player is the public state of a gitland participant.
type Player struct {
	Name     string
	Team     board.Color
	Position board.Position
	Seen     time.Time
}

// LastSeen renders how long ago the player last acted, relative to now.
func (p Player) LastSeen(now time.Time) string {
	if p.Seen.IsZero() {
		return "never"
	}
	if now.Sub(p.Seen) <= 30*time.Second {
		return "just now"
	}
	return humanize.RelTime(p.Seen, now, "ago", "from now")
}

// Roster lists every player directory under <Dir>/players, sorted by name.
// Players whose files cannot be read are skipped.
func (g *Gitland) Roster() ([]Player, error) {
	root := filepath.Join(g.Dir, "players")
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	players := make([]Player, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		p, err := readPlayer(dir)
		if err != nil {
			continue
		}
		if b, err := os.ReadFile(filepath.Join(dir, "timestamp")); err == nil {
			if ts, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64); err == nil {
				p.Seen = time.Unix(ts, 0)
			}
		}
		players = append(players, *p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players, nil
}
