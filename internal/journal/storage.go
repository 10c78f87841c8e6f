// Package journal archives every decided cycle in SQLite.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"gitlandbot/internal/board"
	"gitlandbot/internal/protocol"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS cycles (
	id TEXT PRIMARY KEY,
	agent TEXT NOT NULL,
	decided_at INTEGER NOT NULL,
	width INTEGER,
	height INTEGER,
	team TEXT,
	x INTEGER,
	y INTEGER,
	move TEXT,
	strategy TEXT,
	target_x INTEGER,
	target_y INTEGER,
	counters TEXT,
	board TEXT
);
CREATE INDEX IF NOT EXISTS cycles_agent_decided ON cycles (agent, decided_at);
`

// Journal is a SQLite-backed cycle archive.
type Journal struct {
	db *sql.DB
}

// Open creates the database file and its schema if needed.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// A single connection serialises writers from concurrent agents.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}

	log.Printf("[Journal] Initialized at %s", path)
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// SaveCycle stores one cycle report.
func (j *Journal) SaveCycle(ctx context.Context, r *protocol.CycleReport) error {
	counters, err := json.Marshal(r.Counters)
	if err != nil {
		return fmt.Errorf("encode counters: %w", err)
	}

	var tx, ty sql.NullInt64
	if r.Target != nil {
		tx = sql.NullInt64{Int64: int64(r.Target.X), Valid: true}
		ty = sql.NullInt64{Int64: int64(r.Target.Y), Valid: true}
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO cycles (id, agent, decided_at, width, height, team, x, y, move, strategy, target_x, target_y, counters, board)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.Agent,
		r.DecidedAt.UnixMilli(),
		r.Width,
		r.Height,
		r.Team,
		r.Position.X,
		r.Position.Y,
		r.Move,
		r.Strategy,
		tx,
		ty,
		string(counters),
		r.Board,
	)
	if err != nil {
		return fmt.Errorf("save cycle %s: %w", r.ID, err)
	}
	return nil
}

// Query filters Cycles. An empty Agent matches every agent; Limit <= 0 means no limit.
type Query struct {
	Agent string
	Limit int
}

// Cycles returns stored reports, newest first.
func (j *Journal) Cycles(ctx context.Context, q Query) ([]protocol.CycleReport, error) {
	query := `
		SELECT id, agent, decided_at, width, height, team, x, y, move, strategy, target_x, target_y, counters, board
		FROM cycles
		WHERE (? = '' OR agent = ?)
		ORDER BY decided_at DESC, rowid DESC`
	args := []any{q.Agent, q.Agent}
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cycles: %w", err)
	}
	defer rows.Close()

	var out []protocol.CycleReport
	for rows.Next() {
		var (
			r         protocol.CycleReport
			decidedAt int64
			strat     sql.NullString
			tx, ty    sql.NullInt64
			counters  string
		)
		err := rows.Scan(&r.ID, &r.Agent, &decidedAt, &r.Width, &r.Height, &r.Team,
			&r.Position.X, &r.Position.Y, &r.Move, &strat, &tx, &ty, &counters, &r.Board)
		if err != nil {
			return nil, fmt.Errorf("scan cycle: %w", err)
		}
		r.DecidedAt = time.UnixMilli(decidedAt)
		r.Strategy = strat.String
		if tx.Valid && ty.Valid {
			r.Target = &board.Position{X: int(tx.Int64), Y: int(ty.Int64)}
		}
		if err := json.Unmarshal([]byte(counters), &r.Counters); err != nil {
			return nil, fmt.Errorf("decode counters of %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
