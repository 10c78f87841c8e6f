package world

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner executes a command in dir and returns its combined output.
type Runner func(ctx context.Context, dir string, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// Git pulls the shared game clone and publishes the agent repository.
type Git struct {
	GitlandDir string
	RepoDir    string
	Run        Runner
	Now        func() time.Time
}

func NewGit(gitlandDir, repoDir string) *Git {
	return &Git{GitlandDir: gitlandDir, RepoDir: repoDir, Run: execRunner, Now: time.Now}
}

// Pull fetches the latest board.
func (g *Git) Pull(ctx context.Context) error {
	if out, err := g.Run(ctx, g.GitlandDir, "git", "pull"); err != nil {
		return fmt.Errorf("git pull: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Publish commits everything in the agent repository and pushes it.
// Having nothing to commit is not an error.
func (g *Git) Publish(ctx context.Context) error {
	if out, err := g.Run(ctx, g.RepoDir, "git", "add", "-A"); err != nil {
		return fmt.Errorf("git add: %w: %s", err, strings.TrimSpace(string(out)))
	}

	msg := fmt.Sprintf("Update %s", g.Now().Format(time.RFC3339))
	out, err := g.Run(ctx, g.RepoDir, "git", "commit", "-m", msg)
	if err != nil {
		if nothingToCommit(out) {
			return nil
		}
		return fmt.Errorf("git commit: %w: %s", err, strings.TrimSpace(string(out)))
	}

	if out, err := g.Run(ctx, g.RepoDir, "git", "push"); err != nil {
		return fmt.Errorf("git push: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func nothingToCommit(out []byte) bool {
	s := string(out)
	return strings.Contains(s, "nothing to commit") || strings.Contains(s, "no changes added to commit")
}
