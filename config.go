package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"gitlandbot/internal/pathfind"
)

const defaultConfigPath = "gitland.yaml"

type AgentConfig struct {
	Name     string `yaml:"name"`
	RepoDir  string `yaml:"repo_dir"`
	Ordering string `yaml:"ordering"`
}

type Config struct {
	Interval   time.Duration `yaml:"interval"`
	GitlandDir string        `yaml:"gitland_dir"`
	Ordering   string        `yaml:"ordering"`
	Sync       bool          `yaml:"sync"`
	Verbose    bool          `yaml:"verbose"`
	Journal    string        `yaml:"journal"`
	Listen     string        `yaml:"listen"`
	Agents     []AgentConfig `yaml:"agents"`
}

func defaultConfig() Config {
	return Config{
		Interval:   30 * time.Second,
		GitlandDir: "gitland",
		Ordering:   "priority",
		Sync:       true,
	}
}

// LoadConfig reads the YAML file at path and applies environment overrides.
// A missing file is only tolerated for the default path.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = getEnv("GITLAND_CONFIG", defaultConfigPath)
		explicit = path != defaultConfigPath
	}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	for i := range cfg.Agents {
		if cfg.Agents[i].RepoDir == "" {
			cfg.Agents[i].RepoDir = "."
		}
		if cfg.Agents[i].Ordering == "" {
			cfg.Agents[i].Ordering = cfg.Ordering
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	c.Listen = getEnv("GITLAND_LISTEN", c.Listen)
	c.Journal = getEnv("GITLAND_JOURNAL", c.Journal)
	if v := os.Getenv("GITLAND_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("GITLAND_INTERVAL: %w", err)
		}
		c.Interval = d
	}
	if player := os.Getenv("GITLAND_PLAYER"); player != "" && len(c.Agents) == 0 {
		c.Agents = []AgentConfig{{Name: player}}
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", c.Interval)
	}
	if len(c.Agents) == 0 {
		return errors.New("no agents configured")
	}
	if _, ok := pathfind.OrderingByName(c.Ordering); !ok {
		return fmt.Errorf("unknown ordering %q", c.Ordering)
	}
	seen := make(map[string]bool, len(c.Agents))
	for _, a := range c.Agents {
		if a.Name == "" {
			return errors.New("agent without a name")
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate agent %q", a.Name)
		}
		seen[a.Name] = true
		if _, ok := pathfind.OrderingByName(a.Ordering); !ok {
			return fmt.Errorf("agent %s: unknown ordering %q", a.Name, a.Ordering)
		}
	}
	return nil
}

// GitlandPath resolves the game clone used by an agent.
func (c *Config) GitlandPath(a AgentConfig) string {
	if filepath.IsAbs(c.GitlandDir) {
		return c.GitlandDir
	}
	return filepath.Join(a.RepoDir, c.GitlandDir)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
