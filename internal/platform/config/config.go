package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const fileName = "config.yaml"

// fileConfig is the on-disk shape. Every field is optional; zero values fall
// back to defaults so a partial config.yaml stays valid.
type fileConfig struct {
	APIBaseURL     string `yaml:"api_base_url"`
	Offline        *bool  `yaml:"offline"`
	ProgressTickMS int    `yaml:"progress_tick_ms"`
	LivePollMS     int    `yaml:"live_poll_ms"`
	HistoryCap     int    `yaml:"history_cap"`
}

type Config struct {
	DataDir    string
	DBPath     string
	APIBaseURL string
	Offline    bool

	// Timer cadence for the benchmark runner.
	ProgressTick time.Duration
	LivePoll     time.Duration

	// Most-recent-N cap for locally persisted benchmark history.
	HistoryCap int
}

func (c Config) SessionPath() string {
	return filepath.Join(c.DataDir, "session.json")
}

func (c Config) SnapshotPath() string {
	return filepath.Join(c.DataDir, "snapshot.json")
}

func (c Config) ProbeManifestPath() string {
	return filepath.Join(c.DataDir, "probes", "probes.json")
}

// New resolves the data directory, merges config.yaml over defaults, and
// derives all file paths under the data directory.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".sdu")
	}

	cfg := Config{
		DataDir:      dataDir,
		DBPath:       filepath.Join(dataDir, "sdu.db"),
		APIBaseURL:   "http://127.0.0.1:8000/api",
		Offline:      false,
		ProgressTick: 100 * time.Millisecond,
		LivePoll:     time.Second,
		HistoryCap:   10,
	}

	raw, err := os.ReadFile(filepath.Join(dataDir, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.Offline != nil {
		cfg.Offline = *fc.Offline
	}
	if fc.ProgressTickMS > 0 {
		cfg.ProgressTick = time.Duration(fc.ProgressTickMS) * time.Millisecond
	}
	if fc.LivePollMS > 0 {
		cfg.LivePoll = time.Duration(fc.LivePollMS) * time.Millisecond
	}
	if fc.HistoryCap > 0 {
		cfg.HistoryCap = fc.HistoryCap
	}
	return cfg, nil
}
