package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dropfour/dropfour/game/engine"
)

var (
	ErrBoardNotFound = errors.New("board configuration not found")
	ErrInvalidBoard  = errors.New("invalid board configuration")
)

// DefaultBoardName selects the built-in classic board.
const DefaultBoardName = "classic"

// Manager loads and caches board presets. Presets are JSON files in the
// configured directory; the classic board is always available without
// any files. A missing directory is not an error, it just means only
// the built-in board exists.
type Manager struct {
	boardDir string

	mu     sync.RWMutex
	boards map[string]engine.Config
}

// Info describes one available board preset.
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Columns     int    `json:"columns"`
	Rows        int    `json:"rows"`
	WinLength   int    `json:"win_length"`
}

// NewManager creates a manager over the given preset directory.
func NewManager(boardDir string) *Manager {
	return &Manager{
		boardDir: boardDir,
		boards:   make(map[string]engine.Config),
	}
}

// Default returns the classic 7x6 board.
func (m *Manager) Default() engine.Config {
	return engine.DefaultConfig()
}

// Load returns the board preset with the given name. The name maps to
// <boardDir>/<name>.json, except DefaultBoardName which is built in.
func (m *Manager) Load(name string) (engine.Config, error) {
	if name == "" || name == DefaultBoardName {
		return m.Default(), nil
	}

	m.mu.RLock()
	cfg, cached := m.boards[name]
	m.mu.RUnlock()
	if cached {
		return cfg, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if cfg, cached := m.boards[name]; cached {
		return cfg, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}
	data, err := os.ReadFile(filepath.Join(m.boardDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return engine.Config{}, ErrBoardNotFound
		}
		return engine.Config{}, fmt.Errorf("failed to read board file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return engine.Config{}, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}
	if cfg.Name == "" {
		cfg.Name = name
	}
	if err := cfg.Validate(); err != nil {
		return engine.Config{}, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}

	m.boards[name] = cfg
	return cfg, nil
}

// List returns the built-in board plus every valid preset on disk.
// Unreadable or invalid files are skipped, not fatal.
func (m *Manager) List() ([]Info, error) {
	def := m.Default()
	out := []Info{{
		ID:        DefaultBoardName,
		Name:      def.Name,
		Columns:   def.Columns,
		Rows:      def.Rows,
		WinLength: def.WinLength,
	}}

	entries, err := os.ReadDir(m.boardDir)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, fmt.Errorf("failed to read board directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		cfg, err := m.Load(id)
		if err != nil {
			continue
		}
		out = append(out, Info{
			ID:          id,
			Name:        cfg.Name,
			Description: cfg.Description,
			Columns:     cfg.Columns,
			Rows:        cfg.Rows,
			WinLength:   cfg.WinLength,
		})
	}
	return out, nil
}
