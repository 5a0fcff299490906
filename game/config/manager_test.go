package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeBoard(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write board file: %v", err)
	}
}

func TestManager_Default(t *testing.T) {
	m := NewManager(t.TempDir())

	cfg := m.Default()
	if cfg.Columns != 7 || cfg.Rows != 6 || cfg.WinLength != 4 {
		t.Errorf("unexpected default board: %+v", cfg)
	}

	// The built-in name and the empty name both resolve to it.
	for _, name := range []string{"", DefaultBoardName} {
		got, err := m.Load(name)
		if err != nil {
			t.Errorf("Load(%q) failed: %v", name, err)
		}
		if got != cfg {
			t.Errorf("Load(%q) = %+v, want default", name, got)
		}
	}
}

func TestManager_LoadPreset(t *testing.T) {
	dir := t.TempDir()
	writeBoard(t, dir, "big.json", `{"name":"big","columns":9,"rows":7,"win_length":5}`)
	m := NewManager(dir)

	cfg, err := m.Load("big")
	if err != nil {
		t.Fatalf("failed to load preset: %v", err)
	}
	if cfg.Columns != 9 || cfg.Rows != 7 || cfg.WinLength != 5 {
		t.Errorf("unexpected preset: %+v", cfg)
	}

	// Cached on second load even if the file disappears.
	if err := os.Remove(filepath.Join(dir, "big.json")); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Load("big"); err != nil {
		t.Errorf("cached preset should still load: %v", err)
	}
}

func TestManager_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	writeBoard(t, dir, "broken.json", `{not json`)
	writeBoard(t, dir, "tiny.json", `{"columns":1,"rows":1,"win_length":1}`)
	m := NewManager(dir)

	t.Run("missing preset", func(t *testing.T) {
		if _, err := m.Load("nope"); !errors.Is(err, ErrBoardNotFound) {
			t.Errorf("expected ErrBoardNotFound, got %v", err)
		}
	})

	t.Run("unparsable preset", func(t *testing.T) {
		if _, err := m.Load("broken"); !errors.Is(err, ErrInvalidBoard) {
			t.Errorf("expected ErrInvalidBoard, got %v", err)
		}
	})

	t.Run("unplayable dimensions", func(t *testing.T) {
		if _, err := m.Load("tiny"); !errors.Is(err, ErrInvalidBoard) {
			t.Errorf("expected ErrInvalidBoard, got %v", err)
		}
	})
}

func TestManager_List(t *testing.T) {
	t.Run("missing directory still lists the built-in board", func(t *testing.T) {
		m := NewManager(filepath.Join(t.TempDir(), "does-not-exist"))

		boards, err := m.List()
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(boards) != 1 || boards[0].ID != DefaultBoardName {
			t.Errorf("expected just the built-in board, got %+v", boards)
		}
	})

	t.Run("valid presets are listed, invalid ones skipped", func(t *testing.T) {
		dir := t.TempDir()
		writeBoard(t, dir, "big.json", `{"columns":9,"rows":7,"win_length":5}`)
		writeBoard(t, dir, "broken.json", `{not json`)
		writeBoard(t, dir, "notes.txt", `not a preset`)
		m := NewManager(dir)

		boards, err := m.List()
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(boards) != 2 {
			t.Fatalf("expected built-in plus one preset, got %+v", boards)
		}
		if boards[1].ID != "big" {
			t.Errorf("expected preset 'big', got %+v", boards[1])
		}
		if boards[1].Name != "big" {
			t.Errorf("nameless preset should default to its ID, got %q", boards[1].Name)
		}
	})
}
