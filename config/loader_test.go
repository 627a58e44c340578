package config

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/lane-siege/component"
	"github.com/lixenwraith/lane-siege/level"
	"github.com/lixenwraith/lane-siege/rules"
)

func TestLoadFilePartialSuccess(t *testing.T) {
	var logs bytes.Buffer
	loaded, err := LoadFile("testdata/partial.toml", slog.New(slog.NewTextHandler(&logs, nil)))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	lvl := loaded.Level

	if lvl.Name != "partial" || lvl.Rows != 2 || lvl.Columns != 6 || lvl.Duration != 20*time.Second {
		t.Errorf("Unexpected params %+v", lvl.Params)
	}
	if lvl.CellSize != 1 || lvl.MaxReached != 1 {
		t.Errorf("Expected defaults for omitted params, got cell=%v maxReached=%d", lvl.CellSize, lvl.MaxReached)
	}
	if loaded.Policy.Name() != "survival" {
		t.Errorf("Expected survival policy, got %s", loaded.Policy.Name())
	}

	if len(lvl.Actors) != 2 {
		t.Errorf("Expected the ghost skipped, got %d actors", len(lvl.Actors))
	}
	shooter, ok := lvl.Actor("shooter")
	if !ok || shooter.Team != component.TeamDefender || !shooter.Ranged || shooter.AttackInterval != time.Second {
		t.Errorf("Unexpected shooter %+v", shooter)
	}

	if lvl.TotalWaves != 1 {
		t.Errorf("Expected one usable wave, got %d", lvl.TotalWaves)
	}
	entries := lvl.Waves.Entries(1)
	if len(entries) != 1 || entries[0].SpawnDelay != 500*time.Millisecond {
		t.Errorf("Unexpected wave 1 entries %+v", entries)
	}

	if len(lvl.Placements) != 1 || lvl.Placements[0] != (level.Placement{ActorType: "shooter", Lane: 0, Column: 1}) {
		t.Errorf("Expected only the defender placement kept, got %+v", lvl.Placements)
	}

	out := logs.String()
	for _, want := range []string{"difficulty", "unknown team", "skipping wave entry", "only defenders can be placed"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected log to mention %q", want)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"no level table", "[[actors]]\ntype = \"walker\"\n", ErrNoLevel},
		{"unknown policy", "[level]\npolicy = \"endless\"\n", rules.ErrUnknownPolicy},
		{"invalid params", "[level]\nrows = -1\n", level.ErrInvalidParams},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load([]byte(tt.data), nil); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadRejectsBadSyntax(t *testing.T) {
	if _, err := Load([]byte("[level]\nduration = \"soon\"\n"), nil); err == nil {
		t.Error("Expected an invalid duration to fail decoding")
	}
	if _, err := Load([]byte("[level\n"), nil); err == nil {
		t.Error("Expected malformed TOML to fail")
	}
}

func TestBuiltinMeadow(t *testing.T) {
	loaded, err := Builtin("meadow", nil)
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	lvl := loaded.Level
	if lvl.TotalWaves != 3 || len(lvl.Placements) != 6 || len(lvl.Actors) != 4 {
		t.Errorf("Unexpected meadow level waves=%d placements=%d actors=%d", lvl.TotalWaves, len(lvl.Placements), len(lvl.Actors))
	}
	if _, err := Builtin("missing", nil); err == nil {
		t.Error("Expected unknown builtin to fail")
	}
}
