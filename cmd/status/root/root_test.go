package root

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/status-system/progression/internal/engine"
	"github.com/status-system/progression/internal/store"
)

func setupCLI(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "status.db")
	t.Setenv("STATUS_STORE", "sqlite")
	t.Setenv("STATUS_SQLITE_PATH", path)
	t.Setenv("STATUS_TIMEZONE", "UTC")
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func loadState(t *testing.T, path string) *engine.GameState {
	t.Helper()
	s, err := store.NewSQLiteStore(context.Background(), path, "default")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()
	state, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return state
}

func TestCLI_QuestLifecycle(t *testing.T) {
	path := setupCLI(t)

	out, err := run(t, "quest", "add", "Run 5km", "-a", "str", "--xp", "30")
	if err != nil {
		t.Fatalf("quest add: %v", err)
	}
	if !strings.Contains(out, "Quest added:") {
		t.Errorf("unexpected output: %q", out)
	}

	state := loadState(t, path)
	if len(state.DailyQuests) != 1 {
		t.Fatalf("Expected 1 quest, got %d", len(state.DailyQuests))
	}
	id := state.DailyQuests[0].ID

	out, err = run(t, "quest", "complete", id)
	if err != nil {
		t.Fatalf("quest complete: %v", err)
	}
	if !strings.Contains(out, "+30 STR XP") {
		t.Errorf("Expected XP gain in output, got %q", out)
	}

	if _, err := run(t, "quest", "complete", id); err == nil {
		t.Error("Expected error completing a quest twice")
	}

	out, err = run(t, "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Run 5km", "E-RANK", "30 / 100"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected show output to contain %q, got %q", want, out)
		}
	}

	if _, err := run(t, "quest", "delete", id); err != nil {
		t.Fatalf("quest delete: %v", err)
	}
	if got := len(loadState(t, path).DailyQuests); got != 0 {
		t.Errorf("Expected quest to be deleted, got %d quests", got)
	}
}

func TestCLI_CoreQuestCannotBeDeleted(t *testing.T) {
	path := setupCLI(t)

	if _, err := run(t, "quest", "add", "Sleep 8h", "-a", "HLTH", "--core", "-d", "easy"); err != nil {
		t.Fatalf("quest add: %v", err)
	}
	q := loadState(t, path).DailyQuests[0]
	if !q.IsCore || q.XPReward != 25 {
		t.Errorf("Expected easy core quest worth 25 XP, got %+v", q)
	}
	if _, err := run(t, "quest", "delete", q.ID); err == nil {
		t.Error("Expected error deleting a core quest")
	}
}

func TestCLI_RaidLifecycle(t *testing.T) {
	path := setupCLI(t)

	_, err := run(t, "raid", "add", "Thesis", "--hp", "3",
		"--sub", "Outline", "--sub", "Draft:INT:40", "--sub", "Defend:SOC", "--deadline", "2030-06-30")
	if err != nil {
		t.Fatalf("raid add: %v", err)
	}

	raid := loadState(t, path).BossRaids[0]
	if len(raid.SubQuests) != 3 || raid.Deadline == nil {
		t.Fatalf("unexpected raid: %+v", raid)
	}

	for i, sq := range raid.SubQuests {
		out, err := run(t, "raid", "hit", raid.ID, sq.ID)
		if err != nil {
			t.Fatalf("raid hit %d: %v", i, err)
		}
		if i == len(raid.SubQuests)-1 && !strings.Contains(out, "BOSS DEFEATED") {
			t.Errorf("Expected defeat message, got %q", out)
		}
	}

	final := loadState(t, path).BossRaids[0]
	if !final.IsDefeated || final.CurrentHP != 0 {
		t.Errorf("Expected defeated raid at 0 HP, got %+v", final)
	}
}

func TestCLI_Errors(t *testing.T) {
	setupCLI(t)

	tests := []struct {
		name string
		args []string
	}{
		{"bad attribute", []string{"quest", "add", "Nap", "-a", "LUCK"}},
		{"bad difficulty", []string{"quest", "add", "Nap", "-d", "legendary"}},
		{"unknown quest", []string{"quest", "complete", "nope"}},
		{"raid without steps", []string{"raid", "add", "Empty"}},
		{"raid bad deadline", []string{"raid", "add", "X", "--sub", "a", "--deadline", "tomorrow"}},
		{"penalty without one active", []string{"penalty", "complete"}},
		{"reset without confirmation", []string{"reset"}},
		{"bad store flag", []string{"--store", "postgres", "show"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Errorf("Expected error for %v", tt.args)
			}
		})
	}
}

func TestCLI_CheckAndReset(t *testing.T) {
	path := setupCLI(t)

	out, err := run(t, "check")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "Nothing to do.") {
		t.Errorf("Expected no-op check on a fresh state, got %q", out)
	}

	if _, err := run(t, "penalty", "set", "Pushups", "--desc", "100 reps"); err != nil {
		t.Fatalf("penalty set: %v", err)
	}
	if loadState(t, path).PenaltyTask == nil {
		t.Fatal("Expected penalty task to be saved")
	}

	if _, err := run(t, "reset", "--yes"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	s, err := store.NewSQLiteStore(context.Background(), path, "default")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()
	if _, err := s.Load(context.Background()); err != store.ErrStateNotFound {
		t.Errorf("Expected empty store after reset, got %v", err)
	}
}

func TestParseSubQuest(t *testing.T) {
	tests := []struct {
		in      string
		want    engine.SubQuestInput
		wantErr bool
	}{
		{in: "Outline", want: engine.SubQuestInput{Title: "Outline", Attribute: engine.AttributeINT, XPReward: 25}},
		{in: "Gym:str", want: engine.SubQuestInput{Title: "Gym", Attribute: engine.AttributeSTR, XPReward: 25}},
		{in: "Call mom:SOC:10", want: engine.SubQuestInput{Title: "Call mom", Attribute: engine.AttributeSOC, XPReward: 10}},
		{in: ":INT", wantErr: true},
		{in: "Gym:LUCK", wantErr: true},
		{in: "Gym:STR:many", wantErr: true},
		{in: "a:b:c:d", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSubQuest(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
