package store

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/status-system/progression/internal/engine"
)

var snapNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func sampleState() engine.GameState {
	r := engine.NewReducer(&engine.FixedClock{T: snapNow}, nil)
	s := engine.DefaultGameState(snapNow)
	s = r.ApplyAll(s,
		engine.SetPlayerName{Name: "JIN"},
		engine.AddDailyQuest{Quest: engine.QuestInput{Title: "Run", Attribute: engine.AttributeSTR, XPReward: 30}},
		engine.AddBossRaid{Raid: engine.RaidInput{
			Name:    "Thesis",
			TotalHP: 3,
			SubQuests: []engine.SubQuestInput{
				{Title: "Outline", XPReward: 10, Attribute: engine.AttributeINT},
				{Title: "Draft", XPReward: 10, Attribute: engine.AttributeINT},
				{Title: "Edit", XPReward: 10, Attribute: engine.AttributeINT},
			},
		}},
		engine.SetPenaltyTask{Title: "Pushups", Description: "100 reps"},
	)
	s = r.Apply(s, engine.CompleteSubQuest{BossID: s.BossRaids[0].ID, SubQuestID: s.BossRaids[0].SubQuests[0].ID})
	return s
}

func TestSnapshot_RoundTrip(t *testing.T) {
	state := sampleState()

	data, err := EncodeSnapshot(&state, snapNow)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(data), `"version":1`) {
		t.Errorf("Expected version envelope, got %s", data)
	}

	got, err := DecodeSnapshot(data, snapNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Compare through JSON so monotonic clock readings do not matter.
	want, _ := json.Marshal(state)
	have, _ := json.Marshal(got)
	if string(want) != string(have) {
		t.Errorf("round trip mismatch:\nwant %s\ngot  %s", want, have)
	}
	if got.BossRaids[0].CurrentHP != 2 {
		t.Errorf("Expected fractional HP to survive, got %v", got.BossRaids[0].CurrentHP)
	}
}

func TestDecodeSnapshot_BareStateFillsDefaults(t *testing.T) {
	// An unversioned document that predates settings and deadlines.
	doc := `{
		"player": {"name": "JIN", "hp": 80, "maxHp": 100, "mp": 50, "maxMp": 100,
			"attributes": {"STR": {"name": "STR", "fullName": "Strength", "level": 45, "xp": 0, "maxXp": 100}}},
		"dailyQuests": null,
		"isPenaltyActive": true
	}`

	got, err := DecodeSnapshot([]byte(doc), snapNow)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Player.Name != "JIN" || !got.IsPenaltyActive {
		t.Errorf("Expected saved fields to be kept, got %+v", got.Player)
	}
	if !reflect.DeepEqual(got.Settings, engine.DefaultSettings()) {
		t.Errorf("Expected default settings, got %+v", got.Settings)
	}
	if got.DailyQuests == nil || got.BossRaids == nil || got.Deadlines == nil {
		t.Error("Expected collections to be non-nil")
	}
	if got.Player.Attributes.INT.Level != 1 {
		t.Errorf("Expected missing attribute to default to level 1, got %d", got.Player.Attributes.INT.Level)
	}
	// 45 + 1 + 1 + 1 = 48 total levels.
	if got.Player.Rank != engine.RankD {
		t.Errorf("Expected rank re-derived as D, got %s", got.Player.Rank)
	}
}

func TestDecodeSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{{`},
		{"future version", `{"version": 99, "state": {}}`},
		{"negative version", `{"version": -1, "state": {}}`},
		{"missing state", `{"version": 1}`},
		{"wrong type", `{"version": 1, "state": {"dailyQuests": "nope"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSnapshot([]byte(tt.doc), snapNow)
			if !errors.Is(err, ErrMalformedSnapshot) {
				t.Errorf("Expected ErrMalformedSnapshot, got %v", err)
			}
		})
	}
}
