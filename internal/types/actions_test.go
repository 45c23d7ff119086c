package types

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/status-system/progression/internal/engine"
)

var testNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func TestActionRequest_Action(t *testing.T) {
	hp := 40
	tests := []struct {
		name    string
		req     string
		want    engine.Action
		wantErr error
	}{
		{
			name: "no payload",
			req:  `{"type":"COMPLETE_AWAKENING"}`,
			want: engine.CompleteAwakening{},
		},
		{
			name: "complete quest",
			req:  `{"type":"COMPLETE_DAILY_QUEST","payload":{"id":"q1"}}`,
			want: engine.CompleteDailyQuest{ID: "q1"},
		},
		{
			name: "add core quest",
			req:  `{"type":"ADD_CORE_QUEST","payload":{"title":"Sleep","attribute":"HLTH","xpReward":25}}`,
			want: engine.AddCoreQuest{Quest: engine.QuestInput{Title: "Sleep", Attribute: engine.AttributeHLTH, XPReward: 25}},
		},
		{
			name: "sub-quest",
			req:  `{"type":"COMPLETE_SUB_QUEST","payload":{"bossId":"b1","subQuestId":"s2"}}`,
			want: engine.CompleteSubQuest{BossID: "b1", SubQuestID: "s2"},
		},
		{
			name: "delete raid",
			req:  `{"type":"DELETE_BOSS_RAID","payload":{"id":"b1"}}`,
			want: engine.DeleteBossRaid{ID: "b1"},
		},
		{
			name: "partial vitals",
			req:  `{"type":"UPDATE_HP_MP","payload":{"hp":40}}`,
			want: engine.UpdateHPMP{HP: &hp},
		},
		{
			name:    "unknown type",
			req:     `{"type":"LEVEL_UP_FOR_FREE"}`,
			wantErr: ErrUnknownAction,
		},
		{
			name:    "missing payload",
			req:     `{"type":"SET_PLAYER_NAME"}`,
			wantErr: ErrInvalidPayload,
		},
		{
			name:    "malformed payload",
			req:     `{"type":"ADD_BOSS_RAID","payload":{"totalHp":"lots"}}`,
			wantErr: ErrInvalidPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ActionRequest
			if err := json.Unmarshal([]byte(tt.req), &req); err != nil {
				t.Fatalf("Failed to unmarshal request: %v", err)
			}
			got, err := req.Action(testNow)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestActionRequest_LoadStateDefaults(t *testing.T) {
	req := ActionRequest{
		Type:    engine.KindLoadState,
		Payload: json.RawMessage(`{"player":{"name":"JIN","attributes":{"STR":{"level":12,"xp":5,"maxXp":285}}}}`),
	}
	got, err := req.Action(testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	load, ok := got.(engine.LoadState)
	if !ok {
		t.Fatalf("Expected LoadState, got %T", got)
	}
	s := load.State

	if s.Player.Name != "JIN" || s.Player.Attributes.STR.Level != 12 {
		t.Errorf("Expected payload fields kept, got %+v", s.Player)
	}
	intAttr := s.Player.Attributes.INT
	if intAttr.Level != 1 || intAttr.MaxXP != engine.BaseXPPerLevel {
		t.Errorf("Expected INT to default to level 1, got %+v", intAttr)
	}
	if s.Player.MaxHP != engine.DefaultMaxHP || !s.Settings.PenaltyEnabled {
		t.Errorf("Expected default vitals and settings, got maxHp=%d settings=%+v", s.Player.MaxHP, s.Settings)
	}
	if s.DailyQuests == nil || s.Player.Rank != engine.RankE {
		t.Errorf("Expected empty quests and rank E, got quests=%v rank=%q", s.DailyQuests, s.Player.Rank)
	}
}
