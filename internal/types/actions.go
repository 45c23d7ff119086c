package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/status-system/progression/internal/engine"
)

var (
	ErrUnknownAction  = errors.New("unknown action type")
	ErrInvalidPayload = errors.New("invalid action payload")
)

// Action decodes the request into a typed engine action. A LOAD_STATE
// payload is decoded over the default state stamped at now, so fields it
// leaves out keep their defaults.
func (r ActionRequest) Action(now time.Time) (engine.Action, error) {
	switch r.Type {
	case engine.KindCompleteAwakening:
		return engine.CompleteAwakening{}, nil
	case engine.KindCompleteConfiguration:
		return engine.CompleteConfiguration{}, nil
	case engine.KindActivatePenalty:
		return engine.ActivatePenalty{}, nil
	case engine.KindCompletePenalty:
		return engine.CompletePenalty{}, nil
	case engine.KindResetDailyQuests:
		return engine.ResetDailyQuests{}, nil
	case engine.KindResetAll:
		return engine.ResetAll{}, nil

	case engine.KindLoadState:
		p := engine.DefaultGameState(now)
		if err := r.decode(&p); err != nil {
			return nil, err
		}
		return engine.LoadState{State: engine.Normalize(p)}, nil

	case engine.KindSetPlayerName:
		var p NamePayload
		if err := r.decode(&p); err != nil {
			return nil, err
		}
		return engine.SetPlayerName{Name: p.Name}, nil

	case engine.KindAddDailyQuest, engine.KindAddCoreQuest:
		var p engine.QuestInput
		if err := r.decode(&p); err != nil {
			return nil, err
		}
		if r.Type == engine.KindAddCoreQuest {
			return engine.AddCoreQuest{Quest: p}, nil
		}
		return engine.AddDailyQuest{Quest: p}, nil

	case engine.KindCompleteDailyQuest, engine.KindDeleteDailyQuest, engine.KindDeleteBossRaid:
		var p IDPayload
		if err := r.decode(&p); err != nil {
			return nil, err
		}
		switch r.Type {
		case engine.KindCompleteDailyQuest:
			return engine.CompleteDailyQuest{ID: p.ID}, nil
		case engine.KindDeleteDailyQuest:
			return engine.DeleteDailyQuest{ID: p.ID}, nil
		default:
			return engine.DeleteBossRaid{ID: p.ID}, nil
		}

	case engine.KindAddBossRaid:
		var p engine.RaidInput
		if err := r.decode(&p); err != nil {
			return nil, err
		}
		return engine.AddBossRaid{Raid: p}, nil

	case engine.KindCompleteSubQuest:
		var p SubQuestPayload
		if err := r.decode(&p); err != nil {
			return nil, err
		}
		return engine.CompleteSubQuest{BossID: p.BossID, SubQuestID: p.SubQuestID}, nil

	case engine.KindSetPenaltyTask:
		var p PenaltyTaskPayload
		if err := r.decode(&p); err != nil {
			return nil, err
		}
		return engine.SetPenaltyTask{Title: p.Title, Description: p.Description}, nil

	case engine.KindUpdateSettings:
		var p engine.SettingsPatch
		if err := r.decode(&p); err != nil {
			return nil, err
		}
		return engine.UpdateSettings{Patch: p}, nil

	case engine.KindUpdateHPMP:
		var p VitalsPayload
		if err := r.decode(&p); err != nil {
			return nil, err
		}
		return engine.UpdateHPMP{HP: p.HP, MP: p.MP}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, r.Type)
	}
}

func (r ActionRequest) decode(v any) error {
	if len(bytes.TrimSpace(r.Payload)) == 0 {
		return fmt.Errorf("%w: %s requires a payload", ErrInvalidPayload, r.Type)
	}
	if err := json.Unmarshal(r.Payload, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}
