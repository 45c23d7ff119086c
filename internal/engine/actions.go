package engine

import "time"

// Action is the closed set of state transitions accepted by the Reducer.
// The unexported marker keeps the set sealed to this package.
type Action interface {
	Kind() string
	action()
}

// Action kinds as they appear on the wire and in logs.
const (
	KindLoadState             = "LOAD_STATE"
	KindSetPlayerName         = "SET_PLAYER_NAME"
	KindCompleteAwakening     = "COMPLETE_AWAKENING"
	KindCompleteConfiguration = "COMPLETE_CONFIGURATION"
	KindAddDailyQuest         = "ADD_DAILY_QUEST"
	KindAddCoreQuest          = "ADD_CORE_QUEST"
	KindCompleteDailyQuest    = "COMPLETE_DAILY_QUEST"
	KindDeleteDailyQuest      = "DELETE_DAILY_QUEST"
	KindAddBossRaid           = "ADD_BOSS_RAID"
	KindCompleteSubQuest      = "COMPLETE_SUB_QUEST"
	KindDeleteBossRaid        = "DELETE_BOSS_RAID"
	KindSetPenaltyTask        = "SET_PENALTY_TASK"
	KindActivatePenalty       = "ACTIVATE_PENALTY"
	KindCompletePenalty       = "COMPLETE_PENALTY"
	KindUpdateSettings        = "UPDATE_SETTINGS"
	KindUpdateHPMP            = "UPDATE_HP_MP"
	KindResetDailyQuests      = "RESET_DAILY_QUESTS"
	KindResetAll              = "RESET_ALL"
)

// QuestInput is the caller-supplied part of a daily quest.
type QuestInput struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Attribute   AttributeKey `json:"attribute"`
	XPReward    int          `json:"xpReward"`
	Deadline    *time.Time   `json:"deadline,omitempty"`
}

// SubQuestInput is the caller-supplied part of a raid step. An empty ID
// is filled in at creation.
type SubQuestInput struct {
	ID        string       `json:"id,omitempty"`
	Title     string       `json:"title"`
	XPReward  int          `json:"xpReward"`
	Attribute AttributeKey `json:"attribute"`
}

// RaidInput is the caller-supplied part of a boss raid.
type RaidInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	TotalHP     int             `json:"totalHp"`
	SubQuests   []SubQuestInput `json:"subQuests"`
	Deadline    *time.Time      `json:"deadline,omitempty"`
}

// SettingsPatch carries only the settings to overwrite.
type SettingsPatch struct {
	PenaltyEnabled       *bool `json:"penaltyEnabled,omitempty"`
	NotificationsEnabled *bool `json:"notificationsEnabled,omitempty"`
	SoundEnabled         *bool `json:"soundEnabled,omitempty"`
	HapticEnabled        *bool `json:"hapticEnabled,omitempty"`
}

type LoadState struct{ State GameState }

type SetPlayerName struct{ Name string }

type CompleteAwakening struct{}

type CompleteConfiguration struct{}

type AddDailyQuest struct{ Quest QuestInput }

type AddCoreQuest struct{ Quest QuestInput }

type CompleteDailyQuest struct{ ID string }

type DeleteDailyQuest struct{ ID string }

type AddBossRaid struct{ Raid RaidInput }

type CompleteSubQuest struct {
	BossID     string
	SubQuestID string
}

type DeleteBossRaid struct{ ID string }

type SetPenaltyTask struct {
	Title       string
	Description string
}

type ActivatePenalty struct{}

type CompletePenalty struct{}

type UpdateSettings struct{ Patch SettingsPatch }

// UpdateHPMP sets either vital when provided. Values are clamped to
// [0, max].
type UpdateHPMP struct {
	HP *int
	MP *int
}

type ResetDailyQuests struct{}

type ResetAll struct{}

func (LoadState) Kind() string             { return KindLoadState }
func (SetPlayerName) Kind() string         { return KindSetPlayerName }
func (CompleteAwakening) Kind() string     { return KindCompleteAwakening }
func (CompleteConfiguration) Kind() string { return KindCompleteConfiguration }
func (AddDailyQuest) Kind() string         { return KindAddDailyQuest }
func (AddCoreQuest) Kind() string          { return KindAddCoreQuest }
func (CompleteDailyQuest) Kind() string    { return KindCompleteDailyQuest }
func (DeleteDailyQuest) Kind() string      { return KindDeleteDailyQuest }
func (AddBossRaid) Kind() string           { return KindAddBossRaid }
func (CompleteSubQuest) Kind() string      { return KindCompleteSubQuest }
func (DeleteBossRaid) Kind() string        { return KindDeleteBossRaid }
func (SetPenaltyTask) Kind() string        { return KindSetPenaltyTask }
func (ActivatePenalty) Kind() string       { return KindActivatePenalty }
func (CompletePenalty) Kind() string       { return KindCompletePenalty }
func (UpdateSettings) Kind() string        { return KindUpdateSettings }
func (UpdateHPMP) Kind() string            { return KindUpdateHPMP }
func (ResetDailyQuests) Kind() string      { return KindResetDailyQuests }
func (ResetAll) Kind() string              { return KindResetAll }

func (LoadState) action()             {}
func (SetPlayerName) action()         {}
func (CompleteAwakening) action()     {}
func (CompleteConfiguration) action() {}
func (AddDailyQuest) action()         {}
func (AddCoreQuest) action()          {}
func (CompleteDailyQuest) action()    {}
func (DeleteDailyQuest) action()      {}
func (AddBossRaid) action()           {}
func (CompleteSubQuest) action()      {}
func (DeleteBossRaid) action()        {}
func (SetPenaltyTask) action()        {}
func (ActivatePenalty) action()       {}
func (CompletePenalty) action()       {}
func (UpdateSettings) action()        {}
func (UpdateHPMP) action()            {}
func (ResetDailyQuests) action()      {}
func (ResetAll) action()              {}
