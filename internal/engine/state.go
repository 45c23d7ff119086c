package engine

import "time"

// AttributeKey identifies one of the four trainable stats.
type AttributeKey string

const (
	AttributeSTR  AttributeKey = "STR"
	AttributeINT  AttributeKey = "INT"
	AttributeSOC  AttributeKey = "SOC"
	AttributeHLTH AttributeKey = "HLTH"
)

// AttributeKeys lists the closed attribute set in display order.
var AttributeKeys = []AttributeKey{AttributeSTR, AttributeINT, AttributeSOC, AttributeHLTH}

func (k AttributeKey) IsValid() bool {
	switch k {
	case AttributeSTR, AttributeINT, AttributeSOC, AttributeHLTH:
		return true
	default:
		return false
	}
}

// Attribute is a single stat with its own level curve.
// xp < maxXp holds after every award.
type Attribute struct {
	Name     AttributeKey `json:"name"`
	FullName string       `json:"fullName"`
	Level    int          `json:"level"`
	XP       int          `json:"xp"`
	MaxXP    int          `json:"maxXp"`
}

// Attributes holds exactly one Attribute per key.
type Attributes struct {
	STR  Attribute `json:"STR"`
	INT  Attribute `json:"INT"`
	SOC  Attribute `json:"SOC"`
	HLTH Attribute `json:"HLTH"`
}

// Get returns the attribute for key. Unknown keys return the zero value.
func (a Attributes) Get(key AttributeKey) Attribute {
	switch key {
	case AttributeSTR:
		return a.STR
	case AttributeINT:
		return a.INT
	case AttributeSOC:
		return a.SOC
	case AttributeHLTH:
		return a.HLTH
	default:
		return Attribute{}
	}
}

// With returns a copy of a with key replaced by attr.
func (a Attributes) With(key AttributeKey, attr Attribute) Attributes {
	switch key {
	case AttributeSTR:
		a.STR = attr
	case AttributeINT:
		a.INT = attr
	case AttributeSOC:
		a.SOC = attr
	case AttributeHLTH:
		a.HLTH = attr
	}
	return a
}

// Player is the identity, vitals and attribute sheet.
type Player struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Rank       Rank       `json:"rank"`
	HP         int        `json:"hp"`
	MaxHP      int        `json:"maxHp"`
	MP         int        `json:"mp"`
	MaxMP      int        `json:"maxMp"`
	Attributes Attributes `json:"attributes"`
	CreatedAt  time.Time  `json:"createdAt"`
	LastActive time.Time  `json:"lastActive"`
}

// DailyQuest is a recurring habit. IsComplete is reset in bulk at the
// daily-cycle boundary; ID and IsCore survive resets.
type DailyQuest struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Attribute   AttributeKey `json:"attribute"`
	XPReward    int          `json:"xpReward"`
	IsComplete  bool         `json:"isComplete"`
	IsCore      bool         `json:"isCore"`
	CreatedAt   time.Time    `json:"createdAt"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	Deadline    time.Time    `json:"deadline"`
}

// SubQuest is a step of a BossRaid. It is owned by exactly one raid.
type SubQuest struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	XPReward    int          `json:"xpReward"`
	Attribute   AttributeKey `json:"attribute"`
	IsComplete  bool         `json:"isComplete"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
}

// BossRaid is a multi-step goal with an HP pool.
// 0 <= CurrentHP <= TotalHP and IsDefeated iff CurrentHP == 0.
type BossRaid struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	TotalHP     int        `json:"totalHp"`
	CurrentHP   float64    `json:"currentHp"`
	SubQuests   []SubQuest `json:"subQuests"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	IsDefeated  bool       `json:"isDefeated"`
	CreatedAt   time.Time  `json:"createdAt"`
	DefeatedAt  *time.Time `json:"defeatedAt,omitempty"`
}

// Deadline is a standalone calendar marker, optionally tied to a raid.
type Deadline struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Date       time.Time `json:"date"`
	BossRaidID string    `json:"bossRaidId,omitempty"`
}

// PenaltyTask is the player-configured task that clears a penalty.
type PenaltyTask struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Settings struct {
	PenaltyEnabled       bool `json:"penaltyEnabled"`
	NotificationsEnabled bool `json:"notificationsEnabled"`
	SoundEnabled         bool `json:"soundEnabled"`
	HapticEnabled        bool `json:"hapticEnabled"`
}

// GameState is the aggregate root. It owns every child entity.
type GameState struct {
	Player          Player       `json:"player"`
	DailyQuests     []DailyQuest `json:"dailyQuests"`
	BossRaids       []BossRaid   `json:"bossRaids"`
	Deadlines       []Deadline   `json:"deadlines"`
	PenaltyTask     *PenaltyTask `json:"penaltyTask"`
	IsPenaltyActive bool         `json:"isPenaltyActive"`
	IsFirstLaunch   bool         `json:"isFirstLaunch"`
	IsConfigured    bool         `json:"isConfigured"`
	LastDailyReset  time.Time    `json:"lastDailyReset"`
	Settings        Settings     `json:"settings"`
}

const (
	DefaultPlayerID   = "1"
	DefaultPlayerName = "PLAYER"
	DefaultMaxHP      = 100
	DefaultMaxMP      = 100
	BaseXPPerLevel    = 100
)

func newAttribute(key AttributeKey, fullName string) Attribute {
	return Attribute{Name: key, FullName: fullName, Level: 1, XP: 0, MaxXP: BaseXPPerLevel}
}

// DefaultAttributes returns a fresh level-1 sheet.
func DefaultAttributes() Attributes {
	return Attributes{
		STR:  newAttribute(AttributeSTR, "Strength"),
		INT:  newAttribute(AttributeINT, "Intelligence"),
		SOC:  newAttribute(AttributeSOC, "Social"),
		HLTH: newAttribute(AttributeHLTH, "Health"),
	}
}

// DefaultSettings enables everything, including penalties.
func DefaultSettings() Settings {
	return Settings{
		PenaltyEnabled:       true,
		NotificationsEnabled: true,
		SoundEnabled:         true,
		HapticEnabled:        true,
	}
}

// DefaultGameState is the first-run state stamped at now.
func DefaultGameState(now time.Time) GameState {
	return GameState{
		Player: Player{
			ID:         DefaultPlayerID,
			Name:       DefaultPlayerName,
			Rank:       RankE,
			HP:         DefaultMaxHP,
			MaxHP:      DefaultMaxHP,
			MP:         DefaultMaxMP,
			MaxMP:      DefaultMaxMP,
			Attributes: DefaultAttributes(),
			CreatedAt:  now,
			LastActive: now,
		},
		DailyQuests:    []DailyQuest{},
		BossRaids:      []BossRaid{},
		Deadlines:      []Deadline{},
		IsFirstLaunch:  true,
		LastDailyReset: now,
		Settings:       DefaultSettings(),
	}
}

// Normalize repairs a state that did not come from the reducer: nil
// collections become empty, attributes below level 1 or with no curve are
// reset to a valid curve position, and the rank is re-derived.
func Normalize(s GameState) GameState {
	if s.DailyQuests == nil {
		s.DailyQuests = []DailyQuest{}
	}
	if s.BossRaids == nil {
		s.BossRaids = []BossRaid{}
	}
	if s.Deadlines == nil {
		s.Deadlines = []Deadline{}
	}
	defaults := DefaultAttributes()
	for _, key := range AttributeKeys {
		attr := s.Player.Attributes.Get(key)
		if attr.Name == "" {
			attr.Name = key
		}
		if attr.FullName == "" {
			attr.FullName = defaults.Get(key).FullName
		}
		if attr.Level < 1 {
			attr.Level = 1
		}
		if attr.MaxXP < 1 {
			attr.MaxXP = XPForLevel(attr.Level)
		}
		if attr.XP < 0 {
			attr.XP = 0
		}
		s.Player.Attributes = s.Player.Attributes.With(key, attr)
	}
	s.Player.Rank = CalculateRank(TotalLevels(s.Player.Attributes))
	return s
}

// FindDailyQuest returns the index of the quest with id, or -1.
func (s GameState) FindDailyQuest(id string) int {
	for i, q := range s.DailyQuests {
		if q.ID == id {
			return i
		}
	}
	return -1
}

// FindBossRaid returns the index of the raid with id, or -1.
func (s GameState) FindBossRaid(id string) int {
	for i, b := range s.BossRaids {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// IncompleteDailyQuests counts daily quests not yet completed.
func (s GameState) IncompleteDailyQuests() int {
	n := 0
	for _, q := range s.DailyQuests {
		if !q.IsComplete {
			n++
		}
	}
	return n
}
