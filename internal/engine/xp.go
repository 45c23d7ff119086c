package engine

import (
	"fmt"
	"math"
)

// XPGrowthRate is the compounding growth of maxXp per level.
const XPGrowthRate = 1.1

// XPResult is the outcome of a single AwardXP call.
type XPResult struct {
	Level        int
	XP           int
	MaxXP        int
	LevelsGained int
}

// LeveledUp reports whether at least one level was gained.
func (r XPResult) LeveledUp() bool {
	return r.LevelsGained > 0
}

// AwardXP adds amount to an attribute's progress and rolls any overflow
// into level-ups.
//
// This is a pure function: same inputs always produce same outputs.
//
// Algorithm:
//  1. xp += amount
//  2. while xp >= maxXp: xp -= maxXp, level++, maxXp = floor(maxXp * 1.1)
//
// A single large award may cascade several levels. The sum saturates at
// math.MaxInt. Negative amounts are treated as zero and maxXp is raised to at least 1, so the loop always
// terminates and the result satisfies XP < MaxXP.
func AwardXP(level, xp, maxXP, amount int) XPResult {
	if amount < 0 {
		amount = 0
	}
	if maxXP < 1 {
		maxXP = 1
	}
	if xp < 0 {
		xp = 0
	}

	if amount > math.MaxInt-xp {
		amount = math.MaxInt - xp
	}

	result := XPResult{Level: level, XP: xp + amount, MaxXP: maxXP}
	for result.XP >= result.MaxXP {
		result.XP -= result.MaxXP
		result.Level++
		result.LevelsGained++
		result.MaxXP = nextMaxXP(result.MaxXP)
	}
	return result
}

func nextMaxXP(maxXP int) int {
	f := math.Floor(float64(maxXP) * XPGrowthRate)
	if f >= math.MaxInt {
		return math.MaxInt
	}
	next := int(f)
	if next < 1 {
		return 1
	}
	return next
}

// applyAward awards amount to attr and returns the updated attribute.
func applyAward(attr Attribute, amount int) Attribute {
	r := AwardXP(attr.Level, attr.XP, attr.MaxXP, amount)
	attr.Level = r.Level
	attr.XP = r.XP
	attr.MaxXP = r.MaxXP
	return attr
}

// XPForLevel returns the XP needed to clear the given level on the
// closed-form curve floor(100 * 1.1^(level-1)).
func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	f := math.Floor(BaseXPPerLevel * math.Pow(XPGrowthRate, float64(level-1)))
	if f >= math.MaxInt {
		return math.MaxInt
	}
	return int(f)
}

// TotalXPToLevel sums XPForLevel over every level below target.
func TotalXPToLevel(level int) int {
	total := 0
	for i := 1; i < level; i++ {
		total += XPForLevel(i)
	}
	return total
}

// Difficulty scales the base quest reward.
type Difficulty string

const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyHard    Difficulty = "hard"
	DifficultyExtreme Difficulty = "extreme"
)

// BaseQuestXP is the reward of an easy quest.
const BaseQuestXP = 25

func (d Difficulty) multiplier() (int, error) {
	switch d {
	case DifficultyEasy:
		return 1, nil
	case DifficultyMedium, "":
		return 2, nil
	case DifficultyHard:
		return 3, nil
	case DifficultyExtreme:
		return 5, nil
	default:
		return 0, fmt.Errorf("invalid difficulty: %q", string(d))
	}
}

// QuestXPReward returns the XP reward for a difficulty. An empty
// difficulty is treated as medium.
func QuestXPReward(d Difficulty) (int, error) {
	mult, err := d.multiplier()
	if err != nil {
		return 0, err
	}
	return BaseQuestXP * mult, nil
}

// FormatXP renders "xp / maxXp".
func FormatXP(xp, maxXP int) string {
	return fmt.Sprintf("%d / %d", xp, maxXP)
}

// XPProgress returns the percentage (0-100) of the current level cleared.
func XPProgress(xp, maxXP int) float64 {
	if maxXP <= 0 {
		return 0
	}
	return float64(xp) / float64(maxXP) * 100
}
