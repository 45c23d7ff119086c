package engine

import "fmt"

// Rank is the six-tier aggregate classification, E lowest and S highest.
type Rank string

const (
	RankE Rank = "E"
	RankD Rank = "D"
	RankC Rank = "C"
	RankB Rank = "B"
	RankA Rank = "A"
	RankS Rank = "S"
)

// RankOrder lists ranks in ascending order.
var RankOrder = []Rank{RankE, RankD, RankC, RankB, RankA, RankS}

// rankThresholds are summed attribute levels, i.e. an average of
// 10/20/30/40/50 per attribute for D through S.
var rankThresholds = map[Rank]int{
	RankE: 0,
	RankD: 40,
	RankC: 80,
	RankB: 120,
	RankA: 160,
	RankS: 200,
}

// Threshold returns the minimum total level for r.
func (r Rank) Threshold() int {
	return rankThresholds[r]
}

func (r Rank) index() int {
	for i, o := range RankOrder {
		if o == r {
			return i
		}
	}
	return 0
}

// Name returns the display name, e.g. "B-RANK".
func (r Rank) Name() string {
	return string(r) + "-RANK"
}

// IsValid reports whether r is one of the six ranks.
func (r Rank) IsValid() bool {
	_, ok := rankThresholds[r]
	return ok
}

// CalculateRank maps a total attribute level to a rank by scanning the
// thresholds from highest to lowest.
func CalculateRank(totalLevels int) Rank {
	for i := len(RankOrder) - 1; i >= 0; i-- {
		if totalLevels >= RankOrder[i].Threshold() {
			return RankOrder[i]
		}
	}
	return RankE
}

// TotalLevels sums the four attribute levels.
func TotalLevels(a Attributes) int {
	return a.STR.Level + a.INT.Level + a.SOC.Level + a.HLTH.Level
}

// RankProgress interpolates linearly between the current and next rank
// thresholds. At S rank it is saturated at 1.
func RankProgress(totalLevels int) float64 {
	current := CalculateRank(totalLevels)
	if current == RankS {
		return 1
	}
	if totalLevels < 0 {
		return 0
	}
	next := RankOrder[current.index()+1]
	lo, hi := current.Threshold(), next.Threshold()
	return float64(totalLevels-lo) / float64(hi-lo)
}

// LevelsToNextRank returns how many levels remain until the next rank,
// or 0 at S rank.
func LevelsToNextRank(totalLevels int) int {
	current := CalculateRank(totalLevels)
	if current == RankS {
		return 0
	}
	next := RankOrder[current.index()+1]
	return next.Threshold() - totalLevels
}

// FormatRankDisplay renders the badge text. S rank includes the level total.
func FormatRankDisplay(r Rank, totalLevels int) string {
	if r == RankS {
		return fmt.Sprintf("S-RANK (LV.%d)", totalLevels)
	}
	return r.Name()
}

// Status is the derived, read-only summary consumed by displays.
type Status struct {
	TotalLevels      int     `json:"totalLevels"`
	Rank             Rank    `json:"rank"`
	RankProgress     float64 `json:"rankProgress"`
	LevelsToNextRank int     `json:"levelsToNextRank"`
	RankDisplay      string  `json:"rankDisplay"`
}

// StatusOf derives Status from the player's attributes.
func StatusOf(p Player) Status {
	total := TotalLevels(p.Attributes)
	rank := CalculateRank(total)
	return Status{
		TotalLevels:      total,
		Rank:             rank,
		RankProgress:     RankProgress(total),
		LevelsToNextRank: LevelsToNextRank(total),
		RankDisplay:      FormatRankDisplay(rank, total),
	}
}
