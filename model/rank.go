package model

import (
	"fmt"
	"os"

	"github.com/JENAI-COMPANY/jenai-sub002/common"

	"gorm.io/gorm"
)

type Rank string

const (
	RankAgent              Rank = "agent"
	RankBronze             Rank = "bronze"
	RankSilver             Rank = "silver"
	RankGold               Rank = "gold"
	RankRuby               Rank = "ruby"
	RankDiamond            Rank = "diamond"
	RankDoubleDiamond      Rank = "double_diamond"
	RankRegionalAmbassador Rank = "regional_ambassador"
	RankGlobalAmbassador   Rank = "global_ambassador"
)

// rankOrder lists every rank from lowest to highest. RankForPoints scans it
// from the top down, so the order must stay monotonic with the thresholds.
var rankOrder = []Rank{
	RankAgent,
	RankBronze,
	RankSilver,
	RankGold,
	RankRuby,
	RankDiamond,
	RankDoubleDiamond,
	RankRegionalAmbassador,
	RankGlobalAmbassador,
}

// defaultRankThresholds are the point cutoffs used when RANK_THRESHOLDS is
// not configured. Operators override them with a JSON object mapping rank
// name to minimum points.
var defaultRankThresholds = map[Rank]float64{
	RankAgent:              0,
	RankBronze:             500,
	RankSilver:             2000,
	RankGold:               5000,
	RankRuby:               12000,
	RankDiamond:            30000,
	RankDoubleDiamond:      75000,
	RankRegionalAmbassador: 180000,
	RankGlobalAmbassador:   400000,
}

var rankThresholds = defaultRankThresholds

// LoadRankThresholds reads RANK_THRESHOLDS from the environment and replaces
// the default cutoffs. Thresholds must cover every rank and must not decrease
// along rankOrder; a bad table is a startup failure, not a silent fallback.
func LoadRankThresholds() error {
	raw := os.Getenv("RANK_THRESHOLDS")
	if raw == "" {
		return nil
	}
	parsed := make(map[Rank]float64)
	if err := common.Unmarshal([]byte(raw), &parsed); err != nil {
		return fmt.Errorf("invalid RANK_THRESHOLDS: %w", err)
	}
	if err := validateRankThresholds(parsed); err != nil {
		return err
	}
	rankThresholds = parsed
	common.SysLog("rank thresholds loaded from RANK_THRESHOLDS")
	return nil
}

func validateRankThresholds(thresholds map[Rank]float64) error {
	prev := -1.0
	for _, rank := range rankOrder {
		cutoff, ok := thresholds[rank]
		if !ok {
			return fmt.Errorf("RANK_THRESHOLDS missing rank %q", rank)
		}
		if cutoff < prev {
			return fmt.Errorf("RANK_THRESHOLDS not monotonic at rank %q", rank)
		}
		prev = cutoff
	}
	return nil
}

// RankForPoints maps accumulated points to a rank. Pure; never mutates the
// user and never lowers points.
func RankForPoints(points float64) Rank {
	for i := len(rankOrder) - 1; i >= 0; i-- {
		if points >= rankThresholds[rankOrder[i]] {
			return rankOrder[i]
		}
	}
	return RankAgent
}

func IsValidRank(rank Rank) bool {
	_, ok := defaultRankThresholds[rank]
	return ok
}

// reevaluateUserRankTx recomputes the rank from the user's current point
// totals and persists it when it changed. Runs inside the caller's
// transaction so a rank change commits together with the balance mutation
// that caused it.
func reevaluateUserRankTx(tx *gorm.DB, userId int) (Rank, error) {
	var user User
	err := tx.
		Select("id", "user_rank", "points", "generation1_points", "generation2_points", "generation3_points",
			"generation4_points", "generation5_points", "leadership_points").
		Where("id = ?", userId).
		First(&user).Error
	if err != nil {
		return "", err
	}
	newRank := RankForPoints(user.AccumulatedPoints())
	if newRank == Rank(user.Rank) {
		return newRank, nil
	}
	err = tx.Model(&User{}).Where("id = ?", userId).Update("user_rank", string(newRank)).Error
	if err != nil {
		return "", err
	}
	return newRank, nil
}
