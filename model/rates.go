package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const maxGenerations = 5

// RateTable is the versioned commission configuration. Every ledger entry
// records the version it was computed under, so changing rates never requires
// touching historical rows: reversal always reads stored amounts.
type RateTable struct {
	Version        int
	Generation     []float64
	LeadershipBase []float64
	PersonalShare  float64
	PointValue     float64
}

// leadershipDepth is how many generations above the buyer a rank earns
// leadership commission for. Rank k takes the first k entries of
// LeadershipBase.
var leadershipDepth = map[Rank]int{
	RankAgent:              0,
	RankBronze:             1,
	RankSilver:             2,
	RankGold:               3,
	RankRuby:               4,
	RankDiamond:            5,
	RankDoubleDiamond:      5,
	RankRegionalAmbassador: 5,
	RankGlobalAmbassador:   5,
}

var activeRateTable = &RateTable{
	Version:        1,
	Generation:     []float64{0.11, 0.08, 0.06, 0.03, 0.02},
	LeadershipBase: []float64{0.05, 0.04, 0.03, 0.02, 0.01},
	PersonalShare:  0.20,
	PointValue:     0.55,
}

func ActiveRateTable() *RateTable {
	return activeRateTable
}

func (rt *RateTable) Validate() error {
	if len(rt.Generation) != maxGenerations || len(rt.LeadershipBase) != maxGenerations {
		return fmt.Errorf("rate table v%d: generation and leadership vectors must have %d entries", rt.Version, maxGenerations)
	}
	if rt.PersonalShare <= 0 || rt.PointValue <= 0 {
		return fmt.Errorf("rate table v%d: personal share and point value must be positive", rt.Version)
	}
	return nil
}

// LeadershipRate returns the leadership rate a beneficiary of the given rank
// earns at the given generation level (0-based), or 0 when the rank's vector
// is too short.
func (rt *RateTable) LeadershipRate(rank Rank, generationLevel int) float64 {
	depth := leadershipDepth[rank]
	if generationLevel >= depth || generationLevel >= len(rt.LeadershipBase) {
		return 0
	}
	return rt.LeadershipBase[generationLevel]
}

// toCurrency converts points to currency at the fixed point value,
// floor-rounded. IntPart truncates toward zero, which is floor for the
// non-negative amounts this engine produces.
func (rt *RateTable) toCurrency(points decimal.Decimal) int64 {
	return points.Mul(decimal.NewFromFloat(rt.PointValue)).IntPart()
}

// PersonalCredit computes the buyer-side credit for an order worth
// pointQuantity: the personal commission share converted to currency.
// The buyer's point balances always grow by the full quantity.
func (rt *RateTable) PersonalCredit(pointQuantity float64) (personalPoints float64, commission int64) {
	share := decimal.NewFromFloat(pointQuantity).Mul(decimal.NewFromFloat(rt.PersonalShare))
	return share.InexactFloat64(), rt.toCurrency(share)
}

// AncestorCredit computes the generation and leadership credit for an
// ancestor at the given 0-based generation level, using the ancestor's rank
// as it stands when the walk reaches it. Currency is floored over the
// combined points, matching how balances are written.
func (rt *RateTable) AncestorCredit(pointQuantity float64, generationLevel int, rank Rank) (genPoints, leadPoints float64, commission int64) {
	if generationLevel < 0 || generationLevel >= len(rt.Generation) {
		return 0, 0, 0
	}
	quantity := decimal.NewFromFloat(pointQuantity)
	gen := quantity.Mul(decimal.NewFromFloat(rt.Generation[generationLevel]))
	lead := decimal.Zero
	if rate := rt.LeadershipRate(rank, generationLevel); rate > 0 {
		lead = quantity.Mul(decimal.NewFromFloat(rate))
	}
	return gen.InexactFloat64(), lead.InexactFloat64(), rt.toCurrency(gen.Add(lead))
}
