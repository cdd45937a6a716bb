package model

import (
	"testing"
)

func TestPersonalCredit_FloorsCurrency(t *testing.T) {
	rates := ActiveRateTable()

	personalPoints, commission := rates.PersonalCredit(200)
	if personalPoints != 40 {
		t.Fatalf("expected personal share 40, got %v", personalPoints)
	}
	if commission != 22 {
		t.Fatalf("expected commission floor(200*0.20*0.55)=22, got %d", commission)
	}

	// 101 * 0.20 * 0.55 = 11.11, floored.
	_, commission = rates.PersonalCredit(101)
	if commission != 11 {
		t.Fatalf("expected commission 11, got %d", commission)
	}
}

func TestAncestorCredit_GoldLeadershipDepth(t *testing.T) {
	rates := ActiveRateTable()

	// Gold earns leadership through generation-level 2 (third position).
	gen, lead, commission := rates.AncestorCredit(200, 2, RankGold)
	if gen != 12 {
		t.Fatalf("expected generation credit 200*0.06=12, got %v", gen)
	}
	if lead != 6 {
		t.Fatalf("expected leadership credit 200*0.03=6, got %v", lead)
	}
	if commission != 9 {
		t.Fatalf("expected commission floor(18*0.55)=9, got %d", commission)
	}

	// At generation-level 3 gold's vector is exhausted.
	gen, lead, commission = rates.AncestorCredit(200, 3, RankGold)
	if gen != 6 {
		t.Fatalf("expected generation credit 200*0.03=6, got %v", gen)
	}
	if lead != 0 {
		t.Fatalf("expected no leadership credit, got %v", lead)
	}
	if commission != 3 {
		t.Fatalf("expected commission floor(6*0.55)=3, got %d", commission)
	}
}

func TestAncestorCredit_AgentHasNoLeadership(t *testing.T) {
	rates := ActiveRateTable()
	for level := 0; level < maxGenerations; level++ {
		_, lead, _ := rates.AncestorCredit(500, level, RankAgent)
		if lead != 0 {
			t.Fatalf("agent got leadership credit %v at level %d", lead, level)
		}
	}
}

func TestAncestorCredit_GenerationRatesSum(t *testing.T) {
	rates := ActiveRateTable()
	sum := 0.0
	for level := 0; level < maxGenerations; level++ {
		gen, _, _ := rates.AncestorCredit(200, level, RankAgent)
		sum += gen
	}
	// 200 * (0.11+0.08+0.06+0.03+0.02) = 60
	if sum != 60 {
		t.Fatalf("expected generation credits to sum to 60, got %v", sum)
	}
}

func TestAncestorCredit_LevelOutOfRange(t *testing.T) {
	rates := ActiveRateTable()
	gen, lead, commission := rates.AncestorCredit(200, maxGenerations, RankDiamond)
	if gen != 0 || lead != 0 || commission != 0 {
		t.Fatalf("expected zero credit beyond the generation cap, got %v/%v/%d", gen, lead, commission)
	}
}

func TestLeadershipRate_PrefixPerRank(t *testing.T) {
	rates := ActiveRateTable()
	depths := map[Rank]int{
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
	for rank, depth := range depths {
		for level := 0; level < maxGenerations; level++ {
			rate := rates.LeadershipRate(rank, level)
			if level < depth && rate != rates.LeadershipBase[level] {
				t.Fatalf("rank %s level %d: expected rate %v, got %v", rank, level, rates.LeadershipBase[level], rate)
			}
			if level >= depth && rate != 0 {
				t.Fatalf("rank %s level %d: expected rate 0, got %v", rank, level, rate)
			}
		}
	}
}

func TestRateTableValidate(t *testing.T) {
	if err := ActiveRateTable().Validate(); err != nil {
		t.Fatalf("active rate table must validate: %v", err)
	}
	bad := &RateTable{Version: 2, Generation: []float64{0.1}, LeadershipBase: []float64{0.05}, PersonalShare: 0.2, PointValue: 0.55}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected short rate vectors to fail validation")
	}
}
