package dto

import (
	"github.com/JENAI-COMPANY/jenai-sub002/model"
)

type AssignReferrerRequest struct {
	ReferralCode string `json:"referral_code" binding:"required"`
}

type EarningsResponse struct {
	Rank                string    `json:"rank"`
	Points              float64   `json:"points"`
	MonthlyPoints       float64   `json:"monthly_points"`
	GenerationPoints    []float64 `json:"generation_points"`
	LeadershipPoints    float64   `json:"leadership_points"`
	TotalCommission     int64     `json:"total_commission"`
	AvailableCommission int64     `json:"available_commission"`
	AccumulatedPoints   float64   `json:"accumulated_points"`
}

func NewEarningsResponse(user *model.User) *EarningsResponse {
	return &EarningsResponse{
		Rank:          user.Rank,
		Points:        user.Points,
		MonthlyPoints: user.MonthlyPoints,
		GenerationPoints: []float64{
			user.Generation1Points, user.Generation2Points, user.Generation3Points,
			user.Generation4Points, user.Generation5Points,
		},
		LeadershipPoints:    user.LeadershipPoints,
		TotalCommission:     user.TotalCommission,
		AvailableCommission: user.AvailableCommission,
		AccumulatedPoints:   user.AccumulatedPoints(),
	}
}

type LedgerEntryResponse struct {
	OrderId          int     `json:"order_id"`
	Kind             string  `json:"kind"`
	Generation       int     `json:"generation,omitempty"`
	Points           float64 `json:"points"`
	LeadershipPoints float64 `json:"leadership_points,omitempty"`
	Commission       int64   `json:"commission"`
	Reversed         bool    `json:"reversed"`
	CreatedAt        int64   `json:"created_at"`
}

func NewLedgerEntryResponse(entry model.CommissionEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		OrderId:          entry.OrderId,
		Kind:             entry.Kind,
		Generation:       entry.Generation,
		Points:           entry.Points,
		LeadershipPoints: entry.LeadershipPoints,
		Commission:       entry.Commission,
		Reversed:         entry.Reversed,
		CreatedAt:        entry.CreatedAt,
	}
}
