package model

import (
	"gorm.io/gorm"
)

const (
	CreditKindPersonal          = "personal"
	CreditKindGeneration        = "generation"
	CreditKindPriceDifferential = "price_differential"
	CreditKindSignupBonus       = "signup_bonus"
)

// CommissionEntry is one append-only ledger row: exactly what one order
// credited to one beneficiary at one generation. Balances are writable
// aggregates of these rows, and reversal subtracts the stored amounts rather
// than recomputing anything from product state. Generation entries carry
// both the generation and the leadership share because the currency floor is
// taken over their sum, splitting them would not round-trip.
type CommissionEntry struct {
	Id               int     `json:"id" gorm:"primaryKey"`
	OrderId          int     `json:"order_id" gorm:"index;uniqueIndex:idx_order_beneficiary_credit,priority:1"`
	BeneficiaryId    int     `json:"beneficiary_id" gorm:"index;uniqueIndex:idx_order_beneficiary_credit,priority:2"`
	Kind             string  `json:"kind" gorm:"size:24;uniqueIndex:idx_order_beneficiary_credit,priority:3"`
	Generation       int     `json:"generation" gorm:"uniqueIndex:idx_order_beneficiary_credit,priority:4"`
	Points           float64 `json:"points"`
	LeadershipPoints float64 `json:"leadership_points"`
	Rate             float64 `json:"rate"`
	LeadershipRate   float64 `json:"leadership_rate"`
	Commission       int64   `json:"commission"`
	RateTableVersion int     `json:"rate_table_version"`
	Reversed         bool    `json:"reversed" gorm:"index"`
	CreatedAt        int64   `json:"created_at" gorm:"autoCreateTime:false"`
}

// orderHasSettlementTx reports whether any live ledger row exists for the
// order. Checked inside the settlement transaction, it is the idempotency
// guard the status comparison alone never was.
func orderHasSettlementTx(tx *gorm.DB, orderId int) (bool, error) {
	var count int64
	err := tx.Model(&CommissionEntry{}).
		Where("order_id = ? AND reversed = ?", orderId, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func getOrderLedgerTx(tx *gorm.DB, orderId int) ([]CommissionEntry, error) {
	var entries []CommissionEntry
	err := tx.
		Where("order_id = ? AND reversed = ?", orderId, false).
		Order("id").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func GetUserCommissionEntries(userId int, page int, pageSize int) ([]CommissionEntry, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	var total int64
	err := DB.Model(&CommissionEntry{}).
		Where("beneficiary_id = ?", userId).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	var entries []CommissionEntry
	err = DB.
		Where("beneficiary_id = ?", userId).
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// LedgerBalances are the balances implied by a user's live ledger rows, used
// by the drift repair path.
type LedgerBalances struct {
	Points              float64                 `json:"points"`
	MonthlyPoints       float64                 `json:"monthly_points"`
	GenerationPoints    [maxGenerations]float64 `json:"generation_points"`
	LeadershipPoints    float64                 `json:"leadership_points"`
	TotalCommission     int64                   `json:"total_commission"`
	AvailableCommission int64                   `json:"available_commission"`
}

// sumLedgerForUser folds a user's non-reversed entries into the balances the
// rate tables imply.
func sumLedgerForUser(tx *gorm.DB, userId int) (*LedgerBalances, error) {
	var entries []CommissionEntry
	err := tx.
		Where("beneficiary_id = ? AND reversed = ?", userId, false).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	balances := &LedgerBalances{}
	for _, entry := range entries {
		switch entry.Kind {
		case CreditKindPersonal, CreditKindSignupBonus:
			balances.Points += entry.Points
			balances.MonthlyPoints += entry.Points
		case CreditKindGeneration:
			if entry.Generation >= 1 && entry.Generation <= maxGenerations {
				balances.GenerationPoints[entry.Generation-1] += entry.Points
			}
			balances.LeadershipPoints += entry.LeadershipPoints
		}
		balances.TotalCommission += entry.Commission
		balances.AvailableCommission += entry.Commission
	}
	return balances, nil
}
