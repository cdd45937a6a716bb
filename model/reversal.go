package model

import (
	"fmt"

	"gorm.io/gorm"
)

// reverseOrderTx undoes a settled distribution by subtracting exactly the
// amounts stored on the order's ledger rows. Nothing is recomputed from
// product prices or rate tables, so the reversal is exact even if either
// changed since settlement, and it covers every credit kind: points,
// generation and leadership balances, and commission currency.
func reverseOrderTx(tx *gorm.DB, order *Order) error {
	entries, err := getOrderLedgerTx(tx, order.Id)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	for _, entry := range entries {
		updates := map[string]interface{}{}
		switch entry.Kind {
		case CreditKindPersonal:
			updates["points"] = gorm.Expr("points - ?", entry.Points)
			updates["monthly_points"] = gorm.Expr("monthly_points - ?", entry.Points)
			updates["total_commission"] = gorm.Expr("total_commission - ?", entry.Commission)
			updates["available_commission"] = gorm.Expr("available_commission - ?", entry.Commission)
		case CreditKindSignupBonus:
			updates["points"] = gorm.Expr("points - ?", entry.Points)
			updates["monthly_points"] = gorm.Expr("monthly_points - ?", entry.Points)
			updates["first_order_bonus_claimed"] = false
		case CreditKindPriceDifferential:
			updates["total_commission"] = gorm.Expr("total_commission - ?", entry.Commission)
			updates["available_commission"] = gorm.Expr("available_commission - ?", entry.Commission)
		case CreditKindGeneration:
			column := generationColumn(entry.Generation)
			if column == "" {
				return fmt.Errorf("ledger entry %d has invalid generation %d", entry.Id, entry.Generation)
			}
			updates[column] = gorm.Expr(column+" - ?", entry.Points)
			updates["leadership_points"] = gorm.Expr("leadership_points - ?", entry.LeadershipPoints)
			updates["total_commission"] = gorm.Expr("total_commission - ?", entry.Commission)
			updates["available_commission"] = gorm.Expr("available_commission - ?", entry.Commission)
		default:
			return fmt.Errorf("ledger entry %d has unknown kind %q", entry.Id, entry.Kind)
		}

		if _, err = getUserForUpdateTx(tx, entry.BeneficiaryId); err != nil {
			return err
		}
		if err = tx.Model(&User{}).Where("id = ?", entry.BeneficiaryId).Updates(updates).Error; err != nil {
			return err
		}
		if err = tx.Model(&CommissionEntry{}).Where("id = ?", entry.Id).Update("reversed", true).Error; err != nil {
			return err
		}
		if _, err = reevaluateUserRankTx(tx, entry.BeneficiaryId); err != nil {
			return err
		}
	}

	order.CommissionSettled = false
	order.SettledAt = 0
	return nil
}

// BalanceDrift compares a user's stored balances against what the ledger
// implies for one field.
type BalanceDrift struct {
	Field    string  `json:"field"`
	Stored   float64 `json:"stored"`
	Expected float64 `json:"expected"`
}

// RecomputeUserBalances derives a user's balances from the live ledger,
// reports every drifting field and, when repair is set, overwrites the
// stored balances with the derived values. This replaces the ad hoc repair
// scripts that used to chase drift in production; with settlement and
// reversal transactional the expected result is an empty report.
func RecomputeUserBalances(userId int, repair bool) ([]BalanceDrift, error) {
	var drifts []BalanceDrift
	err := DB.Transaction(func(tx *gorm.DB) error {
		user, err := getUserForUpdateTx(tx, userId)
		if err != nil {
			return ErrUserNotFound
		}
		expected, err := sumLedgerForUser(tx, userId)
		if err != nil {
			return err
		}

		compare := func(field string, stored, derived float64) {
			if stored != derived {
				drifts = append(drifts, BalanceDrift{Field: field, Stored: stored, Expected: derived})
			}
		}
		compare("points", user.Points, expected.Points)
		compare("monthly_points", user.MonthlyPoints, expected.MonthlyPoints)
		for generation := 1; generation <= maxGenerations; generation++ {
			compare(generationColumn(generation), user.generationPoints(generation), expected.GenerationPoints[generation-1])
		}
		compare("leadership_points", user.LeadershipPoints, expected.LeadershipPoints)
		compare("total_commission", float64(user.TotalCommission), float64(expected.TotalCommission))
		compare("available_commission", float64(user.AvailableCommission), float64(expected.AvailableCommission))

		if len(drifts) == 0 || !repair {
			return nil
		}
		updates := map[string]interface{}{
			"points":               expected.Points,
			"monthly_points":       expected.MonthlyPoints,
			"leadership_points":    expected.LeadershipPoints,
			"total_commission":     expected.TotalCommission,
			"available_commission": expected.AvailableCommission,
		}
		for generation := 1; generation <= maxGenerations; generation++ {
			updates[generationColumn(generation)] = expected.GenerationPoints[generation-1]
		}
		if err = tx.Model(&User{}).Where("id = ?", userId).Updates(updates).Error; err != nil {
			return err
		}
		_, err = reevaluateUserRankTx(tx, userId)
		return err
	})
	if err != nil {
		return nil, err
	}
	return drifts, nil
}
