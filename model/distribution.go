package model

import (
	"errors"
	"fmt"

	"github.com/JENAI-COMPANY/jenai-sub002/common"

	"gorm.io/gorm"
)

const firstOrderBonusWindowSeconds = 30 * 24 * 60 * 60

func firstOrderBonusPoints() float64 {
	return common.GetEnvFloat("FIRST_ORDER_BONUS_POINTS", 100)
}

// settleOrderTx runs the full commission distribution for an order inside
// the caller's transaction: personal credit, first-order bonus, price
// differential, then the ancestor walk. Each beneficiary gets a ledger row
// alongside its balance update, and the order is marked settled, all or
// nothing.
//
// The walk credits at most maxGenerations ancestors and terminates at the
// first missing or non-member ancestor; it never skips over one. Each
// ancestor's leadership rate comes from its rank as the walk reaches it, and
// its rank is re-evaluated right after its credits, so a mid-walk rank
// change affects that ancestor's future distributions but never the rates
// already applied in this one.
func settleOrderTx(tx *gorm.DB, order *Order) error {
	if order.CommissionSettled {
		return nil
	}
	settled, err := orderHasSettlementTx(tx, order.Id)
	if err != nil {
		return err
	}
	if settled {
		return nil
	}

	buyer, err := getUserForUpdateTx(tx, order.BuyerId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// Resolve who the distribution flows from. A member buys through their
	// own chain; a customer with a member referrer routes everything through
	// the referrer, who also collects the frozen price differential. Anyone
	// else gets no distribution at all.
	var recipient *User
	var priceDifferential int64
	switch {
	case buyer.IsMember():
		recipient = buyer
	case buyer.Role == RoleCustomer && order.ReferredBy != 0:
		referrer, err := getUserForUpdateTx(tx, order.ReferredBy)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if referrer != nil && referrer.IsMember() {
			recipient = referrer
			priceDifferential = order.PriceDifferential
		}
	}
	if recipient == nil {
		return nil
	}

	rates := ActiveRateTable()
	now := common.GetTimestamp()
	entries := make([]*CommissionEntry, 0, maxGenerations+3)

	_, personalCommission := rates.PersonalCredit(order.TotalPoints)
	err = tx.Model(&User{}).Where("id = ?", recipient.Id).Updates(map[string]interface{}{
		"points":               gorm.Expr("points + ?", order.TotalPoints),
		"monthly_points":       gorm.Expr("monthly_points + ?", order.TotalPoints),
		"total_commission":     gorm.Expr("total_commission + ?", personalCommission),
		"available_commission": gorm.Expr("available_commission + ?", personalCommission),
	}).Error
	if err != nil {
		return err
	}
	entries = append(entries, &CommissionEntry{
		OrderId:          order.Id,
		BeneficiaryId:    recipient.Id,
		Kind:             CreditKindPersonal,
		Points:           order.TotalPoints,
		Rate:             rates.PersonalShare,
		Commission:       personalCommission,
		RateTableVersion: rates.Version,
		CreatedAt:        now,
	})

	if recipient.Id == buyer.Id {
		bonusEntry, err := claimFirstOrderBonusTx(tx, buyer, order, rates, now)
		if err != nil {
			return err
		}
		if bonusEntry != nil {
			entries = append(entries, bonusEntry)
		}
	}

	if priceDifferential > 0 {
		err = tx.Model(&User{}).Where("id = ?", recipient.Id).Updates(map[string]interface{}{
			"total_commission":     gorm.Expr("total_commission + ?", priceDifferential),
			"available_commission": gorm.Expr("available_commission + ?", priceDifferential),
		}).Error
		if err != nil {
			return err
		}
		entries = append(entries, &CommissionEntry{
			OrderId:          order.Id,
			BeneficiaryId:    recipient.Id,
			Kind:             CreditKindPriceDifferential,
			Commission:       priceDifferential,
			RateTableVersion: rates.Version,
			CreatedAt:        now,
		})
	}

	if _, err = reevaluateUserRankTx(tx, recipient.Id); err != nil {
		return err
	}

	ancestorId := recipient.ReferredBy
	for level := 0; level < maxGenerations && ancestorId != 0; level++ {
		ancestor, err := getUserForUpdateTx(tx, ancestorId)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			break
		}
		if err != nil {
			return err
		}
		if !ancestor.IsMember() {
			// Customers, suppliers and admins neither receive commission nor
			// pass it further up the chain.
			break
		}

		genPoints, leadPoints, commission := rates.AncestorCredit(order.TotalPoints, level, Rank(ancestor.Rank))
		generation := level + 1
		column := generationColumn(generation)
		if column == "" {
			return fmt.Errorf("no balance column for generation %d", generation)
		}
		err = tx.Model(&User{}).Where("id = ?", ancestor.Id).Updates(map[string]interface{}{
			column:                 gorm.Expr(column+" + ?", genPoints),
			"leadership_points":    gorm.Expr("leadership_points + ?", leadPoints),
			"total_commission":     gorm.Expr("total_commission + ?", commission),
			"available_commission": gorm.Expr("available_commission + ?", commission),
		}).Error
		if err != nil {
			return err
		}
		entries = append(entries, &CommissionEntry{
			OrderId:          order.Id,
			BeneficiaryId:    ancestor.Id,
			Kind:             CreditKindGeneration,
			Generation:       generation,
			Points:           genPoints,
			LeadershipPoints: leadPoints,
			Rate:             rates.Generation[level],
			LeadershipRate:   rates.LeadershipRate(Rank(ancestor.Rank), level),
			Commission:       commission,
			RateTableVersion: rates.Version,
			CreatedAt:        now,
		})

		if _, err = reevaluateUserRankTx(tx, ancestor.Id); err != nil {
			return err
		}
		ancestorId = ancestor.ReferredBy
	}

	if err = tx.Create(&entries).Error; err != nil {
		return err
	}
	order.CommissionSettled = true
	order.SettledAt = now
	return nil
}

// claimFirstOrderBonusTx grants the one-time signup bonus when the buyer's
// first settled order lands within 30 days of registration. The claimed flag
// flips in the same transaction, and the reversal path flips it back if the
// order is later cancelled.
func claimFirstOrderBonusTx(tx *gorm.DB, buyer *User, order *Order, rates *RateTable, now int64) (*CommissionEntry, error) {
	if buyer.FirstOrderBonusClaimed {
		return nil, nil
	}
	if order.CreatedAt > buyer.CreatedAt+firstOrderBonusWindowSeconds {
		return nil, nil
	}
	bonus := firstOrderBonusPoints()
	if bonus <= 0 {
		return nil, nil
	}
	err := tx.Model(&User{}).Where("id = ?", buyer.Id).Updates(map[string]interface{}{
		"points":                    gorm.Expr("points + ?", bonus),
		"monthly_points":            gorm.Expr("monthly_points + ?", bonus),
		"first_order_bonus_claimed": true,
	}).Error
	if err != nil {
		return nil, err
	}
	return &CommissionEntry{
		OrderId:          order.Id,
		BeneficiaryId:    buyer.Id,
		Kind:             CreditKindSignupBonus,
		Points:           bonus,
		RateTableVersion: rates.Version,
		CreatedAt:        now,
	}, nil
}
