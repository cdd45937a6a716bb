package model

import (
	"errors"

	"github.com/JENAI-COMPANY/jenai-sub002/common"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPrepared  = "prepared"
	OrderStatusOnTheWay  = "on_the_way"
	OrderStatusReceived  = "received"
	OrderStatusCancelled = "cancelled"
)

var (
	ErrOrderNotFound     = errors.New("ORDER_NOT_FOUND")
	ErrInvalidTransition = errors.New("INVALID_ORDER_TRANSITION")
	ErrOrderDelivered    = errors.New("ORDER_ALREADY_DELIVERED")
	ErrEmptyOrder        = errors.New("ORDER_HAS_NO_ITEMS")
)

// Order freezes its point value at creation: TotalPoints and the per-item
// unit figures are never recomputed from product rows afterwards. The
// settlement flag and the ledger are the idempotency guard for distribution,
// not the status comparison alone.
type Order struct {
	Id                int         `json:"id" gorm:"primaryKey"`
	OrderNo           string      `json:"order_no" gorm:"uniqueIndex;size:40"`
	BuyerId           int         `json:"buyer_id" gorm:"index"`
	ReferredBy        int         `json:"referred_by"`
	Status            string      `json:"status" gorm:"size:16;index;default:pending"`
	TotalPoints       float64     `json:"total_points"`
	TotalAmount       int64       `json:"total_amount"`
	PriceDifferential int64       `json:"price_differential"`
	IsDelivered       bool        `json:"is_delivered"`
	DeliveredAt       int64       `json:"delivered_at"`
	IsCancelled       bool        `json:"is_cancelled"`
	CancelledAt       int64       `json:"cancelled_at"`
	CommissionSettled bool        `json:"commission_settled"`
	SettledAt         int64       `json:"settled_at"`
	CreatedAt         int64       `json:"created_at" gorm:"autoCreateTime:false"`
	Items             []OrderItem `json:"items" gorm:"foreignKey:OrderId"`
}

type OrderItem struct {
	Id         int     `json:"id" gorm:"primaryKey"`
	OrderId    int     `json:"order_id" gorm:"index"`
	ProductId  int     `json:"product_id"`
	Quantity   int     `json:"quantity"`
	UnitPoints float64 `json:"unit_points"`
	UnitPrice  int64   `json:"unit_price"`
}

// fulfillmentStatuses is the set whose entry commits stock and whose exit by
// cancellation restores it.
var fulfillmentStatuses = map[string]bool{
	OrderStatusPrepared: true,
	OrderStatusOnTheWay: true,
	OrderStatusReceived: true,
}

func IsFulfillmentStatus(status string) bool {
	return fulfillmentStatuses[status]
}

func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusPrepared, OrderStatusOnTheWay, OrderStatusReceived, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransition encodes the order state machine: pending reaches every other
// state, the fulfillment states reach each other, cancelled is terminal.
// The delivered guard on cancellation is separate, see TransitionOrderStatus.
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	switch from {
	case OrderStatusPending:
		return to != OrderStatusPending
	case OrderStatusPrepared, OrderStatusOnTheWay, OrderStatusReceived:
		return fulfillmentStatuses[to] || to == OrderStatusCancelled
	case OrderStatusCancelled:
		return false
	}
	return false
}

type NewOrderItem struct {
	ProductId int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,min=1"`
}

// CreateOrder freezes points and prices from the current product rows. For a
// customer buying through a member's referral code, the price differential
// (customer price minus member price, per unit) is frozen too so the
// referrer's flat credit never depends on later price edits.
func CreateOrder(buyerId int, referralCode string, items []NewOrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	var created *Order
	err := DB.Transaction(func(tx *gorm.DB) error {
		var buyer User
		err := tx.Where("id = ?", buyerId).First(&buyer).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		referrerId := 0
		if buyer.Role == RoleCustomer && referralCode != "" {
			var referrer User
			err = tx.Where("referral_code = ?", referralCode).First(&referrer).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReferrerNotFound
			}
			if err != nil {
				return err
			}
			if !referrer.IsMember() {
				return ErrReferrerNotFound
			}
			referrerId = referrer.Id
		}

		order := &Order{
			OrderNo:    uuid.NewString(),
			BuyerId:    buyer.Id,
			ReferredBy: referrerId,
			Status:     OrderStatusPending,
			CreatedAt:  common.GetTimestamp(),
		}

		totalPoints := decimal.Zero
		var totalAmount, priceDifferential int64
		for _, in := range items {
			var product Product
			err = tx.Where("id = ?", in.ProductId).First(&product).Error
			if err != nil {
				return err
			}
			unitPrice := product.CustomerPrice
			if buyer.IsMember() {
				unitPrice = product.MemberPrice
			}
			order.Items = append(order.Items, OrderItem{
				ProductId:  product.Id,
				Quantity:   in.Quantity,
				UnitPoints: product.PointsPerUnit,
				UnitPrice:  unitPrice,
			})
			totalPoints = totalPoints.Add(
				decimal.NewFromFloat(product.PointsPerUnit).Mul(decimal.NewFromInt(int64(in.Quantity))))
			totalAmount += unitPrice * int64(in.Quantity)
			if referrerId != 0 {
				priceDifferential += (product.CustomerPrice - product.MemberPrice) * int64(in.Quantity)
			}
		}
		order.TotalPoints = totalPoints.InexactFloat64()
		order.TotalAmount = totalAmount
		if priceDifferential > 0 {
			order.PriceDifferential = priceDifferential
		}

		if err = tx.Create(order).Error; err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func GetOrderById(id int) (*Order, error) {
	var order Order
	err := DB.Preload("Items").Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func getOrderForUpdateTx(tx *gorm.DB, id int) (*Order, error) {
	if !usingSQLite {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var order Order
	err := tx.
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// TransitionOrderStatus advances the order state machine. Everything a
// transition implies (stock movement, settlement or reversal, the derived
// delivered and cancelled flags) commits in one transaction, so a failed
// ancestor write rolls the status change back instead of leaving a
// partially distributed order marked received.
func TransitionOrderStatus(orderId int, newStatus string) (*Order, error) {
	if !IsValidOrderStatus(newStatus) {
		return nil, ErrInvalidTransition
	}
	var out *Order
	err := DB.Transaction(func(tx *gorm.DB) error {
		order, err := getOrderForUpdateTx(tx, orderId)
		if err != nil {
			return err
		}
		if order.Status == newStatus {
			// Replaying a transition is a no-op, not an error. This is what
			// keeps a re-sent "received" update from distributing twice.
			out = order
			return nil
		}
		if !CanTransition(order.Status, newStatus) {
			return ErrInvalidTransition
		}
		if newStatus == OrderStatusCancelled && order.IsDelivered {
			return ErrOrderDelivered
		}

		oldStatus := order.Status
		now := common.GetTimestamp()

		if IsFulfillmentStatus(newStatus) && !IsFulfillmentStatus(oldStatus) {
			if err = commitOrderStockTx(tx, order); err != nil {
				return err
			}
		}

		order.Status = newStatus
		switch newStatus {
		case OrderStatusReceived:
			order.IsDelivered = true
			order.DeliveredAt = now
		case OrderStatusCancelled:
			order.IsCancelled = true
			order.CancelledAt = now
		default:
			// Moving back out of received clears the derived delivery flag,
			// otherwise the order could never be cancelled again.
			if oldStatus == OrderStatusReceived {
				order.IsDelivered = false
				order.DeliveredAt = 0
			}
		}

		if newStatus == OrderStatusReceived {
			if err = settleOrderTx(tx, order); err != nil {
				return err
			}
		}
		if newStatus == OrderStatusCancelled {
			if IsFulfillmentStatus(oldStatus) {
				if err = restoreOrderStockTx(tx, order); err != nil {
					return err
				}
			}
			if err = reverseOrderTx(tx, order); err != nil {
				return err
			}
		}

		if err = tx.Model(&Order{}).Where("id = ?", order.Id).
			Select("status", "is_delivered", "delivered_at", "is_cancelled", "cancelled_at",
				"commission_settled", "settled_at").
			Updates(order).Error; err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
