package dto

import (
	"github.com/JENAI-COMPANY/jenai-sub002/model"
)

type CreateOrderRequest struct {
	ReferralCode string               `json:"referral_code"`
	Items        []model.NewOrderItem `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderResponse struct {
	Id                int               `json:"id"`
	OrderNo           string            `json:"order_no"`
	Status            string            `json:"status"`
	TotalPoints       float64           `json:"total_points"`
	TotalAmount       int64             `json:"total_amount"`
	IsDelivered       bool              `json:"is_delivered"`
	DeliveredAt       int64             `json:"delivered_at,omitempty"`
	IsCancelled       bool              `json:"is_cancelled"`
	CancelledAt       int64             `json:"cancelled_at,omitempty"`
	CommissionSettled bool              `json:"commission_settled"`
	Items             []model.OrderItem `json:"items"`
}

func NewOrderResponse(order *model.Order) *OrderResponse {
	return &OrderResponse{
		Id:                order.Id,
		OrderNo:           order.OrderNo,
		Status:            order.Status,
		TotalPoints:       order.TotalPoints,
		TotalAmount:       order.TotalAmount,
		IsDelivered:       order.IsDelivered,
		DeliveredAt:       order.DeliveredAt,
		IsCancelled:       order.IsCancelled,
		CancelledAt:       order.CancelledAt,
		CommissionSettled: order.CommissionSettled,
		Items:             order.Items,
	}
}
