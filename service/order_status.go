package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/JENAI-COMPANY/jenai-sub002/logger"
	"github.com/JENAI-COMPANY/jenai-sub002/model"
	"github.com/JENAI-COMPANY/jenai-sub002/types"

	"github.com/pkg/errors"
)

// UpdateOrderStatus drives the order state machine and maps model sentinels
// to typed API errors. A replayed transition returns the unchanged order; an
// invalid one is rejected before anything is written.
func UpdateOrderStatus(ctx context.Context, orderId int, newStatus string) (*model.Order, *types.ApiError) {
	if !model.IsValidOrderStatus(newStatus) {
		return nil, types.NewErrorWithStatusCode(
			fmt.Errorf("unknown order status %q", newStatus),
			types.ErrorCodeInvalidRequest, http.StatusBadRequest,
			types.ErrOptionWithSkipLog(),
		)
	}

	order, err := model.TransitionOrderStatus(orderId, newStatus)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrOrderNotFound):
			return nil, types.NewErrorWithStatusCode(err, types.ErrorCodeOrderNotFound, http.StatusNotFound, types.ErrOptionWithSkipLog())
		case errors.Is(err, model.ErrInvalidTransition):
			return nil, types.NewErrorWithStatusCode(err, types.ErrorCodeInvalidTransition, http.StatusConflict, types.ErrOptionWithSkipLog())
		case errors.Is(err, model.ErrOrderDelivered):
			return nil, types.NewErrorWithStatusCode(err, types.ErrorCodeOrderDelivered, http.StatusConflict, types.ErrOptionWithSkipLog())
		case errors.Is(err, model.ErrInsufficientStock):
			return nil, types.NewErrorWithStatusCode(err, types.ErrorCodeInsufficientStock, http.StatusConflict, types.ErrOptionWithSkipLog())
		}
		logger.LogError(ctx, fmt.Sprintf("order %d transition to %s failed: %v", orderId, newStatus, err))
		return nil, types.NewError(errors.Wrap(err, "update order status"), types.ErrorCodeUpdateDataError)
	}

	if order.Status == model.OrderStatusReceived && order.CommissionSettled {
		logger.LogInfo(ctx, fmt.Sprintf("order %d received, commission settled at %d", order.Id, order.SettledAt))
	}
	if order.Status == model.OrderStatusCancelled {
		logger.LogInfo(ctx, fmt.Sprintf("order %d cancelled, distribution reversed", order.Id))
	}
	return order, nil
}
