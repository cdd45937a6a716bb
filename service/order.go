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

// CreateOrder validates and places an order with frozen point values.
func CreateOrder(ctx context.Context, buyerId int, referralCode string, items []model.NewOrderItem) (*model.Order, *types.ApiError) {
	order, err := model.CreateOrder(buyerId, referralCode, items)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrEmptyOrder):
			return nil, types.NewErrorWithStatusCode(err, types.ErrorCodeInvalidRequest, http.StatusBadRequest, types.ErrOptionWithSkipLog())
		case errors.Is(err, model.ErrUserNotFound):
			return nil, types.NewErrorWithStatusCode(err, types.ErrorCodeUserNotFound, http.StatusNotFound, types.ErrOptionWithSkipLog())
		case errors.Is(err, model.ErrReferrerNotFound):
			return nil, types.NewErrorWithStatusCode(err, types.ErrorCodeInvalidRequest, http.StatusBadRequest, types.ErrOptionWithSkipLog())
		}
		logger.LogError(ctx, fmt.Sprintf("create order for user %d failed: %v", buyerId, err))
		return nil, types.NewError(errors.Wrap(err, "create order"), types.ErrorCodeUpdateDataError)
	}
	logger.LogInfo(ctx, fmt.Sprintf("order %d created for user %d, %.2f points frozen", order.Id, buyerId, order.TotalPoints))
	return order, nil
}

// GetOrder loads an order with its items and settlement state.
func GetOrder(orderId int) (*model.Order, *types.ApiError) {
	order, err := model.GetOrderById(orderId)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return nil, types.NewErrorWithStatusCode(err, types.ErrorCodeOrderNotFound, http.StatusNotFound, types.ErrOptionWithSkipLog())
		}
		return nil, types.NewError(errors.Wrap(err, "get order"), types.ErrorCodeQueryDataError)
	}
	return order, nil
}
