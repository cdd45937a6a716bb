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

// RecomputeUserBalances derives one user's balances from the commission
// ledger and optionally repairs drift. Exposed to admins as the sanctioned
// replacement for out-of-band balance surgery.
func RecomputeUserBalances(ctx context.Context, userId int, repair bool) ([]model.BalanceDrift, *types.ApiError) {
	drifts, err := model.RecomputeUserBalances(userId, repair)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, types.NewErrorWithStatusCode(err, types.ErrorCodeUserNotFound, http.StatusNotFound, types.ErrOptionWithSkipLog())
		}
		logger.LogError(ctx, fmt.Sprintf("recompute balances for user %d failed: %v", userId, err))
		return nil, types.NewError(errors.Wrap(err, "recompute balances"), types.ErrorCodeUpdateDataError)
	}
	if len(drifts) > 0 {
		logger.LogInfo(ctx, fmt.Sprintf("user %d balance drift detected on %d fields (repair=%v)", userId, len(drifts), repair))
	}
	return drifts, nil
}
