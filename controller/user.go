package controller

import (
	"strconv"

	"github.com/JENAI-COMPANY/jenai-sub002/common"
	"github.com/JENAI-COMPANY/jenai-sub002/constant"
	"github.com/JENAI-COMPANY/jenai-sub002/dto"
	"github.com/JENAI-COMPANY/jenai-sub002/model"
	"github.com/JENAI-COMPANY/jenai-sub002/service"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// GetSelfEarnings serves the "my earnings" member view: balances, rank and
// the accumulated-points figure the rank derives from.
func GetSelfEarnings(c *gin.Context) {
	userId := common.GetContextKeyInt(c, constant.ContextKeyUserId)
	user, err := model.GetUserById(userId)
	if err != nil {
		common.ApiError(c, err)
		return
	}
	common.ApiSuccess(c, dto.NewEarningsResponse(user))
}

func GetSelfLedger(c *gin.Context) {
	userId := common.GetContextKeyInt(c, constant.ContextKeyUserId)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	entries, total, err := model.GetUserCommissionEntries(userId, page, pageSize)
	if err != nil {
		common.ApiError(c, err)
		return
	}
	common.ApiSuccess(c, gin.H{
		"total": total,
		"entries": lo.Map(entries, func(entry model.CommissionEntry, _ int) dto.LedgerEntryResponse {
			return dto.NewLedgerEntryResponse(entry)
		}),
	})
}

func AssignReferrer(c *gin.Context) {
	var req dto.AssignReferrerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ApiErrorMsg(c, "invalid request: "+err.Error())
		return
	}
	userId := common.GetContextKeyInt(c, constant.ContextKeyUserId)
	if err := model.AssignReferrer(userId, req.ReferralCode); err != nil {
		common.ApiError(c, err)
		return
	}
	common.ApiSuccess(c, nil)
}

// RecomputeUserBalances is the admin drift-repair endpoint. Pass repair=true
// to overwrite stored balances with the ledger-derived values.
func RecomputeUserBalances(c *gin.Context) {
	userId, err := strconv.Atoi(c.Param("id"))
	if err != nil || userId <= 0 {
		common.ApiErrorMsg(c, "invalid user id")
		return
	}
	repair := c.Query("repair") == "true"
	drifts, apiErr := service.RecomputeUserBalances(c, userId, repair)
	if apiErr != nil {
		c.JSON(apiErr.StatusCode, gin.H{"success": false, "message": apiErr.Error(), "code": apiErr.Code})
		return
	}
	common.ApiSuccess(c, gin.H{
		"drifts":   drifts,
		"repaired": repair && len(drifts) > 0,
	})
}
