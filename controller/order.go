package controller

import (
	"strconv"

	"github.com/JENAI-COMPANY/jenai-sub002/common"
	"github.com/JENAI-COMPANY/jenai-sub002/constant"
	"github.com/JENAI-COMPANY/jenai-sub002/dto"
	"github.com/JENAI-COMPANY/jenai-sub002/service"

	"github.com/gin-gonic/gin"
)

func orderIdParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		common.ApiErrorMsg(c, "invalid order id")
		return 0, false
	}
	return id, true
}

func CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ApiErrorMsg(c, "invalid request: "+err.Error())
		return
	}
	buyerId := common.GetContextKeyInt(c, constant.ContextKeyUserId)
	order, apiErr := service.CreateOrder(c, buyerId, req.ReferralCode, req.Items)
	if apiErr != nil {
		c.JSON(apiErr.StatusCode, gin.H{"success": false, "message": apiErr.Error(), "code": apiErr.Code})
		return
	}
	common.ApiSuccess(c, dto.NewOrderResponse(order))
}

func UpdateOrderStatus(c *gin.Context) {
	id, ok := orderIdParam(c)
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ApiErrorMsg(c, "invalid request: "+err.Error())
		return
	}
	order, apiErr := service.UpdateOrderStatus(c, id, req.Status)
	if apiErr != nil {
		c.JSON(apiErr.StatusCode, gin.H{"success": false, "message": apiErr.Error(), "code": apiErr.Code})
		return
	}
	common.ApiSuccess(c, dto.NewOrderResponse(order))
}

func GetOrder(c *gin.Context) {
	id, ok := orderIdParam(c)
	if !ok {
		return
	}
	order, apiErr := service.GetOrder(id)
	if apiErr != nil {
		c.JSON(apiErr.StatusCode, gin.H{"success": false, "message": apiErr.Error(), "code": apiErr.Code})
		return
	}
	common.ApiSuccess(c, dto.NewOrderResponse(order))
}
