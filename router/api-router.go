package router

import (
	"github.com/JENAI-COMPANY/jenai-sub002/controller"
	"github.com/JENAI-COMPANY/jenai-sub002/middleware"
	"github.com/JENAI-COMPANY/jenai-sub002/model"

	"github.com/gin-gonic/gin"
)

func SetApiRouter(router *gin.Engine) {
	apiRoute := router.Group("/api")
	apiRoute.Use(middleware.RequestId())
	{
		orderRoute := apiRoute.Group("/order")
		orderRoute.Use(middleware.Auth())
		{
			orderRoute.POST("", controller.CreateOrder)
			orderRoute.GET("/:id", controller.GetOrder)
			orderRoute.PUT("/:id/status", middleware.RoleRequired(model.RoleAdmin, model.RoleSupplier), controller.UpdateOrderStatus)
		}

		userRoute := apiRoute.Group("/user")
		userRoute.Use(middleware.Auth())
		{
			userRoute.GET("/self/earnings", controller.GetSelfEarnings)
			userRoute.GET("/self/ledger", controller.GetSelfLedger)
			userRoute.POST("/referrer", controller.AssignReferrer)
		}

		adminRoute := apiRoute.Group("/admin")
		adminRoute.Use(middleware.Auth(), middleware.AdminOnly())
		{
			adminRoute.POST("/user/:id/recompute", controller.RecomputeUserBalances)
		}
	}
}
