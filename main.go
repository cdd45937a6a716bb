package main

import (
	"fmt"

	"github.com/JENAI-COMPANY/jenai-sub002/common"
	"github.com/JENAI-COMPANY/jenai-sub002/model"
	"github.com/JENAI-COMPANY/jenai-sub002/router"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	common.LoadEnv()
	common.InitAuthJWT()

	if err := model.LoadRankThresholds(); err != nil {
		common.FatalLog("failed to load rank thresholds: " + err.Error())
	}
	if err := model.ActiveRateTable().Validate(); err != nil {
		common.FatalLog("invalid rate table: " + err.Error())
	}
	if err := model.InitDB(); err != nil {
		common.FatalLog("failed to initialize database: " + err.Error())
	}
	defer func() {
		if err := model.CloseDB(); err != nil {
			common.SysError("failed to close database: " + err.Error())
		}
	}()

	if common.GetEnvString("GIN_MODE", "") != gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	server := gin.New()
	server.Use(gin.Recovery())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: false,
	}))
	router.SetApiRouter(server)

	port := common.GetEnvInt("PORT", 3000)
	common.SysLog(fmt.Sprintf("server started on port %d, rate table v%d", port, model.ActiveRateTable().Version))
	if err := server.Run(fmt.Sprintf(":%d", port)); err != nil {
		common.FatalLog("failed to start HTTP server: " + err.Error())
	}
}
