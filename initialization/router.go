package initialization

import (
	"context"

	"cmdbHub/api"
	"cmdbHub/internal/global"
	"cmdbHub/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/zeromicro/go-zero/core/logc"
)

// InitRoute 注册路由并启动HTTP服务
func InitRoute() {
	mode := global.Config.Server.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.Cors(),
	)

	cmdb := engine.Group("api/cmdb")
	{
		api.ServerController.API(cmdb)
		api.ApplicationController.API(cmdb)
		api.ServiceController.API(cmdb)
		api.DependencyController.API(cmdb)
		api.DiscoveryController.API(cmdb)
		api.TransferController.API(cmdb)
	}

	system := engine.Group("api")
	{
		api.SystemController.API(system)
	}

	addr := ":" + global.Config.Server.Port
	logc.Infof(context.Background(), "HTTP服务启动, 监听 %s", addr)
	if err := engine.Run(addr); err != nil {
		logc.Errorf(context.Background(), "HTTP服务启动失败: %s", err.Error())
	}
}
