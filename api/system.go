package api

import (
	"cmdbHub/internal/ctx"
	"cmdbHub/internal/global"
	"cmdbHub/internal/registry"
	"cmdbHub/internal/services"
	"cmdbHub/internal/types"

	"github.com/gin-gonic/gin"
)

type systemController struct{}

var SystemController = new(systemController)

/*
系统 API
/api/system
*/
func (systemController systemController) API(gin *gin.RouterGroup) {
	system := gin.Group("system")
	{
		system.GET("getDashboardStatistics", systemController.GetDashboardStatistics)
		system.GET("listAuditLog", systemController.ListAuditLog)
		system.GET("listApiEndpoints", systemController.ListApiEndpoints)
		system.GET("version", systemController.Version)
	}
}

// GetDashboardStatistics 获取首页统计数据
func (systemController systemController) GetDashboardStatistics(ctx *gin.Context) {
	Service(ctx, func() (interface{}, interface{}) {
		return services.StatisticsService.Overview()
	})
}

// ListAuditLog 获取审计日志列表
func (systemController systemController) ListAuditLog(ctx *gin.Context) {
	r := new(types.RequestAuditLogQuery)
	BindQuery(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.AuditLogService.List(r)
	})
}

// ListApiEndpoints 获取系统全部API接口列表
func (systemController systemController) ListApiEndpoints(c *gin.Context) {
	Service(c, func() (interface{}, interface{}) {
		return registry.NewApiRegistry(ctx.DO()).GetAllApiEndpoints(), nil
	})
}

// Version 获取服务版本
func (systemController systemController) Version(ctx *gin.Context) {
	Service(ctx, func() (interface{}, interface{}) {
		return global.Version, nil
	})
}
