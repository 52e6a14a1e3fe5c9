package api

import (
	middleware "cmdbHub/internal/middleware"
	"cmdbHub/internal/services"
	"cmdbHub/internal/types"

	"github.com/gin-gonic/gin"
)

type discoveryController struct{}

var DiscoveryController = new(discoveryController)

/*
自动发现 API
/api/cmdb/discovery
*/
func (discoveryController discoveryController) API(gin *gin.RouterGroup) {
	a := gin.Group("discovery")
	a.Use(
		middleware.AuditingLog(),
	)
	{
		a.POST("discoveryRun", discoveryController.Run)
		a.POST("discoveryRediscover", discoveryController.Rediscover)
	}

	b := gin.Group("discovery")
	{
		b.GET("discoveryHistory", discoveryController.History)
	}
}

func (discoveryController discoveryController) Run(ctx *gin.Context) {
	r := new(types.RequestDiscoveryRun)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		resp, err := services.DiscoveryService.Run(ctx.Request.Context(), r)
		if err != nil {
			return nil, err.Error()
		}
		return resp, nil
	})
}

func (discoveryController discoveryController) Rediscover(ctx *gin.Context) {
	Service(ctx, func() (interface{}, interface{}) {
		resp, err := services.DiscoveryService.Rediscover(ctx.Request.Context())
		if err != nil {
			return nil, err.Error()
		}
		return resp, nil
	})
}

func (discoveryController discoveryController) History(ctx *gin.Context) {
	r := new(types.RequestDiscoveryHistoryQuery)
	BindQuery(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.DiscoveryService.ListHistory(r)
	})
}
