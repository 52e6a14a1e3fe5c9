package api

import (
	middleware "cmdbHub/internal/middleware"
	"cmdbHub/internal/services"
	"cmdbHub/internal/types"

	"github.com/gin-gonic/gin"
)

type serverController struct{}

var ServerController = new(serverController)

/*
服务器 API
/api/cmdb/server
*/
func (serverController serverController) API(gin *gin.RouterGroup) {
	a := gin.Group("server")
	a.Use(
		middleware.AuditingLog(),
	)
	{
		a.POST("serverCreate", serverController.Create)
		a.POST("serverUpdate", serverController.Update)
		a.POST("serverDelete", serverController.Delete)
	}

	b := gin.Group("server")
	{
		b.GET("serverList", serverController.List)
		b.GET("serverDetail", serverController.Detail)
	}
}

func (serverController serverController) Create(ctx *gin.Context) {
	r := new(types.RequestServerCreate)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ServerService.Create(r)
	})
}

func (serverController serverController) Update(ctx *gin.Context) {
	r := new(types.RequestServerUpdate)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ServerService.Update(r)
	})
}

func (serverController serverController) Delete(ctx *gin.Context) {
	r := new(types.RequestID)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ServerService.Delete(r.ID)
	})
}

func (serverController serverController) List(ctx *gin.Context) {
	r := new(types.RequestServerQuery)
	BindQuery(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ServerService.List(r)
	})
}

func (serverController serverController) Detail(ctx *gin.Context) {
	r := new(types.RequestID)
	BindQuery(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ServerService.Get(r.ID)
	})
}
