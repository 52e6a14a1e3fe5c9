package api

import (
	middleware "cmdbHub/internal/middleware"
	"cmdbHub/internal/services"
	"cmdbHub/internal/types"

	"github.com/gin-gonic/gin"
)

type applicationController struct{}

var ApplicationController = new(applicationController)

/*
应用 API
/api/cmdb/application
*/
func (applicationController applicationController) API(gin *gin.RouterGroup) {
	a := gin.Group("application")
	a.Use(
		middleware.AuditingLog(),
	)
	{
		a.POST("applicationCreate", applicationController.Create)
		a.POST("applicationUpdate", applicationController.Update)
		a.POST("applicationDelete", applicationController.Delete)
	}

	b := gin.Group("application")
	{
		b.GET("applicationList", applicationController.List)
		b.GET("applicationDetail", applicationController.Detail)
	}
}

func (applicationController applicationController) Create(ctx *gin.Context) {
	r := new(types.RequestApplicationCreate)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ApplicationService.Create(r)
	})
}

func (applicationController applicationController) Update(ctx *gin.Context) {
	r := new(types.RequestApplicationUpdate)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ApplicationService.Update(r)
	})
}

func (applicationController applicationController) Delete(ctx *gin.Context) {
	r := new(types.RequestID)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ApplicationService.Delete(r.ID)
	})
}

func (applicationController applicationController) List(ctx *gin.Context) {
	r := new(types.RequestApplicationQuery)
	BindQuery(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ApplicationService.List(r)
	})
}

func (applicationController applicationController) Detail(ctx *gin.Context) {
	r := new(types.RequestID)
	BindQuery(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ApplicationService.Get(r.ID)
	})
}
