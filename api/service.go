package api

import (
	middleware "cmdbHub/internal/middleware"
	"cmdbHub/internal/services"
	"cmdbHub/internal/types"

	"github.com/gin-gonic/gin"
)

type serviceController struct{}

var ServiceController = new(serviceController)

/*
服务 API
/api/cmdb/service
*/
func (serviceController serviceController) API(gin *gin.RouterGroup) {
	a := gin.Group("service")
	a.Use(
		middleware.AuditingLog(),
	)
	{
		a.POST("serviceCreate", serviceController.Create)
		a.POST("serviceUpdate", serviceController.Update)
		a.POST("serviceDelete", serviceController.Delete)
	}

	b := gin.Group("service")
	{
		b.GET("serviceList", serviceController.List)
		b.GET("serviceDetail", serviceController.Detail)
	}
}

func (serviceController serviceController) Create(ctx *gin.Context) {
	r := new(types.RequestServiceCreate)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ServiceManageService.Create(r)
	})
}

func (serviceController serviceController) Update(ctx *gin.Context) {
	r := new(types.RequestServiceUpdate)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ServiceManageService.Update(r)
	})
}

func (serviceController serviceController) Delete(ctx *gin.Context) {
	r := new(types.RequestID)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ServiceManageService.Delete(r.ID)
	})
}

func (serviceController serviceController) List(ctx *gin.Context) {
	r := new(types.RequestServiceQuery)
	BindQuery(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ServiceManageService.List(r)
	})
}

func (serviceController serviceController) Detail(ctx *gin.Context) {
	r := new(types.RequestID)
	BindQuery(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ServiceManageService.Get(r.ID)
	})
}
