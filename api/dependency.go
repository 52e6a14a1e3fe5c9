package api

import (
	middleware "cmdbHub/internal/middleware"
	"cmdbHub/internal/services"
	"cmdbHub/internal/types"

	"github.com/gin-gonic/gin"
)

type dependencyController struct{}

var DependencyController = new(dependencyController)

/*
服务依赖图 API
/api/cmdb/dependency
*/
func (dependencyController dependencyController) API(gin *gin.RouterGroup) {
	a := gin.Group("dependency")
	a.Use(
		middleware.AuditingLog(),
	)
	{
		a.POST("dependencyAdd", dependencyController.Add)
		a.POST("dependencyRemove", dependencyController.Remove)
	}

	b := gin.Group("dependency")
	{
		b.GET("dependencyList", dependencyController.List)
		b.GET("serviceGraph", dependencyController.Graph)
		b.GET("listDependents", dependencyController.ListDependents)
		b.GET("listDependencies", dependencyController.ListDependencies)
		b.GET("detectCycles", dependencyController.DetectCycles)
	}
}

func (dependencyController dependencyController) Add(ctx *gin.Context) {
	r := new(types.RequestDependencyAdd)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		dep, err := services.DependencyGraphService.Add(r)
		if err != nil {
			return nil, err.Error()
		}
		return dep, nil
	})
}

func (dependencyController dependencyController) Remove(ctx *gin.Context) {
	r := new(types.RequestDependencyRemove)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		if err := services.DependencyGraphService.Remove(r.SourceServiceID, r.TargetServiceID); err != nil {
			return nil, err.Error()
		}
		return nil, nil
	})
}

func (dependencyController dependencyController) List(ctx *gin.Context) {
	Service(ctx, func() (interface{}, interface{}) {
		list, err := services.DependencyGraphService.List()
		if err != nil {
			return nil, err.Error()
		}
		return list, nil
	})
}

func (dependencyController dependencyController) Graph(ctx *gin.Context) {
	r := new(types.RequestServiceGraphQuery)
	BindQuery(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		graph, err := services.DependencyGraphService.Graph(r.ServiceID)
		if err != nil {
			return nil, err.Error()
		}
		return graph, nil
	})
}

func (dependencyController dependencyController) ListDependents(ctx *gin.Context) {
	r := new(types.RequestServiceGraphQuery)
	BindQuery(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		list, err := services.DependencyGraphService.ListDependents(r.ServiceID)
		if err != nil {
			return nil, err.Error()
		}
		return list, nil
	})
}

func (dependencyController dependencyController) ListDependencies(ctx *gin.Context) {
	r := new(types.RequestServiceGraphQuery)
	BindQuery(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		list, err := services.DependencyGraphService.ListDependencies(r.ServiceID)
		if err != nil {
			return nil, err.Error()
		}
		return list, nil
	})
}

func (dependencyController dependencyController) DetectCycles(ctx *gin.Context) {
	Service(ctx, func() (interface{}, interface{}) {
		report, err := services.DependencyGraphService.DetectCycles()
		if err != nil {
			return nil, err.Error()
		}
		return report, nil
	})
}
