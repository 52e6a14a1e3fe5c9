package api

import (
	"fmt"
	"net/http"

	middleware "cmdbHub/internal/middleware"
	"cmdbHub/internal/services"
	"cmdbHub/pkg/response"

	"github.com/gin-gonic/gin"
)

type transferController struct{}

var TransferController = new(transferController)

/*
CSV 导入导出 API
/api/cmdb/transfer
*/
func (transferController transferController) API(gin *gin.RouterGroup) {
	a := gin.Group("transfer")
	a.Use(
		middleware.AuditingLog(),
	)
	{
		a.POST("importServers", transferController.ImportServers)
		a.POST("importApplications", transferController.ImportApplications)
	}

	b := gin.Group("transfer")
	{
		b.GET("exportServers", transferController.ExportServers)
		b.GET("exportApplications", transferController.ExportApplications)
		b.GET("exportServices", transferController.ExportServices)
		b.GET("exportDependencies", transferController.ExportDependencies)
	}
}

// exportCsv 导出统一按附件下载返回
func exportCsv(ctx *gin.Context, filename string, fc func() ([]byte, error)) {
	data, err := fc()
	if err != nil {
		response.Fail(ctx, nil, err.Error())
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (transferController transferController) ExportServers(ctx *gin.Context) {
	exportCsv(ctx, "servers.csv", services.TransferService.ExportServers)
}

func (transferController transferController) ExportApplications(ctx *gin.Context) {
	exportCsv(ctx, "applications.csv", services.TransferService.ExportApplications)
}

func (transferController transferController) ExportServices(ctx *gin.Context) {
	exportCsv(ctx, "services.csv", services.TransferService.ExportServices)
}

func (transferController transferController) ExportDependencies(ctx *gin.Context) {
	exportCsv(ctx, "dependencies.csv", services.TransferService.ExportDependencies)
}

func (transferController transferController) ImportServers(ctx *gin.Context) {
	file, _, err := ctx.Request.FormFile("file")
	if err != nil {
		response.Fail(ctx, nil, "读取上传文件失败: "+err.Error())
		return
	}
	defer file.Close()

	Service(ctx, func() (interface{}, interface{}) {
		summary, err := services.TransferService.ImportServers(file)
		if err != nil {
			return nil, err.Error()
		}
		return summary, nil
	})
}

func (transferController transferController) ImportApplications(ctx *gin.Context) {
	file, _, err := ctx.Request.FormFile("file")
	if err != nil {
		response.Fail(ctx, nil, "读取上传文件失败: "+err.Error())
		return
	}
	defer file.Close()

	Service(ctx, func() (interface{}, interface{}) {
		summary, err := services.TransferService.ImportApplications(file)
		if err != nil {
			return nil, err.Error()
		}
		return summary, nil
	})
}
