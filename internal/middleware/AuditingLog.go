package middleware

import (
	"bytes"
	"io"
	"strings"
	"time"

	"cmdbHub/internal/ctx"
	"cmdbHub/internal/models"
	"cmdbHub/pkg/tools"

	"github.com/gin-gonic/gin"
	"github.com/zeromicro/go-zero/core/logc"
)

// AuditingLog 记录写操作审计日志
// 挂在变更类路由上，请求处理完成后落库
func AuditingLog() gin.HandlerFunc {
	return func(context *gin.Context) {
		body := context.Request.Body
		readBody, err := io.ReadAll(body)
		if err != nil {
			logc.Error(ctx.DO().Ctx, err)
			return
		}
		// 将 body 数据放回请求中
		context.Request.Body = io.NopCloser(bytes.NewBuffer(readBody))

		// 当请求处理完成后才会执行 Next() 后面的代码
		context.Next()

		actionDesc := generateActionDescription(context.Request.Method, context.Request.URL.Path)

		auditLog := models.AuditLog{
			ID:         "Trace" + tools.RandId(),
			IPAddress:  context.ClientIP(),
			Method:     context.Request.Method,
			Path:       context.Request.URL.Path,
			CreatedAt:  time.Now().Unix(),
			StatusCode: context.Writer.Status(),
			Body:       string(readBody),
			AuditType:  actionDesc,
		}

		c := ctx.DO()
		if err = c.DB.AuditLog().Create(auditLog); err != nil {
			// 审计失败不影响业务响应，只记日志
			logc.Errorf(c.Ctx, "审计日志写入数据库失败, %s", err.Error())
		}
	}
}

// generateActionDescription 生成操作描述
func generateActionDescription(method, path string) string {
	// 提取路径的最后一部分作为操作名称
	pathSegments := strings.Split(path, "/")
	var actionName string
	if len(pathSegments) > 0 {
		actionName = pathSegments[len(pathSegments)-1]
	}

	// 根据HTTP方法生成操作描述
	switch method {
	case "POST":
		return "变更" + actionName
	case "PUT":
		return "更新" + actionName
	case "DELETE":
		return "删除" + actionName
	case "GET":
		return "查看" + actionName
	default:
		return method + " " + actionName
	}
}
