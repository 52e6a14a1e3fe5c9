package api

import (
	"cmdbHub/pkg/response"

	"github.com/gin-gonic/gin"
)

// Service 统一执行业务调用并按约定封装响应
// fc 返回 (数据, 错误信息)，错误信息非空时返回失败响应
func Service(ctx *gin.Context, fc func() (interface{}, interface{})) {
	data, err := fc()
	if err != nil {
		response.Fail(ctx, data, err)
		return
	}

	response.Success(ctx, data, "success")
}

// BindJson 绑定请求体，失败时直接返回参数错误
func BindJson(ctx *gin.Context, req interface{}) {
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.Fail(ctx, err.Error(), "参数错误")
		ctx.Abort()
		return
	}
}

// BindQuery 绑定查询参数，失败时直接返回参数错误
func BindQuery(ctx *gin.Context, req interface{}) {
	if err := ctx.ShouldBindQuery(req); err != nil {
		response.Fail(ctx, err.Error(), "参数错误")
		ctx.Abort()
		return
	}
}
