package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Code int         `json:"code"`
	Data interface{} `json:"data"`
	Msg  interface{} `json:"msg"`
}

// Success 请求成功的统一返回
func Success(ctx *gin.Context, data interface{}, msg interface{}) {
	ctx.JSON(http.StatusOK, Response{
		Code: 200,
		Data: data,
		Msg:  msg,
	})
}

// Fail 请求失败的统一返回
func Fail(ctx *gin.Context, data interface{}, msg interface{}) {
	ctx.JSON(http.StatusOK, Response{
		Code: 400,
		Data: data,
		Msg:  msg,
	})
}
