package ctx

import (
	"context"
	"sync"

	"cmdbHub/internal/repo"
)

// Context 业务上下文
// 显式携带存储句柄，所有服务构造时传入，避免隐藏的进程级单例
type Context struct {
	Ctx context.Context
	DB  repo.InterEntryRepo

	// ContextMap 存放可取消的后台任务句柄
	ContextMap map[string]context.CancelFunc
	Mux        sync.Mutex
}

var do *Context

// NewContext 创建业务上下文
func NewContext(ctx context.Context, db repo.InterEntryRepo) *Context {
	c := &Context{
		Ctx:        ctx,
		DB:         db,
		ContextMap: make(map[string]context.CancelFunc),
	}
	do = c
	return c
}

// DO 获取全局业务上下文，仅供 gin 中间件使用
// 业务服务一律走构造注入
func DO() *Context {
	return do
}
