package initialization

import (
	"context"
	"testing"

	"cmdbHub/internal/ctx"
)

// TestCancelBackgroundJobs 登记的后台任务在停服清理时全部被取消
func TestCancelBackgroundJobs(t *testing.T) {
	c := ctx.NewContext(context.Background(), nil)

	jobCtx, cancel := context.WithCancel(c.Ctx)
	c.Mux.Lock()
	c.ContextMap["RediscoverJob"] = cancel
	c.Mux.Unlock()

	cancelBackgroundJobs(c)

	select {
	case <-jobCtx.Done():
	default:
		t.Error("期望后台任务上下文被取消，实际仍在运行")
	}

	if len(c.ContextMap) != 0 {
		t.Errorf("期望任务句柄表被清空，实际剩 %d 个", len(c.ContextMap))
	}
}
