package tools

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/zeromicro/go-zero/core/logc"
)

// NewCronjob 注册一个定时任务并启动调度器
// expr 为 robfig/cron 五段表达式: 分 时 日 月 星期
func NewCronjob(expr string, job func()) {
	c := cron.New()
	_, err := c.AddFunc(expr, job)
	if err != nil {
		logc.Errorf(context.Background(), "注册定时任务失败, 表达式: %s, err: %s", expr, err.Error())
		return
	}
	c.Start()
}
