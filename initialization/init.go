package initialization

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cmdbHub/config"
	"cmdbHub/internal/ctx"
	"cmdbHub/internal/global"
	"cmdbHub/internal/repo"
	"cmdbHub/internal/services"
	"cmdbHub/pkg/client"
	"cmdbHub/pkg/tools"

	"github.com/zeromicro/go-zero/core/logc"
)

func InitBasic() {

	// 初始化配置
	global.Config = config.InitConfig()

	db := client.NewDBClient(global.Config.DB)
	dbRepo := repo.NewRepoEntry(db)
	ctx := ctx.NewContext(context.Background(), dbRepo)

	services.NewServices(ctx)

	// 定时任务，清理过期的发现历史记录
	go gcHistoryData(ctx)

	// 定时任务，重新发现已纳管主机
	if cron := global.Config.Discovery.RediscoverCron; cron != "" {
		go rediscoverScheduler(ctx, cron)
	}

	// 停服时取消全部后台任务
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancelBackgroundJobs(ctx)
		os.Exit(0)
	}()
}

// cancelBackgroundJobs 取消并清空 ContextMap 里登记的全部后台任务
func cancelBackgroundJobs(ctx *ctx.Context) {
	ctx.Mux.Lock()
	defer ctx.Mux.Unlock()

	for mark, cancel := range ctx.ContextMap {
		cancel()
		delete(ctx.ContextMap, mark)
	}
}

// gcHistoryData 每天清理90天前的发现历史
func gcHistoryData(ctx *ctx.Context) {
	tools.NewCronjob("00 00 */1 * *", func() {
		before := time.Now().AddDate(0, 0, -90)
		if err := ctx.DB.DiscoveryHistory().DeleteBefore(before); err != nil {
			logc.Errorf(ctx.Ctx, "fail to delete discovery history data, %s", err.Error())
		}
	})
}

// rediscoverScheduler 定时重新发现调度
// 任务句柄记入 ContextMap，便于停服时取消
func rediscoverScheduler(ctx *ctx.Context, cron string) {
	const mark = "RediscoverJob"
	c, cancel := context.WithCancel(ctx.Ctx)
	ctx.Mux.Lock()
	ctx.ContextMap[mark] = cancel
	ctx.Mux.Unlock()

	tools.NewCronjob(cron, func() {
		logc.Info(c, "定时任务触发: 开始重新发现已纳管主机")

		resp, err := services.DiscoveryService.Rediscover(c)
		if err != nil {
			logc.Errorf(c, "重新发现失败: %s", err.Error())
			return
		}
		logc.Infof(c, "重新发现完成, 批次 %s, 结果 %s", resp.BatchID, resp.Outcome)
	})
}
