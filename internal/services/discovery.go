package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cmdbHub/internal/ctx"
	"cmdbHub/internal/global"
	"cmdbHub/internal/models"
	"cmdbHub/internal/types"
	"cmdbHub/pkg/probe"
	"cmdbHub/pkg/tools"

	"github.com/zeromicro/go-zero/core/logc"
	"golang.org/x/sync/errgroup"
)

type (
	discoveryService struct {
		ctx *ctx.Context
	}

	// InterDiscoveryService 自动发现服务接口
	// 对一批目标做探测并把采集结果交给合并引擎落库，
	// 单个目标失败不影响其余目标，批次整体结果为 success/partial/failure
	InterDiscoveryService interface {
		// Run 执行一个发现批次
		Run(c context.Context, req *types.RequestDiscoveryRun) (*types.ResponseDiscoveryRun, error)
		// Rediscover 对库里全部 active 服务器按已知地址重新探测
		// 定时任务入口，也可手动触发
		Rediscover(c context.Context) (*types.ResponseDiscoveryRun, error)
		ListHistory(req interface{}) (interface{}, interface{})
	}
)

func newInterDiscoveryService(ctx *ctx.Context) InterDiscoveryService {
	return &discoveryService{
		ctx: ctx,
	}
}

// Run 执行一个发现批次
// 并发探测各目标，并发上限和单目标超时由配置控制；
// 批次中途取消时已完成目标的结果保留，未开始的目标记为失败
func (d *discoveryService) Run(c context.Context, req *types.RequestDiscoveryRun) (*types.ResponseDiscoveryRun, error) {
	if len(req.Targets) == 0 {
		return &types.ResponseDiscoveryRun{
			BatchID: tools.RandId(),
			Outcome: models.DiscoveryOutcomeSuccess,
			Targets: make([]types.TargetResult, 0),
		}, nil
	}

	batchId := tools.RandId()
	timeout := time.Duration(global.Config.Discovery.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	concurrency := global.Config.Discovery.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}

	results := make([]types.TargetResult, len(req.Targets))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(c)
	g.SetLimit(concurrency)

	for i, target := range req.Targets {
		i, target := i, target
		g.Go(func() error {
			result := d.discoverOne(gctx, batchId, target, timeout)
			mu.Lock()
			results[i] = result
			mu.Unlock()
			// 单目标失败不取消批次
			return nil
		})
	}
	_ = g.Wait()

	resp := &types.ResponseDiscoveryRun{
		BatchID: batchId,
		Targets: results,
	}
	for _, result := range results {
		if result.Success {
			resp.Summary.Merge(result.Summary)
		} else {
			resp.Summary.Total++
			resp.Summary.Failed++
			resp.Summary.Failures = append(resp.Summary.Failures, types.RowFailure{
				Key:    result.Target,
				Reason: result.Error,
			})
		}
	}
	resp.Outcome = batchOutcome(results)

	logc.Infof(c, "发现批次 %s 完成: %d 个目标, 结果 %s", batchId, len(req.Targets), resp.Outcome)
	return resp, nil
}

// discoverOne 探测单个目标并合并落库，目标维度落一条审计记录
func (d *discoveryService) discoverOne(c context.Context, batchId string, target probe.Target, timeout time.Duration) types.TargetResult {
	result := types.TargetResult{Target: target.Addr()}

	discoveryType := target.Kind
	if discoveryType == "" {
		discoveryType = models.DiscoveryTypeLocal
	}

	fail := func(err error) types.TargetResult {
		result.Success = false
		result.Error = err.Error()
		detail := err.Error()
		summary := types.ReconcileSummary{Total: 1, Failed: 1}
		if herr := ReconcileService.RecordHistory(batchId, result.Target, discoveryType, summary, &detail); herr != nil {
			logc.Errorf(c, "写入发现记录失败: %v", herr)
		}
		return result
	}

	prober, err := probe.ProberFor(target)
	if err != nil {
		return fail(err)
	}

	pctx, cancel := context.WithTimeout(c, timeout)
	defer cancel()

	facts, err := prober.FetchFacts(pctx, target)
	if err != nil {
		logc.Errorf(c, "探测目标 %s 失败: %v", result.Target, err)
		return fail(err)
	}

	summary, err := d.applyFacts(target, facts)
	if err != nil {
		return fail(err)
	}

	result.Success = summary.Failed < summary.Total || summary.Total == 0
	result.Summary = summary
	if !result.Success && len(summary.Failures) > 0 {
		result.Error = summary.Failures[0].Reason
	}

	if herr := ReconcileService.RecordHistory(batchId, result.Target, discoveryType, summary, nil); herr != nil {
		logc.Errorf(c, "写入发现记录失败: %v", herr)
	}
	return result
}

// applyFacts 把一台主机的探测结果转成候选记录并合并落库
// 服务器先落库拿到 ID，服务候选再挂到该服务器下
func (d *discoveryService) applyFacts(target probe.Target, facts *probe.FactSet) (types.ReconcileSummary, error) {
	hostname := ""
	if facts.Hostname != nil {
		hostname = *facts.Hostname
	}
	if hostname == "" && target.Kind != probe.TargetKindLocal {
		hostname = target.Host
	}
	if hostname == "" {
		return types.ReconcileSummary{}, fmt.Errorf("探测结果缺少主机名")
	}

	active := models.ServerStatusActive
	serverCand := types.ServerCandidate{
		Hostname:  hostname,
		IPAddress: facts.IPAddress,
		OSType:    facts.OSType,
		OSVersion: facts.OSVersion,
		CPUCores:  facts.CPUCores,
		MemoryGB:  facts.MemoryGB,
		DiskGB:    facts.DiskGB,
		Status:    &active,
		MarkSeen:  true,
	}
	if serverCand.IPAddress == nil && target.Kind != probe.TargetKindLocal && tools.IsValidIP(target.Host) {
		serverCand.IPAddress = &target.Host
	}

	summary := ReconcileService.ReconcileServers([]types.ServerCandidate{serverCand})
	if summary.Failed > 0 {
		return summary, nil
	}

	server, err := d.ctx.DB.Server().GetByHostname(hostname)
	if err != nil || server == nil {
		return summary, fmt.Errorf("服务器 %s 落库后查询失败: %v", hostname, err)
	}

	serviceCands := make([]types.ServiceCandidate, 0, len(facts.Services))
	for _, fact := range facts.Services {
		status := fact.Status
		if status == "" {
			status = models.ServiceStatusRunning
		}
		serviceCands = append(serviceCands, types.ServiceCandidate{
			ServerID:    server.ID,
			ServiceName: fact.Name,
			Port:        fact.Port,
			Protocol:    fact.Protocol,
			Status:      &status,
			ProcessName: fact.ProcessName,
		})
	}
	summary.Merge(ReconcileService.ReconcileServices(serviceCands))

	return summary, nil
}

// Rediscover 定时重新发现
// 只覆盖有IP地址的 active 服务器，使用配置里的统一SSH凭据
func (d *discoveryService) Rediscover(c context.Context) (*types.ResponseDiscoveryRun, error) {
	if global.Config.Discovery.SSHUser == "" {
		logc.Info(c, "未配置SSH账号, 跳过定时重新发现")
		return &types.ResponseDiscoveryRun{
			BatchID: tools.RandId(),
			Outcome: models.DiscoveryOutcomeSuccess,
			Targets: make([]types.TargetResult, 0),
		}, nil
	}

	servers, err := d.ctx.DB.Server().ListAll()
	if err != nil {
		return nil, err
	}

	targets := make([]probe.Target, 0, len(servers))
	for _, server := range servers {
		if server.Status != models.ServerStatusActive || server.IPAddress == nil {
			continue
		}
		kind := probe.TargetKindSSH
		if server.OSType != nil && *server.OSType == "Windows" {
			kind = probe.TargetKindWindows
		}
		targets = append(targets, probe.Target{
			Kind:     kind,
			Host:     *server.IPAddress,
			Port:     global.Config.Discovery.SSHPort,
			User:     global.Config.Discovery.SSHUser,
			Password: global.Config.Discovery.SSHPass,
		})
	}

	logc.Infof(c, "定时重新发现: %d 台候选主机", len(targets))
	return d.Run(c, &types.RequestDiscoveryRun{Targets: targets})
}

// ListHistory 发现历史查询
func (d *discoveryService) ListHistory(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestDiscoveryHistoryQuery)

	list, total, err := d.ctx.DB.DiscoveryHistory().List(r.DiscoveryType, r.Outcome, r.Page)
	if err != nil {
		return nil, err.Error()
	}

	return types.ResponseDiscoveryHistoryList{
		List:  list,
		Total: total,
	}, nil
}

// batchOutcome 按各目标成败推导批次结果
func batchOutcome(results []types.TargetResult) string {
	if len(results) == 0 {
		return models.DiscoveryOutcomeSuccess
	}
	failed := 0
	for _, result := range results {
		if !result.Success {
			failed++
		}
	}
	switch {
	case failed == 0:
		return models.DiscoveryOutcomeSuccess
	case failed == len(results):
		return models.DiscoveryOutcomeFailure
	default:
		return models.DiscoveryOutcomePartial
	}
}
