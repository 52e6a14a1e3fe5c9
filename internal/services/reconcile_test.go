package services

import (
	"testing"

	"cmdbHub/internal/models"
	"cmdbHub/internal/types"
)

// TestReconcileServerIdempotent 同一候选重复合并任意次结果不变
func TestReconcileServerIdempotent(t *testing.T) {
	c := newTestContext(t)

	cand := types.ServerCandidate{
		Hostname:  "web-01",
		IPAddress: strp("10.0.0.1"),
		OSType:    strp("Linux"),
		CPUCores:  intp(8),
		MemoryGB:  floatp(16),
	}

	first := ReconcileService.ReconcileServers([]types.ServerCandidate{cand})
	if first.Created != 1 || first.Failed != 0 {
		t.Fatalf("期望首次合并创建 1 条，实际 %+v", first)
	}

	second := ReconcileService.ReconcileServers([]types.ServerCandidate{cand})
	if second.Unchanged != 1 || second.Created != 0 || second.Updated != 0 {
		t.Errorf("期望重复合并结果为 unchanged，实际 %+v", second)
	}

	count, err := c.DB.Server().Count()
	if err != nil {
		t.Fatalf("统计服务器数失败: %v", err)
	}
	if count != 1 {
		t.Errorf("期望服务器数为 1，实际为 %d", count)
	}
}

// TestReconcileServerNilFieldKeepsValue 未知字段绝不覆盖已有数据
func TestReconcileServerNilFieldKeepsValue(t *testing.T) {
	c := newTestContext(t)

	full := types.ServerCandidate{
		Hostname:  "web-01",
		IPAddress: strp("10.0.0.1"),
		OSType:    strp("Linux"),
	}
	ReconcileService.ReconcileServers([]types.ServerCandidate{full})

	// 第二个来源只知道IP，OSType 为 nil
	partial := types.ServerCandidate{
		Hostname:  "web-01",
		IPAddress: strp("10.0.0.2"),
	}
	summary := ReconcileService.ReconcileServers([]types.ServerCandidate{partial})
	if summary.Updated != 1 {
		t.Fatalf("期望 IP 变化触发更新，实际 %+v", summary)
	}

	server, err := c.DB.Server().GetByHostname("web-01")
	if err != nil || server == nil {
		t.Fatalf("查询服务器失败: %v", err)
	}
	if server.IPAddress == nil || *server.IPAddress != "10.0.0.2" {
		t.Errorf("期望 IP 更新为 10.0.0.2，实际 %v", server.IPAddress)
	}
	if server.OSType == nil || *server.OSType != "Linux" {
		t.Errorf("期望 OSType 保留 Linux，实际 %v", server.OSType)
	}
}

// TestReconcileServerMarkSeen 发现来源刷新 last_seen，CSV 来源不刷新
func TestReconcileServerMarkSeen(t *testing.T) {
	c := newTestContext(t)

	ReconcileService.ReconcileServers([]types.ServerCandidate{
		{Hostname: "web-01", MarkSeen: true},
		{Hostname: "web-02", MarkSeen: false},
	})

	seen, _ := c.DB.Server().GetByHostname("web-01")
	if seen == nil || seen.LastSeen == nil {
		t.Error("期望发现来源的服务器 last_seen 已设置")
	}
	unseen, _ := c.DB.Server().GetByHostname("web-02")
	if unseen == nil || unseen.LastSeen != nil {
		t.Error("期望导入来源的服务器 last_seen 为空")
	}
}

// TestReconcileServerPartialBatch 单条失败不影响其余候选
func TestReconcileServerPartialBatch(t *testing.T) {
	c := newTestContext(t)

	summary := ReconcileService.ReconcileServers([]types.ServerCandidate{
		{Hostname: "web-01"},
		{Hostname: ""},
		{Hostname: "web-02", IPAddress: strp("不是IP")},
		{Hostname: "web-03"},
	})

	if summary.Created != 2 || summary.Failed != 2 {
		t.Fatalf("期望 2 创建 2 失败，实际 %+v", summary)
	}
	if summary.Outcome() != models.DiscoveryOutcomePartial {
		t.Errorf("期望批次结果为 partial，实际 %s", summary.Outcome())
	}
	if len(summary.Failures) != 2 {
		t.Errorf("期望 2 条失败明细，实际 %d 条", len(summary.Failures))
	}

	count, _ := c.DB.Server().Count()
	if count != 2 {
		t.Errorf("期望成功落库 2 台，实际 %d 台", count)
	}
}

// TestReconcileApplications 应用按 (name, version) 合并
func TestReconcileApplications(t *testing.T) {
	c := newTestContext(t)

	summary := ReconcileService.ReconcileApplications([]types.ApplicationCandidate{
		{Name: "orders", Version: "1.0"},
		{Name: "orders", Version: "2.0"},
	})
	if summary.Created != 2 {
		t.Fatalf("期望不同版本各建一条，实际 %+v", summary)
	}

	update := ReconcileService.ReconcileApplications([]types.ApplicationCandidate{
		{Name: "orders", Version: "1.0", Language: strp("Go")},
	})
	if update.Updated != 1 {
		t.Fatalf("期望已有记录被更新，实际 %+v", update)
	}

	count, _ := c.DB.Application().Count()
	if count != 2 {
		t.Errorf("期望应用数为 2，实际 %d", count)
	}
}

// TestReconcileServices 服务按 (server_id, port, protocol) 合并
func TestReconcileServices(t *testing.T) {
	c := newTestContext(t)
	web := mustCreateServer(t, "web-01")

	running := models.ServiceStatusRunning
	summary := ReconcileService.ReconcileServices([]types.ServiceCandidate{
		{ServerID: web.ID, ServiceName: "nginx", Port: 80, Protocol: "tcp", Status: &running},
	})
	if summary.Created != 1 {
		t.Fatalf("期望创建 1 个服务，实际 %+v", summary)
	}

	stopped := models.ServiceStatusStopped
	again := ReconcileService.ReconcileServices([]types.ServiceCandidate{
		{ServerID: web.ID, ServiceName: "nginx", Port: 80, Protocol: "tcp", Status: &stopped},
	})
	if again.Updated != 1 {
		t.Fatalf("期望状态变化触发更新，实际 %+v", again)
	}

	svc, err := c.DB.Service().GetByNaturalKey(web.ID, 80, "tcp")
	if err != nil || svc == nil {
		t.Fatalf("查询服务失败: %v", err)
	}
	if svc.Status != models.ServiceStatusStopped {
		t.Errorf("期望服务状态为 stopped，实际 %s", svc.Status)
	}

	// 非法端口整条拒绝
	bad := ReconcileService.ReconcileServices([]types.ServiceCandidate{
		{ServerID: web.ID, ServiceName: "ghost", Port: 70000},
	})
	if bad.Failed != 1 {
		t.Errorf("期望非法端口被拒绝，实际 %+v", bad)
	}
}

// TestRecordHistory 批次汇总落一条发现审计记录
func TestRecordHistory(t *testing.T) {
	c := newTestContext(t)

	summary := types.ReconcileSummary{Total: 3, Created: 2, Failed: 1}
	if err := ReconcileService.RecordHistory("batch-1", "192.168.1.10", models.DiscoveryTypeSSH, summary, nil); err != nil {
		t.Fatalf("写入发现记录失败: %v", err)
	}

	list, total, err := c.DB.DiscoveryHistory().List("", "", models.Page{})
	if err != nil {
		t.Fatalf("查询发现历史失败: %v", err)
	}
	if total != 1 {
		t.Fatalf("期望 1 条历史记录，实际 %d 条", total)
	}
	if list[0].Outcome != models.DiscoveryOutcomePartial {
		t.Errorf("期望结果为 partial，实际 %s", list[0].Outcome)
	}
	if list[0].CreatedCount != 2 || list[0].FailedCount != 1 {
		t.Errorf("期望计数 created=2 failed=1，实际 %+v", list[0])
	}
}

// TestSummaryOutcome 汇总结果推导
func TestSummaryOutcome(t *testing.T) {
	cases := []struct {
		summary types.ReconcileSummary
		want    string
	}{
		{types.ReconcileSummary{}, "success"},
		{types.ReconcileSummary{Total: 3, Created: 3}, "success"},
		{types.ReconcileSummary{Total: 3, Created: 2, Failed: 1}, "partial"},
		{types.ReconcileSummary{Total: 3, Failed: 3}, "failure"},
	}
	for _, item := range cases {
		if got := item.summary.Outcome(); got != item.want {
			t.Errorf("汇总 %+v 期望结果 %s，实际 %s", item.summary, item.want, got)
		}
	}
}
