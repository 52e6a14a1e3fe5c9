package services

import (
	"context"
	"testing"

	"cmdbHub/internal/models"
	"cmdbHub/internal/types"
	"cmdbHub/pkg/probe"
)

// TestDiscoveryRunEmptyBatch 空目标列表直接成功
func TestDiscoveryRunEmptyBatch(t *testing.T) {
	newTestContext(t)

	resp, err := DiscoveryService.Run(context.Background(), &types.RequestDiscoveryRun{})
	if err != nil {
		t.Fatalf("空批次执行失败: %v", err)
	}
	if resp.Outcome != models.DiscoveryOutcomeSuccess {
		t.Errorf("期望空批次结果为 success，实际 %s", resp.Outcome)
	}
	if resp.BatchID == "" {
		t.Error("期望批次ID非空")
	}
}

// TestDiscoveryRunBadTargets 非法目标记为失败并留痕，不影响批次返回
func TestDiscoveryRunBadTargets(t *testing.T) {
	c := newTestContext(t)

	resp, err := DiscoveryService.Run(context.Background(), &types.RequestDiscoveryRun{
		Targets: []probe.Target{
			{Kind: "telnet", Host: "192.168.1.10"},
			{Kind: "telepathy", Host: "192.168.1.11"},
		},
	})
	if err != nil {
		t.Fatalf("执行批次失败: %v", err)
	}

	if resp.Outcome != models.DiscoveryOutcomeFailure {
		t.Errorf("期望批次结果为 failure，实际 %s", resp.Outcome)
	}
	for _, target := range resp.Targets {
		if target.Success {
			t.Errorf("期望目标 %s 失败，实际成功", target.Target)
		}
		if target.Error == "" {
			t.Errorf("期望目标 %s 带失败原因", target.Target)
		}
	}

	// 每个目标各留一条历史
	_, total, err := c.DB.DiscoveryHistory().List("", models.DiscoveryOutcomeFailure, models.Page{})
	if err != nil {
		t.Fatalf("查询发现历史失败: %v", err)
	}
	if total != 2 {
		t.Errorf("期望 2 条失败历史，实际 %d 条", total)
	}
}

// TestApplyFacts 探测结果落库为服务器和服务
func TestApplyFacts(t *testing.T) {
	c := newTestContext(t)
	d := DiscoveryService.(*discoveryService)

	facts := &probe.FactSet{
		Hostname:  strp("web-01"),
		IPAddress: strp("10.0.0.1"),
		OSType:    strp("Linux"),
		CPUCores:  intp(4),
		MemoryGB:  floatp(8),
		Services: []probe.ServiceFact{
			{Name: "nginx", Port: 80, Protocol: "tcp", Status: models.ServiceStatusRunning},
			{Name: "sshd", Port: 22, Protocol: "tcp", Status: models.ServiceStatusRunning},
		},
	}

	summary, err := d.applyFacts(probe.Target{Kind: probe.TargetKindLocal}, facts)
	if err != nil {
		t.Fatalf("落库失败: %v", err)
	}
	// 1 台服务器 + 2 个服务
	if summary.Created != 3 {
		t.Fatalf("期望创建 3 条记录，实际 %+v", summary)
	}

	server, err := c.DB.Server().GetByHostname("web-01")
	if err != nil || server == nil {
		t.Fatalf("查询服务器失败: %v", err)
	}
	if server.LastSeen == nil {
		t.Error("期望发现来源刷新 last_seen")
	}
	if server.Status != models.ServerStatusActive {
		t.Errorf("期望发现的服务器状态为 active，实际 %s", server.Status)
	}

	services, err := c.DB.Service().ListByServer(server.ID)
	if err != nil {
		t.Fatalf("查询服务失败: %v", err)
	}
	if len(services) != 2 {
		t.Errorf("期望 2 个服务，实际 %d 个", len(services))
	}

	// 二次探测结果不变时全部 unchanged
	again, err := d.applyFacts(probe.Target{Kind: probe.TargetKindLocal}, facts)
	if err != nil {
		t.Fatalf("二次落库失败: %v", err)
	}
	if again.Created != 0 || again.Updated != 0 {
		t.Errorf("期望二次落库无新建无更新，实际 %+v", again)
	}
}

// TestApplyFactsHostnameFallback 探测不到主机名时回退到目标地址
func TestApplyFactsHostnameFallback(t *testing.T) {
	c := newTestContext(t)
	d := DiscoveryService.(*discoveryService)

	facts := &probe.FactSet{OSType: strp("Linux")}
	target := probe.Target{Kind: probe.TargetKindSSH, Host: "192.168.1.20"}

	summary, err := d.applyFacts(target, facts)
	if err != nil {
		t.Fatalf("落库失败: %v", err)
	}
	if summary.Created != 1 {
		t.Fatalf("期望创建 1 台服务器，实际 %+v", summary)
	}

	server, err := c.DB.Server().GetByHostname("192.168.1.20")
	if err != nil || server == nil {
		t.Fatal("期望以目标地址作为主机名落库")
	}
	if server.IPAddress == nil || *server.IPAddress != "192.168.1.20" {
		t.Errorf("期望目标地址同时记为IP，实际 %v", server.IPAddress)
	}
}

// TestBatchOutcome 批次结果推导
func TestBatchOutcome(t *testing.T) {
	ok := types.TargetResult{Success: true}
	bad := types.TargetResult{Success: false}

	cases := []struct {
		results []types.TargetResult
		want    string
	}{
		{nil, models.DiscoveryOutcomeSuccess},
		{[]types.TargetResult{ok, ok}, models.DiscoveryOutcomeSuccess},
		{[]types.TargetResult{ok, bad}, models.DiscoveryOutcomePartial},
		{[]types.TargetResult{bad, bad}, models.DiscoveryOutcomeFailure},
	}
	for _, item := range cases {
		if got := batchOutcome(item.results); got != item.want {
			t.Errorf("期望批次结果 %s，实际 %s", item.want, got)
		}
	}
}
