package services

import (
	"bytes"
	"strings"
	"testing"

	"cmdbHub/internal/models"
	"cmdbHub/internal/types"
)

// TestImportServersRejectsBadRows 非法行只拒绝该行，其余照常导入
func TestImportServersRejectsBadRows(t *testing.T) {
	c := newTestContext(t)

	csvData := strings.Join([]string{
		"hostname,ip_address,environment,status",
		"web-01,10.0.0.1,prod,active",
		"web-02,10.0.0.2,prod,active",
		"web-03,,staging,",
		",10.0.0.4,prod,active",
		"db-01,10.0.0.5,prod,retired",
		"cache-01,不是IP,prod,active",
	}, "\n")

	summary, err := TransferService.ImportServers(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("导入失败: %v", err)
	}

	if summary.Total != 6 {
		t.Errorf("期望总行数 6，实际 %d", summary.Total)
	}
	if summary.Accepted != 4 || summary.Rejected != 2 {
		t.Fatalf("期望接受 4 拒绝 2，实际 %+v", summary)
	}
	if summary.Reconcile.Created != 4 {
		t.Errorf("期望落库 4 台，实际 %+v", summary.Reconcile)
	}

	count, _ := c.DB.Server().Count()
	if count != 4 {
		t.Errorf("期望服务器数为 4，实际 %d", count)
	}

	// 导入批次同样留痕
	_, total, err := c.DB.DiscoveryHistory().List("csv_import", "", models.Page{})
	if err != nil {
		t.Fatalf("查询发现历史失败: %v", err)
	}
	if total != 1 {
		t.Errorf("期望导入留 1 条历史记录，实际 %d 条", total)
	}
}

// TestImportServersMissingHeader 缺少 hostname 列整体拒绝
func TestImportServersMissingHeader(t *testing.T) {
	newTestContext(t)

	_, err := TransferService.ImportServers(strings.NewReader("ip_address\n10.0.0.1\n"))
	if err == nil {
		t.Fatal("期望缺少必需列被拒绝，实际导入成功")
	}
}

// TestExportImportRoundTrip 导出再导入不应产生任何变更
func TestExportImportRoundTrip(t *testing.T) {
	newTestContext(t)

	ReconcileService.ReconcileServers([]types.ServerCandidate{
		{Hostname: "web-01", IPAddress: strp("10.0.0.1"), CPUCores: intp(8), MemoryGB: floatp(15.5)},
		{Hostname: "db-01", OSType: strp("Linux"), DiskGB: floatp(512)},
	})

	exported, err := TransferService.ExportServers()
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}

	summary, err := TransferService.ImportServers(bytes.NewReader(exported))
	if err != nil {
		t.Fatalf("回导失败: %v", err)
	}
	if summary.Rejected != 0 {
		t.Fatalf("期望回导无拒绝行，实际 %+v", summary)
	}
	if summary.Reconcile.Created != 0 || summary.Reconcile.Updated != 0 {
		t.Errorf("期望回导全部 unchanged，实际 %+v", summary.Reconcile)
	}
	if summary.Reconcile.Unchanged != 2 {
		t.Errorf("期望 2 行 unchanged，实际 %+v", summary.Reconcile)
	}
}

// TestImportApplications 应用导入按 (name, version) 合并
func TestImportApplications(t *testing.T) {
	c := newTestContext(t)

	csvData := strings.Join([]string{
		"name,version,language,criticality",
		"orders,1.0,Go,High",
		"orders,2.0,Go,",
		",1.0,Go,High",
		"billing,1.0,Java,没有这个等级",
	}, "\n")

	summary, err := TransferService.ImportApplications(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("导入失败: %v", err)
	}
	if summary.Accepted != 2 || summary.Rejected != 2 {
		t.Fatalf("期望接受 2 拒绝 2，实际 %+v", summary)
	}

	count, _ := c.DB.Application().Count()
	if count != 2 {
		t.Errorf("期望应用数为 2，实际 %d", count)
	}
}

// TestExportDependenciesColumns 依赖边导出带固定表头
func TestExportDependenciesColumns(t *testing.T) {
	newTestContext(t)

	data, err := TransferService.ExportDependencies()
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}

	head := strings.Split(strings.TrimSpace(string(data)), "\n")[0]
	if head != "source_service_id,target_service_id,dependency_type,description" {
		t.Errorf("依赖边表头不符合约定: %s", head)
	}
}
