package services

import (
	"sort"
	"testing"

	"cmdbHub/internal/models"
	"cmdbHub/internal/types"
	"cmdbHub/pkg/errs"
)

// graphFixture 三台机器各一个服务，返回三个服务模型
func graphFixture(t *testing.T) (models.Service, models.Service, models.Service) {
	t.Helper()

	web := mustCreateServer(t, "web-01")
	app := mustCreateServer(t, "app-01")
	db := mustCreateServer(t, "db-01")

	a := mustCreateService(t, web.ID, "nginx", 80)
	b := mustCreateService(t, app.ID, "api", 8080)
	c := mustCreateService(t, db.ID, "mysql", 3306)
	return a, b, c
}

func addEdge(t *testing.T, source, target int64) {
	t.Helper()
	if _, err := DependencyGraphService.Add(&types.RequestDependencyAdd{
		SourceServiceID: source,
		TargetServiceID: target,
	}); err != nil {
		t.Fatalf("添加依赖边 %d->%d 失败: %v", source, target, err)
	}
}

// TestDependencySelfLoop 自环必须被校验错误拒绝
func TestDependencySelfLoop(t *testing.T) {
	newTestContext(t)
	a, _, _ := graphFixture(t)

	_, err := DependencyGraphService.Add(&types.RequestDependencyAdd{
		SourceServiceID: a.ID,
		TargetServiceID: a.ID,
	})
	if err == nil {
		t.Fatal("期望自环被拒绝，实际添加成功")
	}
	if !errs.IsValidation(err) {
		t.Errorf("期望校验错误，实际为 %T: %v", err, err)
	}
}

// TestDependencyAddUnknownService 不存在的服务不能作为端点
func TestDependencyAddUnknownService(t *testing.T) {
	newTestContext(t)
	a, _, _ := graphFixture(t)

	_, err := DependencyGraphService.Add(&types.RequestDependencyAdd{
		SourceServiceID: a.ID,
		TargetServiceID: 99999,
	})
	if err == nil {
		t.Fatal("期望不存在的服务被拒绝，实际添加成功")
	}
	if !errs.IsNotFound(err) {
		t.Errorf("期望未找到错误，实际为 %T: %v", err, err)
	}
}

// TestDependencyUpsert 重复添加同一有向边不产生重复记录
func TestDependencyUpsert(t *testing.T) {
	c := newTestContext(t)
	a, b, _ := graphFixture(t)

	first, err := DependencyGraphService.Add(&types.RequestDependencyAdd{
		SourceServiceID: a.ID,
		TargetServiceID: b.ID,
	})
	if err != nil {
		t.Fatalf("添加依赖边失败: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("期望返回落库后的边ID，实际为 0")
	}

	desc := "读写库"
	second, err := DependencyGraphService.Add(&types.RequestDependencyAdd{
		SourceServiceID: a.ID,
		TargetServiceID: b.ID,
		DependencyType:  "connects_to",
		Description:     &desc,
	})
	if err != nil {
		t.Fatalf("重复添加依赖边失败: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("期望重复添加返回同一条边，实际 %d != %d", second.ID, first.ID)
	}

	count, err := c.DB.Dependency().Count()
	if err != nil {
		t.Fatalf("统计依赖边失败: %v", err)
	}
	if count != 1 {
		t.Fatalf("期望依赖边数为 1，实际为 %d", count)
	}

	edges, err := c.DB.Dependency().ListAll()
	if err != nil {
		t.Fatalf("查询依赖边失败: %v", err)
	}
	if edges[0].DependencyType != "connects_to" {
		t.Errorf("期望后写的依赖类型生效，实际为 %s", edges[0].DependencyType)
	}
}

// TestDependencyGraphViews 出入边查询方向正确
func TestDependencyGraphViews(t *testing.T) {
	newTestContext(t)
	a, b, c := graphFixture(t)

	// a -> b -> c
	addEdge(t, a.ID, b.ID)
	addEdge(t, b.ID, c.ID)

	graph, err := DependencyGraphService.Graph(b.ID)
	if err != nil {
		t.Fatalf("查询依赖视图失败: %v", err)
	}
	if len(graph.Dependencies) != 1 || graph.Dependencies[0].ID != c.ID {
		t.Errorf("期望 b 依赖 c，实际 %+v", graph.Dependencies)
	}
	if len(graph.Dependents) != 1 || graph.Dependents[0].ID != a.ID {
		t.Errorf("期望 a 依赖 b，实际 %+v", graph.Dependents)
	}

	// 无任何边的服务返回空列表而不是错误
	lonely, err := DependencyGraphService.Graph(a.ID)
	if err != nil {
		t.Fatalf("查询依赖视图失败: %v", err)
	}
	if len(lonely.Dependents) != 0 {
		t.Errorf("期望 a 没有被依赖方，实际 %d 个", len(lonely.Dependents))
	}
}

// TestDependencyRemoveAbsent 删除不存在的边是 no-op
func TestDependencyRemoveAbsent(t *testing.T) {
	newTestContext(t)
	a, b, _ := graphFixture(t)

	if err := DependencyGraphService.Remove(a.ID, b.ID); err != nil {
		t.Errorf("期望删除不存在的边静默成功，实际报错: %v", err)
	}
}

// TestDetectCycles 环检测报告环上的全部服务
func TestDetectCycles(t *testing.T) {
	newTestContext(t)
	a, b, c := graphFixture(t)

	// 无环
	addEdge(t, a.ID, b.ID)
	addEdge(t, b.ID, c.ID)

	report, err := DependencyGraphService.DetectCycles()
	if err != nil {
		t.Fatalf("环检测失败: %v", err)
	}
	if report.HasCycle || len(report.Services) != 0 {
		t.Fatalf("期望无环，实际报告 %+v", report)
	}

	// 补一条 c -> a 成环
	addEdge(t, c.ID, a.ID)

	report, err = DependencyGraphService.DetectCycles()
	if err != nil {
		t.Fatalf("环检测失败: %v", err)
	}
	if !report.HasCycle {
		t.Fatal("期望检测到环，实际报告无环")
	}

	var got []int64
	for _, svc := range report.Services {
		got = append(got, svc.ID)
	}
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })

	want := []int64{a.ID, b.ID, c.ID}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
	if len(got) != len(want) {
		t.Fatalf("期望环上有 %d 个服务，实际 %d 个", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("期望环成员 %v，实际 %v", want, got)
			break
		}
	}
}

// TestDetectCyclesIgnoreBranch 环外的分支节点不计入报告
func TestDetectCyclesIgnoreBranch(t *testing.T) {
	newTestContext(t)
	a, b, c := graphFixture(t)

	// a <-> b 成环，c 只是挂在 b 上的分支
	addEdge(t, a.ID, b.ID)
	addEdge(t, b.ID, a.ID)
	addEdge(t, b.ID, c.ID)

	report, err := DependencyGraphService.DetectCycles()
	if err != nil {
		t.Fatalf("环检测失败: %v", err)
	}
	if len(report.Services) != 2 {
		t.Fatalf("期望环上只有 2 个服务，实际 %d 个", len(report.Services))
	}
	for _, svc := range report.Services {
		if svc.ID == c.ID {
			t.Errorf("分支服务 %d 不应出现在环报告里", c.ID)
		}
	}
}
