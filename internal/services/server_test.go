package services

import (
	"testing"

	"cmdbHub/internal/types"
)

// TestServerCreateDuplicateHostname 重复主机名只允许存在一条记录
func TestServerCreateDuplicateHostname(t *testing.T) {
	c := newTestContext(t)

	mustCreateServer(t, "web-01")

	_, errMsg := ServerService.Create(&types.RequestServerCreate{Hostname: "web-01"})
	if errMsg == nil {
		t.Fatal("期望重复主机名被拒绝，实际创建成功")
	}

	count, err := c.DB.Server().Count()
	if err != nil {
		t.Fatalf("统计服务器数失败: %v", err)
	}
	if count != 1 {
		t.Errorf("期望服务器数为 1，实际为 %d", count)
	}
}

// TestServerValidation 非法字段返回校验错误
func TestServerValidation(t *testing.T) {
	newTestContext(t)

	cases := []types.RequestServerCreate{
		{Hostname: ""},
		{Hostname: "web-01", IPAddress: strp("不是IP")},
		{Hostname: "web-01", Status: "破产"},
	}
	for _, r := range cases {
		r := r
		if _, errMsg := ServerService.Create(&r); errMsg == nil {
			t.Errorf("期望非法请求 %+v 被拒绝，实际创建成功", r)
		}
	}
}

// TestServerDeleteCascade 删除服务器级联清理其服务和依赖边
func TestServerDeleteCascade(t *testing.T) {
	c := newTestContext(t)

	web := mustCreateServer(t, "web-01")
	db := mustCreateServer(t, "db-01")
	webSvc := mustCreateService(t, web.ID, "nginx", 80)
	dbSvc := mustCreateService(t, db.ID, "mysql", 3306)

	if _, err := DependencyGraphService.Add(&types.RequestDependencyAdd{
		SourceServiceID: webSvc.ID,
		TargetServiceID: dbSvc.ID,
	}); err != nil {
		t.Fatalf("添加依赖边失败: %v", err)
	}

	if _, errMsg := ServerService.Delete(db.ID); errMsg != nil {
		t.Fatalf("删除服务器失败: %v", errMsg)
	}

	// 服务已软删除
	services, err := c.DB.Service().ListByServer(db.ID)
	if err != nil {
		t.Fatalf("查询服务失败: %v", err)
	}
	if len(services) != 0 {
		t.Errorf("期望服务器的服务已被软删除，实际还有 %d 个", len(services))
	}

	// 依赖边已物理删除
	depCount, err := c.DB.Dependency().Count()
	if err != nil {
		t.Fatalf("统计依赖边失败: %v", err)
	}
	if depCount != 0 {
		t.Errorf("期望依赖边已被级联删除，实际还有 %d 条", depCount)
	}

	// 存活服务不受影响
	remain, err := c.DB.Service().ListByServer(web.ID)
	if err != nil {
		t.Fatalf("查询服务失败: %v", err)
	}
	if len(remain) != 1 {
		t.Errorf("期望另一台服务器的服务不受影响，实际数量 %d", len(remain))
	}
}

// TestServerUpdateRenameConflict 改名不允许撞现有主机名
func TestServerUpdateRenameConflict(t *testing.T) {
	newTestContext(t)

	mustCreateServer(t, "web-01")
	second := mustCreateServer(t, "web-02")

	_, errMsg := ServerService.Update(&types.RequestServerUpdate{
		ID:                  second.ID,
		RequestServerCreate: types.RequestServerCreate{Hostname: "web-01"},
	})
	if errMsg == nil {
		t.Fatal("期望改名冲突被拒绝，实际更新成功")
	}
}
