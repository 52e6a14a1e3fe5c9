package services

import (
	"context"
	"path/filepath"
	"testing"

	"cmdbHub/internal/ctx"
	"cmdbHub/internal/models"
	"cmdbHub/internal/repo"
	"cmdbHub/internal/types"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestContext 建一个临时文件库的业务上下文，并装配全部服务单例
func newTestContext(t *testing.T) *ctx.Context {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cmdb_test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&models.Server{},
		&models.Application{},
		&models.Service{},
		&models.Dependency{},
		&models.DiscoveryHistory{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("建表失败: %v", err)
	}

	c := ctx.NewContext(context.Background(), repo.NewRepoEntry(db))
	NewServices(c)
	return c
}

// mustCreateServer 建一台服务器并返回落库后的模型
func mustCreateServer(t *testing.T, hostname string) models.Server {
	t.Helper()

	data, errMsg := ServerService.Create(&types.RequestServerCreate{Hostname: hostname})
	if errMsg != nil {
		t.Fatalf("创建服务器 %s 失败: %v", hostname, errMsg)
	}
	return data.(models.Server)
}

// mustCreateService 在指定服务器下建一个服务
func mustCreateService(t *testing.T, serverId int64, name string, port int) models.Service {
	t.Helper()

	data, errMsg := ServiceManageService.Create(&types.RequestServiceCreate{
		ServerID:    serverId,
		ServiceName: name,
		Port:        port,
	})
	if errMsg != nil {
		t.Fatalf("创建服务 %s:%d 失败: %v", name, port, errMsg)
	}
	return data.(models.Service)
}

func strp(s string) *string { return &s }

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }
