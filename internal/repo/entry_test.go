package repo

import (
	"errors"
	"path/filepath"
	"testing"

	"cmdbHub/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestEntry(t *testing.T) InterEntryRepo {
	t.Helper()

	path := filepath.Join(t.TempDir(), "repo_test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&models.Server{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}

	return NewRepoEntry(db)
}

// TestTxnCreate 事务内的写入必须复用外层事务，不能再次开启
func TestTxnCreate(t *testing.T) {
	entry := newTestEntry(t)

	err := entry.Txn(func(tx InterEntryRepo) error {
		return tx.Server().Create(&models.Server{Hostname: "web-01"})
	})
	if err != nil {
		t.Fatalf("事务内创建失败: %v", err)
	}

	server, err := entry.Server().GetByHostname("web-01")
	if err != nil {
		t.Fatalf("查询服务器失败: %v", err)
	}
	if server == nil {
		t.Fatal("期望事务提交后能查到 web-01，实际未落库")
	}
}

// TestTxnRollback fn 返回错误时整体回滚
func TestTxnRollback(t *testing.T) {
	entry := newTestEntry(t)

	wantErr := errors.New("中途失败")
	err := entry.Txn(func(tx InterEntryRepo) error {
		if err := tx.Server().Create(&models.Server{Hostname: "web-01"}); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("期望返回业务错误, 实际 %v", err)
	}

	count, err := entry.Server().Count()
	if err != nil {
		t.Fatalf("统计服务器数失败: %v", err)
	}
	if count != 0 {
		t.Errorf("期望回滚后无数据，实际 %d 条", count)
	}
}
