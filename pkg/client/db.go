package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"cmdbHub/config"
	"cmdbHub/internal/global"
	"cmdbHub/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/zeromicro/go-zero/core/logc"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBClient 创建数据库连接并迁移表结构
// 默认使用单文件 SQLite 存储，配置了 mysql 驱动时走 MySQL
func NewDBClient(cfg config.DB) *gorm.DB {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=True&loc=Local&timeout=%s",
			cfg.User,
			cfg.Pass,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Timeout)
		dialector = mysql.Open(dsn)
	default:
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				logc.Errorf(context.Background(), "创建数据目录失败: %s", err.Error())
				return nil
			}
		}
		// busy_timeout 避免并发写入时直接报 database is locked
		dialector = sqlite.Open(fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.Path))
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		logc.Errorf(context.Background(), "failed to connect database: %s", err.Error())
		return nil
	}

	// 检查表结构是否变化，变化则进行迁移
	err = db.AutoMigrate(
		&models.Server{},
		&models.Application{},
		&models.Service{},
		&models.Dependency{},
		&models.DiscoveryHistory{},
		&models.AuditLog{},
	)
	if err != nil {
		logc.Error(context.Background(), err.Error())
		return nil
	}

	if global.Config.Server.Mode == "debug" {
		db.Debug()
	} else {
		db.Logger = logger.Default.LogMode(logger.Silent)
	}

	return db
}
