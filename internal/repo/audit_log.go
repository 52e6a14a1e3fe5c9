package repo

import (
	"cmdbHub/internal/models"

	"gorm.io/gorm"
)

type (
	auditLogRepo struct {
		entryRepo
	}

	// InterAuditLogRepo 审计日志数据访问层接口
	InterAuditLogRepo interface {
		Create(log models.AuditLog) error
		List(page models.Page) ([]models.AuditLog, int64, error)
	}
)

func newAuditLogRepoInterface(db *gorm.DB, g InterGormDBCli) InterAuditLogRepo {
	return &auditLogRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

// Create 写入审计日志
func (r auditLogRepo) Create(log models.AuditLog) error {
	return r.g.Create(models.AuditLog{}, &log)
}

// List 获取审计日志列表，按时间倒序
func (r auditLogRepo) List(page models.Page) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	var count int64

	db := r.db.Model(&models.AuditLog{})
	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if page.Size > 0 {
		offset := (page.Index - 1) * page.Size
		if offset < 0 {
			offset = 0
		}
		db = db.Offset(int(offset)).Limit(int(page.Size))
	}

	err := db.Order("created_at DESC").Find(&logs).Error
	return logs, count, err
}
