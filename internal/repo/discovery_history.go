package repo

import (
	"time"

	"cmdbHub/internal/models"

	"gorm.io/gorm"
)

type (
	discoveryHistoryRepo struct {
		entryRepo
	}

	// InterDiscoveryHistoryRepo 发现审计记录数据访问层接口
	// 审计记录只追加，仅保留按时间的清理入口
	InterDiscoveryHistoryRepo interface {
		Create(history *models.DiscoveryHistory) error
		List(discoveryType, outcome string, page models.Page) ([]models.DiscoveryHistory, int64, error)
		// DeleteBefore 清理指定时间之前的历史记录，定时任务调用
		DeleteBefore(t time.Time) error
	}
)

func newDiscoveryHistoryRepoInterface(db *gorm.DB, g InterGormDBCli) InterDiscoveryHistoryRepo {
	return &discoveryHistoryRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

// Create 追加一条发现审计记录
func (r discoveryHistoryRepo) Create(history *models.DiscoveryHistory) error {
	if history.DiscoveredAt.IsZero() {
		history.DiscoveredAt = time.Now()
	}

	return r.g.Create(models.DiscoveryHistory{}, history)
}

// List 获取发现历史，按时间倒序
func (r discoveryHistoryRepo) List(discoveryType, outcome string, page models.Page) ([]models.DiscoveryHistory, int64, error) {
	var histories []models.DiscoveryHistory
	var count int64

	db := r.db.Model(&models.DiscoveryHistory{})
	if discoveryType != "" {
		db = db.Where("discovery_type = ?", discoveryType)
	}
	if outcome != "" {
		db = db.Where("outcome = ?", outcome)
	}

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

	err := db.Order("id DESC").Find(&histories).Error
	return histories, count, err
}

// DeleteBefore 清理历史记录
func (r discoveryHistoryRepo) DeleteBefore(t time.Time) error {
	return r.db.Where("discovered_at < ?", t).
		Delete(&models.DiscoveryHistory{}).Error
}
