package repo

import (
	"time"

	"cmdbHub/internal/models"

	"gorm.io/gorm"
)

type (
	serverRepo struct {
		entryRepo
	}

	// InterServerRepo 服务器数据访问层接口
	InterServerRepo interface {
		Create(server *models.Server) error
		Update(server models.Server) error
		// Delete 删除服务器并级联处理其服务和依赖边，见实现注释
		Delete(id int64) error
		GetById(id int64) (models.Server, error)
		// GetByHostname 按自然键查找，未找到返回 nil 而不是错误
		GetByHostname(hostname string) (*models.Server, error)
		List(keyword, status, environment string, page models.Page) ([]models.Server, int64, error)
		// ListAll 按 ID 升序返回全量数据，导出依赖这个稳定顺序
		ListAll() ([]models.Server, error)
		Count() (int64, error)
		CountByStatus(status string) (int64, error)
		// CountGroupBy 按指定列分组计数，供首页统计使用
		CountGroupBy(column string) (map[string]int64, error)
	}
)

func newServerRepoInterface(db *gorm.DB, g InterGormDBCli) InterServerRepo {
	return &serverRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

// Create 创建服务器，hostname 唯一索引冲突时由底层返回错误
func (r serverRepo) Create(server *models.Server) error {
	server.CreatedAt = time.Now()
	server.UpdatedAt = time.Now()

	return r.g.Create(models.Server{}, server)
}

// Update 按 ID 更新服务器
func (r serverRepo) Update(server models.Server) error {
	server.UpdatedAt = time.Now()

	return r.db.Model(&models.Server{}).
		Where("id = ?", server.ID).
		Select("*").Omit("id", "created_at").
		Updates(&server).Error
}

// Delete 删除服务器
// 级联策略: 软删除其全部服务，并物理删除这些服务两个方向上的依赖边
// 整个级联在一个事务内完成
func (r serverRepo) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var serviceIds []int64
		if err := tx.Model(&models.Service{}).
			Where("server_id = ?", id).
			Pluck("id", &serviceIds).Error; err != nil {
			return err
		}

		if len(serviceIds) > 0 {
			if err := tx.Where("source_service_id IN ? OR target_service_id IN ?", serviceIds, serviceIds).
				Delete(&models.Dependency{}).Error; err != nil {
				return err
			}
			if err := tx.Where("server_id = ?", id).
				Delete(&models.Service{}).Error; err != nil {
				return err
			}
		}

		return tx.Where("id = ?", id).Delete(&models.Server{}).Error
	})
}

// GetById 按ID获取服务器
func (r serverRepo) GetById(id int64) (models.Server, error) {
	var server models.Server
	err := r.db.Model(&models.Server{}).
		Where("id = ?", id).
		First(&server).Error

	return server, err
}

// GetByHostname 按主机名获取服务器，未找到返回 nil
func (r serverRepo) GetByHostname(hostname string) (*models.Server, error) {
	var server models.Server
	err := r.db.Model(&models.Server{}).
		Where("hostname = ?", hostname).
		First(&server).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &server, nil
}

// List 获取服务器列表，支持过滤和分页
func (r serverRepo) List(keyword, status, environment string, page models.Page) ([]models.Server, int64, error) {
	var servers []models.Server
	var count int64

	db := r.db.Model(&models.Server{})
	if keyword != "" {
		db = db.Where("hostname LIKE ? OR ip_address LIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if environment != "" {
		db = db.Where("environment = ?", environment)
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

	err := db.Order("id ASC").Find(&servers).Error
	return servers, count, err
}

// ListAll 按 ID 升序返回全部服务器
func (r serverRepo) ListAll() ([]models.Server, error) {
	var servers []models.Server
	err := r.db.Model(&models.Server{}).
		Order("id ASC").
		Find(&servers).Error

	return servers, err
}

// Count 服务器总数
func (r serverRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Server{}).Count(&count).Error
	return count, err
}

// CountByStatus 按状态统计服务器数
func (r serverRepo) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Server{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// CountGroupBy 按列分组计数，列名只允许内部白名单传入
func (r serverRepo) CountGroupBy(column string) (map[string]int64, error) {
	type row struct {
		Label string
		Total int64
	}
	var rows []row
	err := r.db.Model(&models.Server{}).
		Select(column+" AS label, COUNT(*) AS total").
		Where(column + " IS NOT NULL").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, item := range rows {
		result[item.Label] = item.Total
	}
	return result, nil
}
