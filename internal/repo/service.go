package repo

import (
	"time"

	"cmdbHub/internal/models"

	"gorm.io/gorm"
)

type (
	serviceRepo struct {
		entryRepo
	}

	// InterServiceRepo 服务数据访问层接口
	InterServiceRepo interface {
		Create(service *models.Service) error
		Update(service models.Service) error
		// Delete 软删除服务并物理删除其两个方向上的依赖边
		Delete(id int64) error
		GetById(id int64) (models.Service, error)
		// GetByNaturalKey 按 (server_id, port, protocol) 查找，未找到返回 nil
		GetByNaturalKey(serverId int64, port int, protocol string) (*models.Service, error)
		List(serverId, applicationId int64, status string, page models.Page) ([]models.Service, int64, error)
		ListAll() ([]models.Service, error)
		ListByServer(serverId int64) ([]models.Service, error)
		Count() (int64, error)
		CountByStatus(status string) (int64, error)
	}
)

func newServiceRepoInterface(db *gorm.DB, g InterGormDBCli) InterServiceRepo {
	return &serviceRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

// Create 创建服务
func (r serviceRepo) Create(service *models.Service) error {
	service.CreatedAt = time.Now()
	service.UpdatedAt = time.Now()

	return r.g.Create(models.Service{}, service)
}

// Update 按 ID 更新服务
func (r serviceRepo) Update(service models.Service) error {
	service.UpdatedAt = time.Now()

	return r.db.Model(&models.Service{}).
		Where("id = ?", service.ID).
		Select("*").Omit("id", "created_at", "deleted_at").
		Updates(&service).Error
}

// Delete 软删除服务，同时清理引用它的依赖边
// 依赖不允许引用已删除的服务，所以边随服务一起移除
func (r serviceRepo) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("source_service_id = ? OR target_service_id = ?", id, id).
			Delete(&models.Dependency{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Service{}).Error
	})
}

// GetById 按ID获取服务
func (r serviceRepo) GetById(id int64) (models.Service, error) {
	var service models.Service
	err := r.db.Model(&models.Service{}).
		Where("id = ?", id).
		First(&service).Error

	return service, err
}

// GetByNaturalKey 按 (server_id, port, protocol) 获取服务，未找到返回 nil
func (r serviceRepo) GetByNaturalKey(serverId int64, port int, protocol string) (*models.Service, error) {
	var service models.Service
	err := r.db.Model(&models.Service{}).
		Where("server_id = ? AND port = ? AND protocol = ?", serverId, port, protocol).
		First(&service).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &service, nil
}

// List 获取服务列表，支持过滤和分页
func (r serviceRepo) List(serverId, applicationId int64, status string, page models.Page) ([]models.Service, int64, error) {
	var services []models.Service
	var count int64

	db := r.db.Model(&models.Service{})
	if serverId > 0 {
		db = db.Where("server_id = ?", serverId)
	}
	if applicationId > 0 {
		db = db.Where("application_id = ?", applicationId)
	}
	if status != "" {
		db = db.Where("status = ?", status)
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

	err := db.Order("id ASC").Find(&services).Error
	return services, count, err
}

// ListAll 按 ID 升序返回全部服务
func (r serviceRepo) ListAll() ([]models.Service, error) {
	var services []models.Service
	err := r.db.Model(&models.Service{}).
		Order("id ASC").
		Find(&services).Error

	return services, err
}

// ListByServer 获取某台服务器的全部服务
func (r serviceRepo) ListByServer(serverId int64) ([]models.Service, error) {
	var services []models.Service
	err := r.db.Model(&models.Service{}).
		Where("server_id = ?", serverId).
		Order("id ASC").
		Find(&services).Error

	return services, err
}

// Count 服务总数
func (r serviceRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Service{}).Count(&count).Error
	return count, err
}

// CountByStatus 按状态统计服务数
func (r serviceRepo) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Service{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
