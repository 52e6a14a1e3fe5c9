package repo

import (
	"time"

	"cmdbHub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	dependencyRepo struct {
		entryRepo
	}

	// InterDependencyRepo 服务依赖数据访问层接口
	InterDependencyRepo interface {
		// Upsert 按 (source, target) 有序对插入或更新边，绝不产生重复边
		Upsert(dep models.Dependency) error
		// Delete 删除边，边不存在时不报错
		Delete(sourceId, targetId int64) error
		// GetByPair 按有序对查找边，未找到返回 nil 而不是错误
		GetByPair(sourceId, targetId int64) (*models.Dependency, error)
		// ListDependencies 返回 serviceId 依赖的全部存活服务（出边的 target）
		ListDependencies(serviceId int64) ([]models.Service, error)
		// ListDependents 返回依赖 serviceId 的全部存活服务（入边的 source）
		ListDependents(serviceId int64) ([]models.Service, error)
		// ListAllEdges 返回两端都指向存活服务的全部边，供环检测遍历
		ListAllEdges() ([]models.Dependency, error)
		ListAll() ([]models.Dependency, error)
		Count() (int64, error)
	}
)

func newDependencyRepoInterface(db *gorm.DB, g InterGormDBCli) InterDependencyRepo {
	return &dependencyRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

// Upsert 插入或更新依赖边
// 同一有序对并发写入时由唯一索引串行化，后写的 type/description 生效
func (r dependencyRepo) Upsert(dep models.Dependency) error {
	dep.CreatedAt = time.Now()

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "source_service_id"},
			{Name: "target_service_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"dependency_type", "description"}),
	}).Create(&dep).Error
}

// GetByPair 按有序对获取依赖边，未找到返回 nil
func (r dependencyRepo) GetByPair(sourceId, targetId int64) (*models.Dependency, error) {
	var dep models.Dependency
	err := r.db.Model(&models.Dependency{}).
		Where("source_service_id = ? AND target_service_id = ?", sourceId, targetId).
		First(&dep).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &dep, nil
}

// Delete 删除依赖边，不存在时视为成功
func (r dependencyRepo) Delete(sourceId, targetId int64) error {
	return r.db.Where("source_service_id = ? AND target_service_id = ?", sourceId, targetId).
		Delete(&models.Dependency{}).Error
}

// ListDependencies serviceId 需要哪些服务才能正常工作
// 排除已软删除的服务
func (r dependencyRepo) ListDependencies(serviceId int64) ([]models.Service, error) {
	services := make([]models.Service, 0)
	err := r.db.Model(&models.Service{}).
		Joins("JOIN dependencies d ON d.target_service_id = services.id").
		Where("d.source_service_id = ?", serviceId).
		Order("services.id ASC").
		Find(&services).Error

	return services, err
}

// ListDependents serviceId 挂了会影响哪些服务（影响面分析）
// 排除已软删除的服务
func (r dependencyRepo) ListDependents(serviceId int64) ([]models.Service, error) {
	services := make([]models.Service, 0)
	err := r.db.Model(&models.Service{}).
		Joins("JOIN dependencies d ON d.source_service_id = services.id").
		Where("d.target_service_id = ?", serviceId).
		Order("services.id ASC").
		Find(&services).Error

	return services, err
}

// ListAllEdges 返回两端都是存活服务的全部依赖边
func (r dependencyRepo) ListAllEdges() ([]models.Dependency, error) {
	edges := make([]models.Dependency, 0)
	err := r.db.Model(&models.Dependency{}).
		Joins("JOIN services s1 ON s1.id = dependencies.source_service_id AND s1.deleted_at IS NULL").
		Joins("JOIN services s2 ON s2.id = dependencies.target_service_id AND s2.deleted_at IS NULL").
		Order("dependencies.id ASC").
		Find(&edges).Error

	return edges, err
}

// ListAll 按 ID 升序返回全部依赖边
func (r dependencyRepo) ListAll() ([]models.Dependency, error) {
	edges := make([]models.Dependency, 0)
	err := r.db.Model(&models.Dependency{}).
		Order("id ASC").
		Find(&edges).Error

	return edges, err
}

// Count 依赖边总数
func (r dependencyRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Dependency{}).Count(&count).Error
	return count, err
}
