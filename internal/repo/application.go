package repo

import (
	"time"

	"cmdbHub/internal/models"

	"gorm.io/gorm"
)

type (
	applicationRepo struct {
		entryRepo
	}

	// InterApplicationRepo 应用数据访问层接口
	InterApplicationRepo interface {
		Create(app *models.Application) error
		Update(app models.Application) error
		Delete(id int64) error
		GetById(id int64) (models.Application, error)
		// GetByNaturalKey 按 (name, version) 查找，未找到返回 nil
		GetByNaturalKey(name, version string) (*models.Application, error)
		List(keyword, criticality string, page models.Page) ([]models.Application, int64, error)
		ListAll() ([]models.Application, error)
		Count() (int64, error)
		CountByCriticality() (map[string]int64, error)
	}
)

func newApplicationRepoInterface(db *gorm.DB, g InterGormDBCli) InterApplicationRepo {
	return &applicationRepo{
		entryRepo{
			g:  g,
			db: db,
		},
	}
}

// Create 创建应用
func (r applicationRepo) Create(app *models.Application) error {
	app.CreatedAt = time.Now()
	app.UpdatedAt = time.Now()

	return r.g.Create(models.Application{}, app)
}

// Update 按 ID 更新应用
func (r applicationRepo) Update(app models.Application) error {
	app.UpdatedAt = time.Now()

	return r.db.Model(&models.Application{}).
		Where("id = ?", app.ID).
		Select("*").Omit("id", "created_at").
		Updates(&app).Error
}

// Delete 删除应用，引用它的服务把 application_id 置空
func (r applicationRepo) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Service{}).
			Where("application_id = ?", id).
			Update("application_id", nil).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Application{}).Error
	})
}

// GetById 按ID获取应用
func (r applicationRepo) GetById(id int64) (models.Application, error) {
	var app models.Application
	err := r.db.Model(&models.Application{}).
		Where("id = ?", id).
		First(&app).Error

	return app, err
}

// GetByNaturalKey 按 (name, version) 获取应用，未找到返回 nil
func (r applicationRepo) GetByNaturalKey(name, version string) (*models.Application, error) {
	var app models.Application
	err := r.db.Model(&models.Application{}).
		Where("name = ? AND version = ?", name, version).
		First(&app).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &app, nil
}

// List 获取应用列表，支持过滤和分页
func (r applicationRepo) List(keyword, criticality string, page models.Page) ([]models.Application, int64, error) {
	var apps []models.Application
	var count int64

	db := r.db.Model(&models.Application{})
	if keyword != "" {
		db = db.Where("name LIKE ?", "%"+keyword+"%")
	}
	if criticality != "" {
		db = db.Where("criticality = ?", criticality)
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

	err := db.Order("id ASC").Find(&apps).Error
	return apps, count, err
}

// ListAll 按 ID 升序返回全部应用
func (r applicationRepo) ListAll() ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Model(&models.Application{}).
		Order("id ASC").
		Find(&apps).Error

	return apps, err
}

// Count 应用总数
func (r applicationRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Application{}).Count(&count).Error
	return count, err
}

// CountByCriticality 按重要性分组计数
func (r applicationRepo) CountByCriticality() (map[string]int64, error) {
	type row struct {
		Label string
		Total int64
	}
	var rows []row
	err := r.db.Model(&models.Application{}).
		Select("criticality AS label, COUNT(*) AS total").
		Group("criticality").
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
