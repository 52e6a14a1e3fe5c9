package services

import (
	"fmt"

	"cmdbHub/internal/ctx"
	"cmdbHub/internal/models"
	"cmdbHub/internal/types"
	"cmdbHub/pkg/errs"
	"cmdbHub/pkg/tools"

	"gorm.io/gorm"
)

type (
	applicationService struct {
		ctx *ctx.Context
	}

	// InterApplicationService 应用管理服务接口
	InterApplicationService interface {
		Create(req interface{}) (interface{}, interface{})
		Update(req interface{}) (interface{}, interface{})
		Delete(id int64) (interface{}, interface{})
		Get(id int64) (interface{}, interface{})
		List(req interface{}) (interface{}, interface{})
	}
)

func newInterApplicationService(ctx *ctx.Context) InterApplicationService {
	return &applicationService{
		ctx: ctx,
	}
}

// Create 创建应用，(name, version) 重复时返回校验错误
func (a *applicationService) Create(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestApplicationCreate)

	if !tools.InEnum(r.Criticality, models.CriticalityList) {
		return nil, errs.NewValidation("无效的重要性等级", "criticality").Error()
	}

	existing, err := a.ctx.DB.Application().GetByNaturalKey(r.Name, r.Version)
	if err != nil {
		return nil, err.Error()
	}
	if existing != nil {
		return nil, errs.NewValidation("应用已存在", "name", "version").Error()
	}

	criticality := r.Criticality
	if criticality == "" {
		criticality = models.CriticalityMedium
	}

	app := models.Application{
		Name:             r.Name,
		Version:          r.Version,
		Type:             r.Type,
		Language:         r.Language,
		RepositoryURL:    r.RepositoryURL,
		DocumentationURL: r.DocumentationURL,
		Owner:            r.Owner,
		Criticality:      criticality,
		Notes:            r.Notes,
	}
	if err := a.ctx.DB.Application().Create(&app); err != nil {
		return nil, fmt.Sprintf("创建应用失败: %s", err)
	}

	return app, nil
}

// Update 更新应用
func (a *applicationService) Update(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestApplicationUpdate)

	if !tools.InEnum(r.Criticality, models.CriticalityList) {
		return nil, errs.NewValidation("无效的重要性等级", "criticality").Error()
	}

	current, err := a.ctx.DB.Application().GetById(r.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NewNotFound("应用", fmt.Sprintf("%d", r.ID)).Error()
		}
		return nil, err.Error()
	}

	if r.Name != current.Name || r.Version != current.Version {
		other, err := a.ctx.DB.Application().GetByNaturalKey(r.Name, r.Version)
		if err != nil {
			return nil, err.Error()
		}
		if other != nil && other.ID != r.ID {
			return nil, errs.NewValidation("应用已存在", "name", "version").Error()
		}
	}

	criticality := r.Criticality
	if criticality == "" {
		criticality = current.Criticality
	}

	app := models.Application{
		ID:               r.ID,
		Name:             r.Name,
		Version:          r.Version,
		Type:             r.Type,
		Language:         r.Language,
		RepositoryURL:    r.RepositoryURL,
		DocumentationURL: r.DocumentationURL,
		Owner:            r.Owner,
		Criticality:      criticality,
		Notes:            r.Notes,
	}
	if err := a.ctx.DB.Application().Update(app); err != nil {
		return nil, fmt.Sprintf("更新应用失败: %s", err)
	}

	return app, nil
}

// Delete 删除应用，引用它的服务解除关联
func (a *applicationService) Delete(id int64) (interface{}, interface{}) {
	if _, err := a.ctx.DB.Application().GetById(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NewNotFound("应用", fmt.Sprintf("%d", id)).Error()
		}
		return nil, err.Error()
	}

	if err := a.ctx.DB.Application().Delete(id); err != nil {
		return nil, fmt.Sprintf("删除应用失败: %s", err)
	}

	return nil, nil
}

// Get 应用详情
func (a *applicationService) Get(id int64) (interface{}, interface{}) {
	app, err := a.ctx.DB.Application().GetById(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NewNotFound("应用", fmt.Sprintf("%d", id)).Error()
		}
		return nil, err.Error()
	}

	return app, nil
}

// List 应用列表
func (a *applicationService) List(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestApplicationQuery)

	list, total, err := a.ctx.DB.Application().List(r.Keyword, r.Criticality, r.Page)
	if err != nil {
		return nil, err.Error()
	}

	return types.ResponseApplicationList{
		List:  list,
		Total: total,
	}, nil
}
