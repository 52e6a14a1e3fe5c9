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
	serviceManageService struct {
		ctx *ctx.Context
	}

	// InterServiceManageService 服务管理服务接口
	InterServiceManageService interface {
		Create(req interface{}) (interface{}, interface{})
		Update(req interface{}) (interface{}, interface{})
		Delete(id int64) (interface{}, interface{})
		Get(id int64) (interface{}, interface{})
		List(req interface{}) (interface{}, interface{})
	}
)

func newInterServiceManageService(ctx *ctx.Context) InterServiceManageService {
	return &serviceManageService{
		ctx: ctx,
	}
}

// validateService 校验服务字段
func (s *serviceManageService) validateService(r *types.RequestServiceCreate) error {
	var fields []string
	if r.ServiceName == "" {
		fields = append(fields, "serviceName")
	}
	if !tools.IsValidPort(r.Port) {
		fields = append(fields, "port")
	}
	if r.Protocol != "" && r.Protocol != "tcp" && r.Protocol != "udp" {
		fields = append(fields, "protocol")
	}
	if !tools.InEnum(r.Status, models.ServiceStatusList) {
		fields = append(fields, "status")
	}
	if len(fields) > 0 {
		return errs.NewValidation("服务字段校验失败", fields...)
	}

	// 归属的服务器必须存在
	if _, err := s.ctx.DB.Server().GetById(r.ServerID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.NewNotFound("服务器", fmt.Sprintf("%d", r.ServerID))
		}
		return err
	}
	// 关联应用可选，给了就必须存在
	if r.ApplicationID != nil {
		if _, err := s.ctx.DB.Application().GetById(*r.ApplicationID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return errs.NewNotFound("应用", fmt.Sprintf("%d", *r.ApplicationID))
			}
			return err
		}
	}

	return nil
}

// Create 创建服务，(server, port, protocol) 重复时返回校验错误
func (s *serviceManageService) Create(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestServiceCreate)

	if err := s.validateService(r); err != nil {
		return nil, err.Error()
	}

	protocol := r.Protocol
	if protocol == "" {
		protocol = "tcp"
	}
	status := r.Status
	if status == "" {
		status = models.ServiceStatusUnknown
	}

	existing, err := s.ctx.DB.Service().GetByNaturalKey(r.ServerID, r.Port, protocol)
	if err != nil {
		return nil, err.Error()
	}
	if existing != nil {
		return nil, errs.NewValidation("同服务器同端口同协议的服务已存在", "serverId", "port", "protocol").Error()
	}

	service := models.Service{
		ServerID:      r.ServerID,
		ApplicationID: r.ApplicationID,
		ServiceName:   r.ServiceName,
		Port:          r.Port,
		Protocol:      protocol,
		Status:        status,
		ProcessName:   r.ProcessName,
		StartCommand:  r.StartCommand,
		ConfigFile:    r.ConfigFile,
		LogFile:       r.LogFile,
	}
	if err := s.ctx.DB.Service().Create(&service); err != nil {
		return nil, fmt.Sprintf("创建服务失败: %s", err)
	}

	return service, nil
}

// Update 更新服务
func (s *serviceManageService) Update(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestServiceUpdate)

	current, err := s.ctx.DB.Service().GetById(r.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NewNotFound("服务", fmt.Sprintf("%d", r.ID)).Error()
		}
		return nil, err.Error()
	}

	if err := s.validateService(&r.RequestServiceCreate); err != nil {
		return nil, err.Error()
	}

	protocol := r.Protocol
	if protocol == "" {
		protocol = current.Protocol
	}
	status := r.Status
	if status == "" {
		status = current.Status
	}

	// 自然键变化时检查冲突
	if r.ServerID != current.ServerID || r.Port != current.Port || protocol != current.Protocol {
		other, err := s.ctx.DB.Service().GetByNaturalKey(r.ServerID, r.Port, protocol)
		if err != nil {
			return nil, err.Error()
		}
		if other != nil && other.ID != r.ID {
			return nil, errs.NewValidation("同服务器同端口同协议的服务已存在", "serverId", "port", "protocol").Error()
		}
	}

	service := models.Service{
		ID:            r.ID,
		ServerID:      r.ServerID,
		ApplicationID: r.ApplicationID,
		ServiceName:   r.ServiceName,
		Port:          r.Port,
		Protocol:      protocol,
		Status:        status,
		ProcessName:   r.ProcessName,
		StartCommand:  r.StartCommand,
		ConfigFile:    r.ConfigFile,
		LogFile:       r.LogFile,
	}
	if err := s.ctx.DB.Service().Update(service); err != nil {
		return nil, fmt.Sprintf("更新服务失败: %s", err)
	}

	return service, nil
}

// Delete 删除服务，相关依赖边一并移除
func (s *serviceManageService) Delete(id int64) (interface{}, interface{}) {
	if _, err := s.ctx.DB.Service().GetById(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NewNotFound("服务", fmt.Sprintf("%d", id)).Error()
		}
		return nil, err.Error()
	}

	if err := s.ctx.DB.Service().Delete(id); err != nil {
		return nil, fmt.Sprintf("删除服务失败: %s", err)
	}

	return nil, nil
}

// Get 服务详情
func (s *serviceManageService) Get(id int64) (interface{}, interface{}) {
	service, err := s.ctx.DB.Service().GetById(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NewNotFound("服务", fmt.Sprintf("%d", id)).Error()
		}
		return nil, err.Error()
	}

	return service, nil
}

// List 服务列表
func (s *serviceManageService) List(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestServiceQuery)

	list, total, err := s.ctx.DB.Service().List(r.ServerID, r.ApplicationID, r.Status, r.Page)
	if err != nil {
		return nil, err.Error()
	}

	return types.ResponseServiceList{
		List:  list,
		Total: total,
	}, nil
}
