package services

import (
	"fmt"

	"cmdbHub/internal/ctx"
	"cmdbHub/internal/models"
	"cmdbHub/internal/types"
	"cmdbHub/pkg/errs"
	"cmdbHub/pkg/tools"

	"github.com/zeromicro/go-zero/core/logc"
	"gorm.io/gorm"
)

type (
	serverService struct {
		ctx *ctx.Context
	}

	// InterServerService 服务器管理服务接口
	InterServerService interface {
		Create(req interface{}) (interface{}, interface{})
		Update(req interface{}) (interface{}, interface{})
		Delete(id int64) (interface{}, interface{})
		Get(id int64) (interface{}, interface{})
		List(req interface{}) (interface{}, interface{})
	}
)

func newInterServerService(ctx *ctx.Context) InterServerService {
	return &serverService{
		ctx: ctx,
	}
}

// validateServer 校验服务器字段，返回 ValidationError
func validateServer(hostname string, ipAddress *string, status string) error {
	var fields []string
	if !tools.IsValidHostname(hostname) {
		fields = append(fields, "hostname")
	}
	if ipAddress != nil && *ipAddress != "" && !tools.IsValidIP(*ipAddress) {
		fields = append(fields, "ipAddress")
	}
	if !tools.InEnum(status, models.ServerStatusList) {
		fields = append(fields, "status")
	}
	if len(fields) > 0 {
		return errs.NewValidation("服务器字段校验失败", fields...)
	}
	return nil
}

// Create 创建服务器，hostname 重复时返回校验错误
func (s *serverService) Create(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestServerCreate)

	if err := validateServer(r.Hostname, r.IPAddress, r.Status); err != nil {
		return nil, err.Error()
	}

	existing, err := s.ctx.DB.Server().GetByHostname(r.Hostname)
	if err != nil {
		return nil, err.Error()
	}
	if existing != nil {
		return nil, errs.NewValidation("主机名已存在", "hostname").Error()
	}

	status := r.Status
	if status == "" {
		status = models.ServerStatusActive
	}

	server := models.Server{
		Hostname:    r.Hostname,
		IPAddress:   r.IPAddress,
		OSType:      r.OSType,
		OSVersion:   r.OSVersion,
		CPUCores:    r.CPUCores,
		MemoryGB:    r.MemoryGB,
		DiskGB:      r.DiskGB,
		Environment: r.Environment,
		Status:      status,
		Location:    r.Location,
		Owner:       r.Owner,
		Notes:       r.Notes,
	}
	if err := s.ctx.DB.Server().Create(&server); err != nil {
		return nil, fmt.Sprintf("创建服务器失败: %s", err)
	}

	return server, nil
}

// Update 更新服务器
func (s *serverService) Update(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestServerUpdate)

	if err := validateServer(r.Hostname, r.IPAddress, r.Status); err != nil {
		return nil, err.Error()
	}

	current, err := s.ctx.DB.Server().GetById(r.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NewNotFound("服务器", fmt.Sprintf("%d", r.ID)).Error()
		}
		return nil, err.Error()
	}

	// 改名时确保新主机名不与其他记录冲突
	if r.Hostname != current.Hostname {
		other, err := s.ctx.DB.Server().GetByHostname(r.Hostname)
		if err != nil {
			return nil, err.Error()
		}
		if other != nil && other.ID != r.ID {
			return nil, errs.NewValidation("主机名已存在", "hostname").Error()
		}
	}

	status := r.Status
	if status == "" {
		status = current.Status
	}

	server := models.Server{
		ID:          r.ID,
		Hostname:    r.Hostname,
		IPAddress:   r.IPAddress,
		OSType:      r.OSType,
		OSVersion:   r.OSVersion,
		CPUCores:    r.CPUCores,
		MemoryGB:    r.MemoryGB,
		DiskGB:      r.DiskGB,
		Environment: r.Environment,
		Status:      status,
		Location:    r.Location,
		Owner:       r.Owner,
		Notes:       r.Notes,
		LastSeen:    current.LastSeen,
	}
	if err := s.ctx.DB.Server().Update(server); err != nil {
		return nil, fmt.Sprintf("更新服务器失败: %s", err)
	}

	return server, nil
}

// Delete 删除服务器
// 级联策略: 软删除其全部服务并移除这些服务相关的依赖边
func (s *serverService) Delete(id int64) (interface{}, interface{}) {
	if _, err := s.ctx.DB.Server().GetById(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NewNotFound("服务器", fmt.Sprintf("%d", id)).Error()
		}
		return nil, err.Error()
	}

	if err := s.ctx.DB.Server().Delete(id); err != nil {
		return nil, fmt.Sprintf("删除服务器失败: %s", err)
	}

	logc.Infof(s.ctx.Ctx, "删除服务器 %d, 其服务与依赖边已级联清理", id)
	return nil, nil
}

// Get 服务器详情，附带其服务清单
func (s *serverService) Get(id int64) (interface{}, interface{}) {
	server, err := s.ctx.DB.Server().GetById(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NewNotFound("服务器", fmt.Sprintf("%d", id)).Error()
		}
		return nil, err.Error()
	}

	svcList, err := s.ctx.DB.Service().ListByServer(id)
	if err != nil {
		return nil, err.Error()
	}

	return types.ResponseServerDetail{
		Server:   server,
		Services: svcList,
	}, nil
}

// List 服务器列表
func (s *serverService) List(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestServerQuery)

	list, total, err := s.ctx.DB.Server().List(r.Keyword, r.Status, r.Environment, r.Page)
	if err != nil {
		return nil, err.Error()
	}

	return types.ResponseServerList{
		List:  list,
		Total: total,
	}, nil
}
