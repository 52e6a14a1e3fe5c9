package services

import (
	"cmdbHub/internal/ctx"
	"cmdbHub/internal/models"
	"cmdbHub/internal/types"
)

type (
	auditLogService struct {
		ctx *ctx.Context
	}

	// InterAuditLogService 审计日志服务接口
	InterAuditLogService interface {
		List(req interface{}) (interface{}, interface{})
	}

	// ResponseAuditLogList 审计日志列表响应
	ResponseAuditLogList struct {
		List  []models.AuditLog `json:"list"`
		Total int64             `json:"total"`
	}
)

func newInterAuditLogService(ctx *ctx.Context) InterAuditLogService {
	return &auditLogService{
		ctx: ctx,
	}
}

// List 审计日志列表，按时间倒序
func (a *auditLogService) List(req interface{}) (interface{}, interface{}) {
	r := req.(*types.RequestAuditLogQuery)

	list, total, err := a.ctx.DB.AuditLog().List(models.Page{Index: r.Index, Size: r.Size})
	if err != nil {
		return nil, err.Error()
	}

	return ResponseAuditLogList{
		List:  list,
		Total: total,
	}, nil
}
