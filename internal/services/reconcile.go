package services

import (
	"fmt"
	"time"

	"cmdbHub/internal/ctx"
	"cmdbHub/internal/models"
	"cmdbHub/internal/repo"
	"cmdbHub/internal/types"
	"cmdbHub/pkg/tools"

	"github.com/zeromicro/go-zero/core/logc"
)

type (
	reconcileService struct {
		ctx *ctx.Context
	}

	// InterReconcileService 合并引擎接口
	// 发现探测和 CSV 导入的落库都走这里：按自然键查找，
	// 不存在则创建，存在则只覆盖候选记录中已知(非nil)且确有变化的字段。
	// 同一候选重复提交任意次，结果与提交一次相同。
	InterReconcileService interface {
		ReconcileServers(candidates []types.ServerCandidate) types.ReconcileSummary
		ReconcileApplications(candidates []types.ApplicationCandidate) types.ReconcileSummary
		ReconcileServices(candidates []types.ServiceCandidate) types.ReconcileSummary
		// RecordHistory 为一个批次落一条发现审计记录
		RecordHistory(batchId, target, discoveryType string, summary types.ReconcileSummary, detail *string) error
	}
)

func newInterReconcileService(ctx *ctx.Context) InterReconcileService {
	return &reconcileService{
		ctx: ctx,
	}
}

// ReconcileServers 按 hostname 合并服务器候选记录
// 单条失败不中断批次，逐条累计进汇总
func (r *reconcileService) ReconcileServers(candidates []types.ServerCandidate) types.ReconcileSummary {
	summary := types.ReconcileSummary{Total: len(candidates), Failures: make([]types.RowFailure, 0)}

	for _, cand := range candidates {
		outcome, err := r.reconcileOneServer(cand)
		if err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, types.RowFailure{
				Key:    cand.Hostname,
				Reason: err.Error(),
			})
			logc.Errorf(r.ctx.Ctx, "合并服务器 %s 失败: %v", cand.Hostname, err)
			continue
		}
		summary.Count(outcome)
	}

	return summary
}

func (r *reconcileService) reconcileOneServer(cand types.ServerCandidate) (string, error) {
	if !tools.IsValidHostname(cand.Hostname) {
		return "", fmt.Errorf("主机名不合法: %q", cand.Hostname)
	}
	if cand.IPAddress != nil && !tools.IsValidIP(*cand.IPAddress) {
		return "", fmt.Errorf("IP地址不合法: %q", *cand.IPAddress)
	}
	if cand.Status != nil && !tools.InEnum(*cand.Status, models.ServerStatusList) {
		return "", fmt.Errorf("状态不合法: %q", *cand.Status)
	}

	var outcome string
	err := r.ctx.DB.Txn(func(tx repo.InterEntryRepo) error {
		existing, err := tx.Server().GetByHostname(cand.Hostname)
		if err != nil {
			return err
		}

		if existing == nil {
			server := serverFromCandidate(cand)
			if err := tx.Server().Create(&server); err != nil {
				// 并发批次可能已抢先插入同一 hostname，降级为更新
				again, ferr := tx.Server().GetByHostname(cand.Hostname)
				if ferr != nil || again == nil {
					return err
				}
				existing = again
			} else {
				outcome = outcomeCreated
				return nil
			}
		}

		changed := applyServerCandidate(existing, cand)
		if cand.MarkSeen {
			now := time.Now()
			existing.LastSeen = &now
		}
		// 仅刷新 last_seen 不计为变更
		if len(changed) == 0 && !cand.MarkSeen {
			outcome = outcomeUnchanged
			return nil
		}
		if err := tx.Server().Update(*existing); err != nil {
			return err
		}
		if len(changed) == 0 {
			outcome = outcomeUnchanged
		} else {
			outcome = outcomeUpdated
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return outcome, nil
}

// ReconcileApplications 按 (name, version) 合并应用候选记录
func (r *reconcileService) ReconcileApplications(candidates []types.ApplicationCandidate) types.ReconcileSummary {
	summary := types.ReconcileSummary{Total: len(candidates), Failures: make([]types.RowFailure, 0)}

	for _, cand := range candidates {
		key := cand.Name + "@" + cand.Version
		outcome, err := r.reconcileOneApplication(cand)
		if err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, types.RowFailure{Key: key, Reason: err.Error()})
			logc.Errorf(r.ctx.Ctx, "合并应用 %s 失败: %v", key, err)
			continue
		}
		summary.Count(outcome)
	}

	return summary
}

func (r *reconcileService) reconcileOneApplication(cand types.ApplicationCandidate) (string, error) {
	if cand.Name == "" {
		return "", fmt.Errorf("应用名称不能为空")
	}
	if cand.Criticality != nil && !tools.InEnum(*cand.Criticality, models.CriticalityList) {
		return "", fmt.Errorf("重要性等级不合法: %q", *cand.Criticality)
	}

	var outcome string
	err := r.ctx.DB.Txn(func(tx repo.InterEntryRepo) error {
		existing, err := tx.Application().GetByNaturalKey(cand.Name, cand.Version)
		if err != nil {
			return err
		}

		if existing == nil {
			app := applicationFromCandidate(cand)
			if err := tx.Application().Create(&app); err != nil {
				again, ferr := tx.Application().GetByNaturalKey(cand.Name, cand.Version)
				if ferr != nil || again == nil {
					return err
				}
				existing = again
			} else {
				outcome = outcomeCreated
				return nil
			}
		}

		changed := applyApplicationCandidate(existing, cand)
		if len(changed) == 0 {
			outcome = outcomeUnchanged
			return nil
		}
		if err := tx.Application().Update(*existing); err != nil {
			return err
		}
		outcome = outcomeUpdated
		return nil
	})
	if err != nil {
		return "", err
	}

	return outcome, nil
}

// ReconcileServices 按 (server_id, port, protocol) 合并服务候选记录
func (r *reconcileService) ReconcileServices(candidates []types.ServiceCandidate) types.ReconcileSummary {
	summary := types.ReconcileSummary{Total: len(candidates), Failures: make([]types.RowFailure, 0)}

	for _, cand := range candidates {
		key := fmt.Sprintf("%d:%d/%s", cand.ServerID, cand.Port, cand.Protocol)
		outcome, err := r.reconcileOneService(cand)
		if err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, types.RowFailure{Key: key, Reason: err.Error()})
			logc.Errorf(r.ctx.Ctx, "合并服务 %s 失败: %v", key, err)
			continue
		}
		summary.Count(outcome)
	}

	return summary
}

func (r *reconcileService) reconcileOneService(cand types.ServiceCandidate) (string, error) {
	if !tools.IsValidPort(cand.Port) {
		return "", fmt.Errorf("端口不合法: %d", cand.Port)
	}
	if cand.Protocol == "" {
		cand.Protocol = "tcp"
	}
	if cand.Status != nil && !tools.InEnum(*cand.Status, models.ServiceStatusList) {
		return "", fmt.Errorf("状态不合法: %q", *cand.Status)
	}

	var outcome string
	err := r.ctx.DB.Txn(func(tx repo.InterEntryRepo) error {
		existing, err := tx.Service().GetByNaturalKey(cand.ServerID, cand.Port, cand.Protocol)
		if err != nil {
			return err
		}

		if existing == nil {
			service := serviceFromCandidate(cand)
			if err := tx.Service().Create(&service); err != nil {
				again, ferr := tx.Service().GetByNaturalKey(cand.ServerID, cand.Port, cand.Protocol)
				if ferr != nil || again == nil {
					return err
				}
				existing = again
			} else {
				outcome = outcomeCreated
				return nil
			}
		}

		changed := applyServiceCandidate(existing, cand)
		if len(changed) == 0 {
			outcome = outcomeUnchanged
			return nil
		}
		if err := tx.Service().Update(*existing); err != nil {
			return err
		}
		outcome = outcomeUpdated
		return nil
	})
	if err != nil {
		return "", err
	}

	return outcome, nil
}

// RecordHistory 落一条发现审计记录
func (r *reconcileService) RecordHistory(batchId, target, discoveryType string, summary types.ReconcileSummary, detail *string) error {
	history := models.DiscoveryHistory{
		BatchID:       batchId,
		Target:        target,
		DiscoveryType: discoveryType,
		Outcome:       summary.Outcome(),
		CreatedCount:  summary.Created,
		UpdatedCount:  summary.Updated,
		UnchangedCnt:  summary.Unchanged,
		FailedCount:   summary.Failed,
		Detail:        detail,
		DiscoveredAt:  time.Now(),
	}

	return r.ctx.DB.DiscoveryHistory().Create(&history)
}

const (
	outcomeCreated   = "created"
	outcomeUpdated   = "updated"
	outcomeUnchanged = "unchanged"
)

// serverFromCandidate 候选 -> 新建模型
func serverFromCandidate(cand types.ServerCandidate) models.Server {
	server := models.Server{
		Hostname:    cand.Hostname,
		IPAddress:   cand.IPAddress,
		OSType:      cand.OSType,
		OSVersion:   cand.OSVersion,
		CPUCores:    cand.CPUCores,
		MemoryGB:    cand.MemoryGB,
		DiskGB:      cand.DiskGB,
		Environment: cand.Environment,
		Location:    cand.Location,
		Owner:       cand.Owner,
		Notes:       cand.Notes,
		Status:      models.ServerStatusActive,
	}
	if cand.Status != nil {
		server.Status = *cand.Status
	}
	if cand.MarkSeen {
		now := time.Now()
		server.LastSeen = &now
	}
	return server
}

// applyServerCandidate 把候选中已知且有变化的字段写入 existing，返回变化的字段名
// nil 字段表示来源未知该项，绝不覆盖已有值
func applyServerCandidate(existing *models.Server, cand types.ServerCandidate) []string {
	var changed []string
	if applyStr(&existing.IPAddress, cand.IPAddress) {
		changed = append(changed, "ip_address")
	}
	if applyStr(&existing.OSType, cand.OSType) {
		changed = append(changed, "os_type")
	}
	if applyStr(&existing.OSVersion, cand.OSVersion) {
		changed = append(changed, "os_version")
	}
	if applyInt(&existing.CPUCores, cand.CPUCores) {
		changed = append(changed, "cpu_cores")
	}
	if applyFloat(&existing.MemoryGB, cand.MemoryGB) {
		changed = append(changed, "memory_gb")
	}
	if applyFloat(&existing.DiskGB, cand.DiskGB) {
		changed = append(changed, "disk_gb")
	}
	if applyStr(&existing.Environment, cand.Environment) {
		changed = append(changed, "environment")
	}
	if cand.Status != nil && existing.Status != *cand.Status {
		existing.Status = *cand.Status
		changed = append(changed, "status")
	}
	if applyStr(&existing.Location, cand.Location) {
		changed = append(changed, "location")
	}
	if applyStr(&existing.Owner, cand.Owner) {
		changed = append(changed, "owner")
	}
	if applyStr(&existing.Notes, cand.Notes) {
		changed = append(changed, "notes")
	}
	return changed
}

func applicationFromCandidate(cand types.ApplicationCandidate) models.Application {
	app := models.Application{
		Name:             cand.Name,
		Version:          cand.Version,
		Type:             cand.Type,
		Language:         cand.Language,
		RepositoryURL:    cand.RepositoryURL,
		DocumentationURL: cand.DocumentationURL,
		Owner:            cand.Owner,
		Notes:            cand.Notes,
		Criticality:      models.CriticalityMedium,
	}
	if cand.Criticality != nil {
		app.Criticality = *cand.Criticality
	}
	return app
}

func applyApplicationCandidate(existing *models.Application, cand types.ApplicationCandidate) []string {
	var changed []string
	if applyStr(&existing.Type, cand.Type) {
		changed = append(changed, "type")
	}
	if applyStr(&existing.Language, cand.Language) {
		changed = append(changed, "language")
	}
	if applyStr(&existing.RepositoryURL, cand.RepositoryURL) {
		changed = append(changed, "repository_url")
	}
	if applyStr(&existing.DocumentationURL, cand.DocumentationURL) {
		changed = append(changed, "documentation_url")
	}
	if applyStr(&existing.Owner, cand.Owner) {
		changed = append(changed, "owner")
	}
	if cand.Criticality != nil && existing.Criticality != *cand.Criticality {
		existing.Criticality = *cand.Criticality
		changed = append(changed, "criticality")
	}
	if applyStr(&existing.Notes, cand.Notes) {
		changed = append(changed, "notes")
	}
	return changed
}

func serviceFromCandidate(cand types.ServiceCandidate) models.Service {
	service := models.Service{
		ServerID:      cand.ServerID,
		ApplicationID: cand.ApplicationID,
		ServiceName:   cand.ServiceName,
		Port:          cand.Port,
		Protocol:      cand.Protocol,
		ProcessName:   cand.ProcessName,
		Status:        models.ServiceStatusUnknown,
	}
	if cand.Status != nil {
		service.Status = *cand.Status
	}
	return service
}

func applyServiceCandidate(existing *models.Service, cand types.ServiceCandidate) []string {
	var changed []string
	if cand.ServiceName != "" && existing.ServiceName != cand.ServiceName {
		existing.ServiceName = cand.ServiceName
		changed = append(changed, "service_name")
	}
	if cand.ApplicationID != nil &&
		(existing.ApplicationID == nil || *existing.ApplicationID != *cand.ApplicationID) {
		existing.ApplicationID = cand.ApplicationID
		changed = append(changed, "application_id")
	}
	if cand.Status != nil && existing.Status != *cand.Status {
		existing.Status = *cand.Status
		changed = append(changed, "status")
	}
	if applyStr(&existing.ProcessName, cand.ProcessName) {
		changed = append(changed, "process_name")
	}
	return changed
}

func applyStr(dst **string, src *string) bool {
	if src == nil {
		return false
	}
	if *dst != nil && **dst == *src {
		return false
	}
	*dst = src
	return true
}

func applyInt(dst **int, src *int) bool {
	if src == nil {
		return false
	}
	if *dst != nil && **dst == *src {
		return false
	}
	*dst = src
	return true
}

func applyFloat(dst **float64, src *float64) bool {
	if src == nil {
		return false
	}
	if *dst != nil && **dst == *src {
		return false
	}
	*dst = src
	return true
}
