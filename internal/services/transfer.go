package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cmdbHub/internal/ctx"
	"cmdbHub/internal/models"
	"cmdbHub/internal/types"
	"cmdbHub/pkg/tools"

	"github.com/zeromicro/go-zero/core/logc"
)

// CSV 列顺序，导出与导入共用同一份定义保证来回导入导出幂等
var (
	serverCsvHeader = []string{
		"hostname", "ip_address", "os_type", "os_version", "cpu_cores",
		"memory_gb", "disk_gb", "environment", "status", "location", "owner", "notes",
	}
	applicationCsvHeader = []string{
		"name", "version", "type", "language", "repository_url",
		"documentation_url", "owner", "criticality", "notes",
	}
	serviceCsvHeader = []string{
		"hostname", "service_name", "port", "protocol", "status", "process_name", "application",
	}
	dependencyCsvHeader = []string{
		"source_service_id", "target_service_id", "dependency_type", "description",
	}
)

type (
	transferService struct {
		ctx *ctx.Context
	}

	// InterTransferService CSV 导入导出服务接口
	// 导入走合并引擎，与发现共用同一套自然键语义；
	// 导出按 ID 升序输出稳定列顺序，导出再导入不产生变更
	InterTransferService interface {
		ExportServers() ([]byte, error)
		ExportApplications() ([]byte, error)
		ExportServices() ([]byte, error)
		ExportDependencies() ([]byte, error)
		// ImportServers 逐行校验，单行非法只拒绝该行
		ImportServers(reader io.Reader) (*types.ImportSummary, error)
		ImportApplications(reader io.Reader) (*types.ImportSummary, error)
	}
)

func newInterTransferService(ctx *ctx.Context) InterTransferService {
	return &transferService{
		ctx: ctx,
	}
}

// ExportServers 导出全部服务器
func (t *transferService) ExportServers() ([]byte, error) {
	servers, err := t.ctx.DB.Server().ListAll()
	if err != nil {
		return nil, err
	}

	return writeCsv(serverCsvHeader, len(servers), func(i int) []string {
		s := servers[i]
		return []string{
			s.Hostname,
			strVal(s.IPAddress),
			strVal(s.OSType),
			strVal(s.OSVersion),
			intVal(s.CPUCores),
			floatVal(s.MemoryGB),
			floatVal(s.DiskGB),
			strVal(s.Environment),
			s.Status,
			strVal(s.Location),
			strVal(s.Owner),
			strVal(s.Notes),
		}
	})
}

// ExportApplications 导出全部应用
func (t *transferService) ExportApplications() ([]byte, error) {
	apps, err := t.ctx.DB.Application().ListAll()
	if err != nil {
		return nil, err
	}

	return writeCsv(applicationCsvHeader, len(apps), func(i int) []string {
		a := apps[i]
		return []string{
			a.Name,
			a.Version,
			strVal(a.Type),
			strVal(a.Language),
			strVal(a.RepositoryURL),
			strVal(a.DocumentationURL),
			strVal(a.Owner),
			a.Criticality,
			strVal(a.Notes),
		}
	})
}

// ExportServices 导出全部服务，服务器和应用展开为名称方便人读
func (t *transferService) ExportServices() ([]byte, error) {
	services, err := t.ctx.DB.Service().ListAll()
	if err != nil {
		return nil, err
	}

	hostnames := make(map[int64]string)
	servers, err := t.ctx.DB.Server().ListAll()
	if err != nil {
		return nil, err
	}
	for _, s := range servers {
		hostnames[s.ID] = s.Hostname
	}

	appNames := make(map[int64]string)
	apps, err := t.ctx.DB.Application().ListAll()
	if err != nil {
		return nil, err
	}
	for _, a := range apps {
		name := a.Name
		if a.Version != "" {
			name += "@" + a.Version
		}
		appNames[a.ID] = name
	}

	return writeCsv(serviceCsvHeader, len(services), func(i int) []string {
		s := services[i]
		app := ""
		if s.ApplicationID != nil {
			app = appNames[*s.ApplicationID]
		}
		return []string{
			hostnames[s.ServerID],
			s.ServiceName,
			strconv.Itoa(s.Port),
			s.Protocol,
			s.Status,
			strVal(s.ProcessName),
			app,
		}
	})
}

// ExportDependencies 导出全部依赖边
func (t *transferService) ExportDependencies() ([]byte, error) {
	deps, err := t.ctx.DB.Dependency().ListAll()
	if err != nil {
		return nil, err
	}

	return writeCsv(dependencyCsvHeader, len(deps), func(i int) []string {
		d := deps[i]
		return []string{
			strconv.FormatInt(d.SourceServiceID, 10),
			strconv.FormatInt(d.TargetServiceID, 10),
			d.DependencyType,
			strVal(d.Description),
		}
	})
}

// ImportServers 导入服务器CSV
// 列名大小写不敏感，多余的列忽略；hostname 列必须存在
func (t *transferService) ImportServers(reader io.Reader) (*types.ImportSummary, error) {
	rows, header, err := readCsv(reader)
	if err != nil {
		return nil, err
	}
	if _, ok := header["hostname"]; !ok {
		return nil, fmt.Errorf("缺少必需列: hostname")
	}

	summary := &types.ImportSummary{Total: len(rows), Failures: make([]types.RowFailure, 0)}
	candidates := make([]types.ServerCandidate, 0, len(rows))

	for idx, row := range rows {
		cand, err := serverCandidateFromRow(header, row)
		if err != nil {
			summary.Rejected++
			summary.Failures = append(summary.Failures, types.RowFailure{
				Key:    fmt.Sprintf("第%d行", idx+2),
				Reason: err.Error(),
			})
			continue
		}
		summary.Accepted++
		candidates = append(candidates, cand)
	}

	summary.Reconcile = ReconcileService.ReconcileServers(candidates)
	t.recordImport("servers", summary)
	return summary, nil
}

// ImportApplications 导入应用CSV
func (t *transferService) ImportApplications(reader io.Reader) (*types.ImportSummary, error) {
	rows, header, err := readCsv(reader)
	if err != nil {
		return nil, err
	}
	if _, ok := header["name"]; !ok {
		return nil, fmt.Errorf("缺少必需列: name")
	}

	summary := &types.ImportSummary{Total: len(rows), Failures: make([]types.RowFailure, 0)}
	candidates := make([]types.ApplicationCandidate, 0, len(rows))

	for idx, row := range rows {
		cand, err := applicationCandidateFromRow(header, row)
		if err != nil {
			summary.Rejected++
			summary.Failures = append(summary.Failures, types.RowFailure{
				Key:    fmt.Sprintf("第%d行", idx+2),
				Reason: err.Error(),
			})
			continue
		}
		summary.Accepted++
		candidates = append(candidates, cand)
	}

	summary.Reconcile = ReconcileService.ReconcileApplications(candidates)
	t.recordImport("applications", summary)
	return summary, nil
}

// recordImport 导入批次也落发现审计记录
func (t *transferService) recordImport(target string, summary *types.ImportSummary) {
	batch := summary.Reconcile
	batch.Total += summary.Rejected
	batch.Failed += summary.Rejected
	batch.Failures = append(batch.Failures, summary.Failures...)

	if err := ReconcileService.RecordHistory(tools.RandId(), target, models.DiscoveryTypeCsvImport, batch, nil); err != nil {
		logc.Errorf(t.ctx.Ctx, "写入导入记录失败: %v", err)
	}
}

// serverCandidateFromRow 单行 -> 服务器候选，带校验
func serverCandidateFromRow(header map[string]int, row []string) (types.ServerCandidate, error) {
	cell := cellReader(header, row)

	cand := types.ServerCandidate{Hostname: strings.TrimSpace(cell("hostname"))}
	if !tools.IsValidHostname(cand.Hostname) {
		return cand, fmt.Errorf("主机名不合法: %q", cand.Hostname)
	}

	if v := cell("ip_address"); v != "" {
		if !tools.IsValidIP(v) {
			return cand, fmt.Errorf("IP地址不合法: %q", v)
		}
		cand.IPAddress = &v
	}
	if v := cell("status"); v != "" {
		if !tools.InEnum(v, models.ServerStatusList) {
			return cand, fmt.Errorf("状态不合法: %q", v)
		}
		cand.Status = &v
	}
	if v := cell("cpu_cores"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cand, fmt.Errorf("CPU核数不合法: %q", v)
		}
		cand.CPUCores = &n
	}
	if v := cell("memory_gb"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return cand, fmt.Errorf("内存大小不合法: %q", v)
		}
		cand.MemoryGB = &f
	}
	if v := cell("disk_gb"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return cand, fmt.Errorf("磁盘大小不合法: %q", v)
		}
		cand.DiskGB = &f
	}

	cand.OSType = optCell(cell, "os_type")
	cand.OSVersion = optCell(cell, "os_version")
	cand.Environment = optCell(cell, "environment")
	cand.Location = optCell(cell, "location")
	cand.Owner = optCell(cell, "owner")
	cand.Notes = optCell(cell, "notes")
	// CSV 导入不代表主机在线，不刷新 last_seen
	cand.MarkSeen = false

	return cand, nil
}

// applicationCandidateFromRow 单行 -> 应用候选，带校验
func applicationCandidateFromRow(header map[string]int, row []string) (types.ApplicationCandidate, error) {
	cell := cellReader(header, row)

	cand := types.ApplicationCandidate{
		Name:    strings.TrimSpace(cell("name")),
		Version: strings.TrimSpace(cell("version")),
	}
	if cand.Name == "" {
		return cand, fmt.Errorf("应用名称不能为空")
	}

	if v := cell("criticality"); v != "" {
		if !tools.InEnum(v, models.CriticalityList) {
			return cand, fmt.Errorf("重要性等级不合法: %q", v)
		}
		cand.Criticality = &v
	}

	cand.Type = optCell(cell, "type")
	cand.Language = optCell(cell, "language")
	cand.RepositoryURL = optCell(cell, "repository_url")
	cand.DocumentationURL = optCell(cell, "documentation_url")
	cand.Owner = optCell(cell, "owner")
	cand.Notes = optCell(cell, "notes")

	return cand, nil
}

// readCsv 读出表头索引和数据行，表头统一转小写
func readCsv(reader io.Reader) ([][]string, map[string]int, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("解析CSV失败: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("CSV内容为空")
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}

	return records[1:], header, nil
}

func writeCsv(header []string, rows int, rowFn func(i int) []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i := 0; i < rows; i++ {
		if err := w.Write(rowFn(i)); err != nil {
			return nil, err
		}
	}
	w.Flush()

	return buf.Bytes(), w.Error()
}

// cellReader 按列名取单元格，列缺失或行短于表头时返回空串
func cellReader(header map[string]int, row []string) func(name string) string {
	return func(name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
}

func optCell(cell func(string) string, name string) *string {
	if v := cell(name); v != "" {
		return &v
	}
	return nil
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intVal(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func floatVal(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'g', -1, 64)
}
