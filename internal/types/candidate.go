package types

// 合并候选记录：发现探测和 CSV 导入都先转换成这里的类型化记录，
// 再交给合并引擎按自然键落库。指针字段为 nil 表示未知，
// 合并时不会用未知值覆盖已有数据。

// ServerCandidate 服务器候选记录，自然键 hostname
type ServerCandidate struct {
	Hostname    string
	IPAddress   *string
	OSType      *string
	OSVersion   *string
	CPUCores    *int
	MemoryGB    *float64
	DiskGB      *float64
	Environment *string
	Status      *string
	Location    *string
	Owner       *string
	Notes       *string
	// MarkSeen 为真时合并会刷新 last_seen，发现来源置真，CSV 导入置假
	MarkSeen bool
}

// ApplicationCandidate 应用候选记录，自然键 (name, version)
type ApplicationCandidate struct {
	Name             string
	Version          string
	Type             *string
	Language         *string
	RepositoryURL    *string
	DocumentationURL *string
	Owner            *string
	Criticality      *string
	Notes            *string
}

// ServiceCandidate 服务候选记录，自然键 (server_id, port, protocol)
type ServiceCandidate struct {
	ServerID      int64
	ApplicationID *int64
	ServiceName   string
	Port          int
	Protocol      string
	Status        *string
	ProcessName   *string
}

// RowFailure 单行/单目标失败明细
type RowFailure struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// ReconcileSummary 合并批次汇总
// 批量操作永远返回结构化汇总而不是布尔值
type ReconcileSummary struct {
	Total     int          `json:"total"`
	Created   int          `json:"created"`
	Updated   int          `json:"updated"`
	Unchanged int          `json:"unchanged"`
	Failed    int          `json:"failed"`
	Failures  []RowFailure `json:"failures"`
}

// Outcome 按 失败数 推导批次结果: success / partial / failure
func (s ReconcileSummary) Outcome() string {
	switch {
	case s.Total == 0:
		return "success"
	case s.Failed == 0:
		return "success"
	case s.Failed < s.Total:
		return "partial"
	default:
		return "failure"
	}
}

// Count 按单条结果累加对应计数
func (s *ReconcileSummary) Count(outcome string) {
	switch outcome {
	case "created":
		s.Created++
	case "updated":
		s.Updated++
	case "unchanged":
		s.Unchanged++
	}
}

// Merge 累加另一个汇总
func (s *ReconcileSummary) Merge(other ReconcileSummary) {
	s.Total += other.Total
	s.Created += other.Created
	s.Updated += other.Updated
	s.Unchanged += other.Unchanged
	s.Failed += other.Failed
	s.Failures = append(s.Failures, other.Failures...)
}
