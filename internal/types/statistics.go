package types

// ResponseStatistics 首页统计数据
type ResponseStatistics struct {
	Servers         int64            `json:"servers"`
	Applications    int64            `json:"applications"`
	Services        int64            `json:"services"`
	Dependencies    int64            `json:"dependencies"`
	RunningServices int64            `json:"runningServices"`
	ActiveServers   int64            `json:"activeServers"`
	ByOSType        map[string]int64 `json:"byOsType"`
	ByEnvironment   map[string]int64 `json:"byEnvironment"`
	ByCriticality   map[string]int64 `json:"byCriticality"`
}

// RequestAuditLogQuery 审计日志查询请求
type RequestAuditLogQuery struct {
	Index int64 `json:"index" form:"index"`
	Size  int64 `json:"size" form:"size"`
}
