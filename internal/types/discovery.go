package types

import (
	"cmdbHub/internal/models"
	"cmdbHub/pkg/probe"
)

// RequestDiscoveryRun 触发发现批次请求
// 每个目标独立探测、独立成败，互不影响
type RequestDiscoveryRun struct {
	Targets []probe.Target `json:"targets"`
}

// TargetResult 单个目标的发现结果
type TargetResult struct {
	Target  string           `json:"target"`
	Success bool             `json:"success"`
	Error   string           `json:"error,omitempty"`
	Summary ReconcileSummary `json:"summary"`
}

// ResponseDiscoveryRun 发现批次响应
type ResponseDiscoveryRun struct {
	BatchID string           `json:"batchId"`
	Outcome string           `json:"outcome"`
	Summary ReconcileSummary `json:"summary"`
	Targets []TargetResult   `json:"targets"`
}

// RequestDiscoveryHistoryQuery 发现历史查询请求
type RequestDiscoveryHistoryQuery struct {
	DiscoveryType string `json:"discoveryType" form:"discoveryType"`
	Outcome       string `json:"outcome" form:"outcome"`
	models.Page
}

// ResponseDiscoveryHistoryList 发现历史列表响应
type ResponseDiscoveryHistoryList struct {
	List  []models.DiscoveryHistory `json:"list"`
	Total int64                     `json:"total"`
}
