package types

// ImportSummary CSV 导入汇总
// 单行非法只拒绝该行，其余行继续处理
type ImportSummary struct {
	Total    int          `json:"total"`
	Accepted int          `json:"accepted"`
	Rejected int          `json:"rejected"`
	Failures []RowFailure `json:"failures"`
	// Reconcile 被接受行的合并明细（created/updated/unchanged）
	Reconcile ReconcileSummary `json:"reconcile"`
}
