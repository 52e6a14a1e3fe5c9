package models

import "time"

// 发现方式
const (
	DiscoveryTypeLocal     = "local"
	DiscoveryTypeSSH       = "ssh"
	DiscoveryTypeWindows   = "windows"
	DiscoveryTypeCsvImport = "csv_import"
)

// 发现批次结果
const (
	DiscoveryOutcomeSuccess = "success"
	DiscoveryOutcomePartial = "partial"
	DiscoveryOutcomeFailure = "failure"
)

// DiscoveryHistory 发现审计记录表模型
// 表名: discovery_histories
// 只追加不修改，每个发现/导入批次落一条汇总记录
type DiscoveryHistory struct {
	ID            int64     `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	BatchID       string    `gorm:"column:batch_id;type:varchar(50);index:idx_batch" json:"batchId"`
	Target        string    `gorm:"column:target;type:varchar(255)" json:"target"`
	DiscoveryType string    `gorm:"column:discovery_type;type:varchar(20)" json:"discoveryType"`
	Outcome       string    `gorm:"column:outcome;type:varchar(20)" json:"outcome"`
	CreatedCount  int       `gorm:"column:created_count" json:"createdCount"`
	UpdatedCount  int       `gorm:"column:updated_count" json:"updatedCount"`
	UnchangedCnt  int       `gorm:"column:unchanged_count" json:"unchangedCount"`
	FailedCount   int       `gorm:"column:failed_count" json:"failedCount"`
	Detail        *string   `gorm:"column:detail;type:text" json:"detail"`
	DiscoveredAt  time.Time `gorm:"column:discovered_at" json:"discoveredAt"`
}
