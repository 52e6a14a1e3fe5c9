package models

// AuditLog 操作审计日志表模型
// 表名: audit_logs
type AuditLog struct {
	ID         string `gorm:"column:id;type:varchar(50);primary_key" json:"id"`
	IPAddress  string `gorm:"column:ip_address;type:varchar(50)" json:"ipAddress"`
	Method     string `gorm:"column:method;type:varchar(10)" json:"method"`
	Path       string `gorm:"column:path;type:varchar(255)" json:"path"`
	Body       string `gorm:"column:body;type:text" json:"body"`
	StatusCode int    `gorm:"column:status_code" json:"statusCode"`
	AuditType  string `gorm:"column:audit_type;type:varchar(50)" json:"auditType"`
	CreatedAt  int64  `gorm:"column:created_at" json:"createdAt"`
}
