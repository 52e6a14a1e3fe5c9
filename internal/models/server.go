package models

import "time"

// 服务器状态
const (
	ServerStatusActive   = "active"
	ServerStatusInactive = "inactive"
	ServerStatusRetired  = "retired"
)

// ServerStatusList 服务器状态枚举列表
var ServerStatusList = []string{ServerStatusActive, ServerStatusInactive, ServerStatusRetired}

// Server 服务器表模型
// 表名: servers (GORM默认规则会自动转换为复数形式)
// 自然键: hostname，rediscovery 和 CSV 导入都按 hostname 做合并
type Server struct {
	ID          int64      `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	Hostname    string     `gorm:"column:hostname;type:varchar(255);not null;uniqueIndex:uk_hostname" json:"hostname"`
	IPAddress   *string    `gorm:"column:ip_address;type:varchar(50)" json:"ipAddress"`
	OSType      *string    `gorm:"column:os_type;type:varchar(50)" json:"osType"`
	OSVersion   *string    `gorm:"column:os_version;type:varchar(100)" json:"osVersion"`
	CPUCores    *int       `gorm:"column:cpu_cores" json:"cpuCores"`
	MemoryGB    *float64   `gorm:"column:memory_gb" json:"memoryGb"`
	DiskGB      *float64   `gorm:"column:disk_gb" json:"diskGb"`
	Environment *string    `gorm:"column:environment;type:varchar(50)" json:"environment"`
	Status      string     `gorm:"column:status;type:varchar(20);default:active" json:"status"`
	Location    *string    `gorm:"column:location;type:varchar(100)" json:"location"`
	Owner       *string    `gorm:"column:owner;type:varchar(100)" json:"owner"`
	Notes       *string    `gorm:"column:notes;type:text" json:"notes"`
	LastSeen    *time.Time `gorm:"column:last_seen" json:"lastSeen"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updatedAt"`
}
