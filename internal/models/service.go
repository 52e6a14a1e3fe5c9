package models

import (
	"time"

	"gorm.io/gorm"
)

// 服务运行状态
const (
	ServiceStatusRunning = "running"
	ServiceStatusStopped = "stopped"
	ServiceStatusUnknown = "unknown"
)

// ServiceStatusList 服务状态枚举列表
var ServiceStatusList = []string{ServiceStatusRunning, ServiceStatusStopped, ServiceStatusUnknown}

// Service 服务表模型
// 表名: services
// 归属: 每个服务属于且仅属于一台服务器，可选关联一个应用
// 自然键: (server_id, port, protocol) 组合唯一
// 软删除: 服务器删除时级联软删除其服务，图遍历会排除已软删除的服务
type Service struct {
	ID            int64          `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	ServerID      int64          `gorm:"column:server_id;not null;uniqueIndex:uk_server_port_proto;index:idx_server" json:"serverId"`
	ApplicationID *int64         `gorm:"column:application_id;index:idx_application" json:"applicationId"`
	ServiceName   string         `gorm:"column:service_name;type:varchar(200);not null" json:"serviceName"`
	Port          int            `gorm:"column:port;not null;uniqueIndex:uk_server_port_proto" json:"port"`
	Protocol      string         `gorm:"column:protocol;type:varchar(10);not null;default:tcp;uniqueIndex:uk_server_port_proto" json:"protocol"`
	Status        string         `gorm:"column:status;type:varchar(20);default:unknown" json:"status"`
	ProcessName   *string        `gorm:"column:process_name;type:varchar(200)" json:"processName"`
	StartCommand  *string        `gorm:"column:start_command;type:varchar(500)" json:"startCommand"`
	ConfigFile    *string        `gorm:"column:config_file;type:varchar(500)" json:"configFile"`
	LogFile       *string        `gorm:"column:log_file;type:varchar(500)" json:"logFile"`
	CreatedAt     time.Time      `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"column:updated_at" json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}
