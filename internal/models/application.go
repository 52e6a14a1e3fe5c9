package models

import "time"

// 应用重要性等级
const (
	CriticalityLow      = "Low"
	CriticalityMedium   = "Medium"
	CriticalityHigh     = "High"
	CriticalityCritical = "Critical"
)

// CriticalityList 重要性等级枚举列表
var CriticalityList = []string{CriticalityLow, CriticalityMedium, CriticalityHigh, CriticalityCritical}

// Application 应用表模型
// 表名: applications
// 自然键: (name, version) 组合唯一
type Application struct {
	ID               int64     `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	Name             string    `gorm:"column:name;type:varchar(200);not null;uniqueIndex:uk_name_version" json:"name"`
	Version          string    `gorm:"column:version;type:varchar(50);not null;default:'';uniqueIndex:uk_name_version" json:"version"`
	Type             *string   `gorm:"column:type;type:varchar(50)" json:"type"`
	Language         *string   `gorm:"column:language;type:varchar(50)" json:"language"`
	RepositoryURL    *string   `gorm:"column:repository_url;type:varchar(500)" json:"repositoryUrl"`
	DocumentationURL *string   `gorm:"column:documentation_url;type:varchar(500)" json:"documentationUrl"`
	Owner            *string   `gorm:"column:owner;type:varchar(100)" json:"owner"`
	Criticality      string    `gorm:"column:criticality;type:varchar(20);default:Medium" json:"criticality"`
	Notes            *string   `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updatedAt"`
}
