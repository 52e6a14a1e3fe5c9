package models

import "time"

// Dependency 服务依赖表模型
// 表名: dependencies
// 有向边 source -> target，语义为 "source 依赖 target 才能正常工作"
// (source_service_id, target_service_id) 组合唯一，重复添加按 upsert 处理
// 依赖关系允许成环，环由 DetectCycles 检测上报而不是在写入时拦截
type Dependency struct {
	ID              int64     `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	SourceServiceID int64     `gorm:"column:source_service_id;not null;uniqueIndex:uk_source_target;index:idx_source" json:"sourceServiceId"`
	TargetServiceID int64     `gorm:"column:target_service_id;not null;uniqueIndex:uk_source_target;index:idx_target" json:"targetServiceId"`
	DependencyType  string    `gorm:"column:dependency_type;type:varchar(50);default:requires" json:"dependencyType"`
	Description     *string   `gorm:"column:description;type:varchar(500)" json:"description"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"createdAt"`
}
