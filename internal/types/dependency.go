package types

import "cmdbHub/internal/models"

// RequestDependencyAdd 添加依赖边请求
type RequestDependencyAdd struct {
	SourceServiceID int64   `json:"sourceServiceId" binding:"required"`
	TargetServiceID int64   `json:"targetServiceId" binding:"required"`
	DependencyType  string  `json:"dependencyType"`
	Description     *string `json:"description"`
}

// RequestDependencyRemove 删除依赖边请求
type RequestDependencyRemove struct {
	SourceServiceID int64 `json:"sourceServiceId" binding:"required"`
	TargetServiceID int64 `json:"targetServiceId" binding:"required"`
}

// RequestServiceGraphQuery 单服务依赖查询请求
type RequestServiceGraphQuery struct {
	ServiceID int64 `json:"serviceId" form:"serviceId" binding:"required"`
}

// ResponseServiceGraph 单服务的出入边视图
// Dependencies: 该服务依赖谁; Dependents: 谁依赖该服务（挂了影响谁）
type ResponseServiceGraph struct {
	ServiceID    int64            `json:"serviceId"`
	Dependencies []models.Service `json:"dependencies"`
	Dependents   []models.Service `json:"dependents"`
}

// ResponseCycleReport 依赖环检测报告
type ResponseCycleReport struct {
	HasCycle bool             `json:"hasCycle"`
	Services []models.Service `json:"services"`
}
