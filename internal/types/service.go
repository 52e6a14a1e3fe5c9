package types

import "cmdbHub/internal/models"

// RequestServiceCreate 创建服务请求
type RequestServiceCreate struct {
	ServerID      int64   `json:"serverId" binding:"required"`
	ApplicationID *int64  `json:"applicationId"`
	ServiceName   string  `json:"serviceName" binding:"required"`
	Port          int     `json:"port" binding:"required"`
	Protocol      string  `json:"protocol"`
	Status        string  `json:"status"`
	ProcessName   *string `json:"processName"`
	StartCommand  *string `json:"startCommand"`
	ConfigFile    *string `json:"configFile"`
	LogFile       *string `json:"logFile"`
}

// RequestServiceUpdate 更新服务请求
type RequestServiceUpdate struct {
	ID int64 `json:"id" binding:"required"`
	RequestServiceCreate
}

// RequestServiceQuery 服务列表查询请求
type RequestServiceQuery struct {
	ServerID      int64  `json:"serverId" form:"serverId"`
	ApplicationID int64  `json:"applicationId" form:"applicationId"`
	Status        string `json:"status" form:"status"`
	models.Page
}

// ResponseServiceList 服务列表响应
type ResponseServiceList struct {
	List  []models.Service `json:"list"`
	Total int64            `json:"total"`
}
