package types

import "cmdbHub/internal/models"

// RequestServerCreate 创建服务器请求
type RequestServerCreate struct {
	Hostname    string   `json:"hostname" binding:"required"`
	IPAddress   *string  `json:"ipAddress"`
	OSType      *string  `json:"osType"`
	OSVersion   *string  `json:"osVersion"`
	CPUCores    *int     `json:"cpuCores"`
	MemoryGB    *float64 `json:"memoryGb"`
	DiskGB      *float64 `json:"diskGb"`
	Environment *string  `json:"environment"`
	Status      string   `json:"status"`
	Location    *string  `json:"location"`
	Owner       *string  `json:"owner"`
	Notes       *string  `json:"notes"`
}

// RequestServerUpdate 更新服务器请求
type RequestServerUpdate struct {
	ID int64 `json:"id" binding:"required"`
	RequestServerCreate
}

// RequestServerQuery 服务器列表查询请求
type RequestServerQuery struct {
	Keyword     string `json:"keyword" form:"keyword"`
	Status      string `json:"status" form:"status"`
	Environment string `json:"environment" form:"environment"`
	models.Page
}

// ResponseServerList 服务器列表响应
type ResponseServerList struct {
	List  []models.Server `json:"list"`
	Total int64           `json:"total"`
}

// ResponseServerDetail 服务器详情响应，附带其服务清单
type ResponseServerDetail struct {
	Server   models.Server    `json:"server"`
	Services []models.Service `json:"services"`
}
