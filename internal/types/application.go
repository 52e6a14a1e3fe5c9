package types

import "cmdbHub/internal/models"

// RequestApplicationCreate 创建应用请求
type RequestApplicationCreate struct {
	Name             string  `json:"name" binding:"required"`
	Version          string  `json:"version"`
	Type             *string `json:"type"`
	Language         *string `json:"language"`
	RepositoryURL    *string `json:"repositoryUrl"`
	DocumentationURL *string `json:"documentationUrl"`
	Owner            *string `json:"owner"`
	Criticality      string  `json:"criticality"`
	Notes            *string `json:"notes"`
}

// RequestApplicationUpdate 更新应用请求
type RequestApplicationUpdate struct {
	ID int64 `json:"id" binding:"required"`
	RequestApplicationCreate
}

// RequestApplicationQuery 应用列表查询请求
type RequestApplicationQuery struct {
	Keyword     string `json:"keyword" form:"keyword"`
	Criticality string `json:"criticality" form:"criticality"`
	models.Page
}

// ResponseApplicationList 应用列表响应
type ResponseApplicationList struct {
	List  []models.Application `json:"list"`
	Total int64                `json:"total"`
}
