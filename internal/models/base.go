package models

// Page 通用分页请求参数
type Page struct {
	Index int64 `json:"index" form:"index"`
	Size  int64 `json:"size" form:"size"`
}
