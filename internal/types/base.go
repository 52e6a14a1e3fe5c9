package types

// RequestID 通用按ID操作请求
type RequestID struct {
	ID int64 `json:"id" form:"id" binding:"required"`
}
