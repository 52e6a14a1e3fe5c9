package tools

import "github.com/rs/xid"

// RandId 生成全局唯一的短ID，用于审计记录和发现批次标识
func RandId() string {
	return xid.New().String()
}
