package probe

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"cmdbHub/pkg/errs"
)

// 目标类型
const (
	TargetKindLocal   = "local"
	TargetKindSSH     = "ssh"
	TargetKindWindows = "windows"
)

// Target 发现目标描述
// Kind 为 local 时忽略其余字段
type Target struct {
	Kind     string `json:"kind"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

// Addr 目标的展示地址
func (t Target) Addr() string {
	if t.Kind == TargetKindLocal {
		return "localhost"
	}
	return t.Host
}

func (t Target) sshAddr(defaultPort int) string {
	port := t.Port
	if port == 0 {
		port = defaultPort
	}
	if port == 0 {
		port = 22
	}
	return net.JoinHostPort(t.Host, strconv.Itoa(port))
}

// ServiceFact 单个监听服务的探测结果
type ServiceFact struct {
	Name        string
	Port        int
	Protocol    string
	Status      string
	ProcessName *string
}

// FactSet 一次探测采集到的主机信息
// 指针字段为 nil 表示该项无法确定，上层合并时不会用 nil 覆盖已有数据
type FactSet struct {
	Hostname  *string
	IPAddress *string
	OSType    *string
	OSVersion *string
	CPUCores  *int
	MemoryGB  *float64
	DiskGB    *float64
	Services  []ServiceFact
}

// Prober 主机信息探测能力
// 每类目标一个实现，上层的合并逻辑不感知具体传输方式
type Prober interface {
	FetchFacts(ctx context.Context, target Target) (*FactSet, error)
}

// ProberFor 按目标类型选择探测实现
func ProberFor(target Target) (Prober, error) {
	switch target.Kind {
	case TargetKindLocal:
		return NewLocalProber(), nil
	case TargetKindSSH:
		return NewSSHProber(), nil
	case TargetKindWindows:
		return NewWindowsProber(), nil
	default:
		return nil, errs.NewValidation(fmt.Sprintf("不支持的目标类型: %s", target.Kind), "kind")
	}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}
