package models

import (
	"encoding/json"
	"testing"
)

// TestServerJson 测试服务器模型的JSON序列化
func TestServerJson(t *testing.T) {
	ip := "10.0.0.1"
	cores := 8
	server := &Server{
		ID:        1,
		Hostname:  "web-01",
		IPAddress: &ip,
		CPUCores:  &cores,
		Status:    ServerStatusActive,
	}

	jsonData, err := json.Marshal(server)
	if err != nil {
		t.Fatalf("JSON序列化失败: %v", err)
	}

	var decoded Server
	if err := json.Unmarshal(jsonData, &decoded); err != nil {
		t.Fatalf("JSON反序列化失败: %v", err)
	}
	if decoded.Hostname != server.Hostname {
		t.Errorf("期望 Hostname 为 %s，实际为 %s", server.Hostname, decoded.Hostname)
	}
	if decoded.IPAddress == nil || *decoded.IPAddress != ip {
		t.Errorf("期望 IPAddress 为 %s，实际为 %v", ip, decoded.IPAddress)
	}

	// 可选字段为 nil 时序列化为 null 而不是零值
	bare, _ := json.Marshal(&Server{Hostname: "db-01"})
	var raw map[string]interface{}
	if err := json.Unmarshal(bare, &raw); err != nil {
		t.Fatalf("JSON反序列化失败: %v", err)
	}
	if raw["ipAddress"] != nil {
		t.Errorf("期望未知 IP 序列化为 null，实际为 %v", raw["ipAddress"])
	}
}

// TestStatusEnums 枚举列表覆盖全部常量
func TestStatusEnums(t *testing.T) {
	if len(ServerStatusList) != 3 {
		t.Errorf("期望服务器状态枚举有 3 个值，实际 %d 个", len(ServerStatusList))
	}
	if len(ServiceStatusList) != 3 {
		t.Errorf("期望服务状态枚举有 3 个值，实际 %d 个", len(ServiceStatusList))
	}
	if len(CriticalityList) != 4 {
		t.Errorf("期望重要性枚举有 4 个值，实际 %d 个", len(CriticalityList))
	}
}
