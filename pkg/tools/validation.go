package tools

import (
	"net"
	"regexp"
	"strings"
)

var hostnameRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9\-\.]{0,253})?$`)

// IsValidHostname 校验主机名格式
func IsValidHostname(hostname string) bool {
	hostname = strings.TrimSpace(hostname)
	if hostname == "" || len(hostname) > 255 {
		return false
	}
	return hostnameRegex.MatchString(hostname)
}

// IsValidIP 校验IP地址格式（IPv4/IPv6）
func IsValidIP(ip string) bool {
	return net.ParseIP(strings.TrimSpace(ip)) != nil
}

// IsValidPort 校验端口范围
func IsValidPort(port int) bool {
	return port > 0 && port <= 65535
}

// InEnum 校验值是否在枚举列表中，空值视为未提供而不是非法
func InEnum(value string, allowed []string) bool {
	if value == "" {
		return true
	}
	for _, item := range allowed {
		if value == item {
			return true
		}
	}
	return false
}
