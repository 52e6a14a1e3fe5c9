package probe

import (
	"context"
	"math"
	stdnet "net"
	"strconv"
	"syscall"

	"cmdbHub/internal/models"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/zeromicro/go-zero/core/logc"
)

// localProber 本机探测实现，基于 gopsutil 读取系统信息
type localProber struct{}

// NewLocalProber 创建本机探测器
func NewLocalProber() Prober {
	return &localProber{}
}

// FetchFacts 采集本机信息
// 任何一项采集失败只会让对应字段缺失，不会让整次探测失败
func (p *localProber) FetchFacts(ctx context.Context, target Target) (*FactSet, error) {
	facts := &FactSet{}

	info, err := host.InfoWithContext(ctx)
	if err != nil {
		logc.Errorf(ctx, "获取主机信息失败: %s", err.Error())
	} else {
		facts.Hostname = strPtr(info.Hostname)
		facts.OSType = strPtr(info.Platform)
		facts.OSVersion = strPtr(info.PlatformVersion)
		facts.IPAddress = lookupPrimaryIP(info.Hostname)
	}

	if cores, err := cpu.CountsWithContext(ctx, true); err == nil && cores > 0 {
		facts.CPUCores = intPtr(cores)
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		facts.MemoryGB = floatPtr(round2(float64(vm.Total) / (1 << 30)))
	}

	if usage, err := disk.UsageWithContext(ctx, "/"); err == nil {
		facts.DiskGB = floatPtr(round2(float64(usage.Total) / (1 << 30)))
	}

	facts.Services = p.listeningServices(ctx)

	return facts, nil
}

// listeningServices 枚举本机处于 LISTEN 状态的端口
func (p *localProber) listeningServices(ctx context.Context) []ServiceFact {
	conns, err := net.ConnectionsWithContext(ctx, "inet")
	if err != nil {
		logc.Errorf(ctx, "获取网络连接失败: %s", err.Error())
		return nil
	}

	seen := make(map[string]bool)
	var services []ServiceFact
	for _, conn := range conns {
		// UDP 无 LISTEN 状态，仅收取 TCP 监听端口
		if conn.Type == syscall.SOCK_DGRAM {
			continue
		}
		if conn.Status != "LISTEN" || conn.Laddr.Port == 0 {
			continue
		}
		protocol := "tcp"

		key := protocol + ":" + strconv.Itoa(int(conn.Laddr.Port))
		if seen[key] {
			continue
		}
		seen[key] = true

		fact := ServiceFact{
			Name:     "unknown",
			Port:     int(conn.Laddr.Port),
			Protocol: protocol,
			Status:   models.ServiceStatusRunning,
		}
		if conn.Pid > 0 {
			if proc, err := process.NewProcessWithContext(ctx, conn.Pid); err == nil {
				if name, err := proc.NameWithContext(ctx); err == nil && name != "" {
					fact.Name = name
					fact.ProcessName = strPtr(name)
				}
			}
		}
		services = append(services, fact)
	}

	return services
}

// lookupPrimaryIP 解析主机名到第一个非回环IPv4，解析不到则返回 nil
func lookupPrimaryIP(hostname string) *string {
	addrs, err := stdnet.LookupIP(hostname)
	if err != nil {
		return nil
	}
	for _, addr := range addrs {
		if addr.IsLoopback() {
			continue
		}
		if v4 := addr.To4(); v4 != nil {
			return strPtr(v4.String())
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
