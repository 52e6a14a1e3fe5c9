package probe

import (
	"context"
	"strconv"
	"strings"

	"cmdbHub/internal/models"

	"golang.org/x/crypto/ssh"
)

// windowsProber 远程 Windows 主机探测实现
// 走 SSH + PowerShell，现代 Windows 自带 OpenSSH 服务端
type windowsProber struct{}

// NewWindowsProber 创建远程 Windows 探测器
func NewWindowsProber() Prober {
	return &windowsProber{}
}

// FetchFacts 采集远程 Windows 主机信息
func (p *windowsProber) FetchFacts(ctx context.Context, target Target) (*FactSet, error) {
	client, err := dialSSH(ctx, target)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	facts := &FactSet{
		OSType: strPtr("Windows"),
	}

	if out, err := runCommand(client, "hostname"); err == nil {
		facts.Hostname = strPtr(strings.TrimSpace(out))
	}
	if out, err := powershell(client, "(Get-CimInstance Win32_OperatingSystem).Version"); err == nil {
		facts.OSVersion = strPtr(strings.TrimSpace(out))
	}
	if out, err := powershell(client, "(Get-CimInstance Win32_ComputerSystem).NumberOfLogicalProcessors"); err == nil {
		if cores, err := strconv.Atoi(strings.TrimSpace(out)); err == nil && cores > 0 {
			facts.CPUCores = intPtr(cores)
		}
	}
	if out, err := powershell(client, "(Get-CimInstance Win32_ComputerSystem).TotalPhysicalMemory"); err == nil {
		if b, err := strconv.ParseFloat(strings.TrimSpace(out), 64); err == nil && b > 0 {
			facts.MemoryGB = floatPtr(round2(b / (1 << 30)))
		}
	}
	if out, err := powershell(client, `(Get-CimInstance Win32_LogicalDisk -Filter "DeviceID='C:'").Size`); err == nil {
		if b, err := strconv.ParseFloat(strings.TrimSpace(out), 64); err == nil && b > 0 {
			facts.DiskGB = floatPtr(round2(b / (1 << 30)))
		}
	}
	if out, err := powershell(client,
		"(Get-NetIPAddress -AddressFamily IPv4 | Where-Object {$_.IPAddress -notlike '127.*'} | Select-Object -First 1).IPAddress"); err == nil {
		facts.IPAddress = strPtr(strings.TrimSpace(out))
	}

	facts.Services = p.listeningServices(client)

	return facts, nil
}

// listeningServices 枚举 Windows 上的 TCP 监听端口
func (p *windowsProber) listeningServices(client *ssh.Client) []ServiceFact {
	out, err := powershell(client, "Get-NetTCPConnection -State Listen | Select-Object -ExpandProperty LocalPort")
	if err != nil {
		return nil
	}

	seen := make(map[int]bool)
	var services []ServiceFact
	for _, line := range strings.Split(out, "\n") {
		port, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || port <= 0 || seen[port] {
			continue
		}
		seen[port] = true

		services = append(services, ServiceFact{
			Name:     "unknown",
			Port:     port,
			Protocol: "tcp",
			Status:   models.ServiceStatusRunning,
		})
	}

	return services
}

func powershell(client *ssh.Client, cmd string) (string, error) {
	return runCommand(client, `powershell -NoProfile -Command "`+strings.ReplaceAll(cmd, `"`, "`\"")+`"`)
}
