package probe

import (
	"context"
	"strconv"
	"strings"
	"time"

	"cmdbHub/internal/global"
	"cmdbHub/internal/models"
	"cmdbHub/pkg/errs"

	"github.com/go-ping/ping"
	"github.com/zeromicro/go-zero/core/logc"
	"golang.org/x/crypto/ssh"
)

// sshProber 远程 POSIX 主机探测实现
// 通过 SSH 执行常规系统命令采集信息，命令输出解析失败只缺失对应字段
type sshProber struct{}

// NewSSHProber 创建远程 POSIX 探测器
func NewSSHProber() Prober {
	return &sshProber{}
}

// FetchFacts 采集远程主机信息
// 目标不可达（拨号失败/超时/凭据错误）返回 UnreachableTargetError
func (p *sshProber) FetchFacts(ctx context.Context, target Target) (*FactSet, error) {
	client, err := dialSSH(ctx, target)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	facts := &FactSet{}

	if out, err := runCommand(client, "hostname"); err == nil {
		facts.Hostname = strPtr(strings.TrimSpace(out))
	}
	if out, err := runCommand(client, "uname -s"); err == nil {
		facts.OSType = strPtr(strings.TrimSpace(out))
	}
	if out, err := runCommand(client, "uname -r"); err == nil {
		facts.OSVersion = strPtr(strings.TrimSpace(out))
	}
	if out, err := runCommand(client, "hostname -i 2>/dev/null | awk '{print $1}'"); err == nil {
		ip := strings.TrimSpace(out)
		if ip != "" && ip != "127.0.0.1" {
			facts.IPAddress = strPtr(ip)
		}
	}
	if out, err := runCommand(client, "nproc"); err == nil {
		if cores, err := strconv.Atoi(strings.TrimSpace(out)); err == nil && cores > 0 {
			facts.CPUCores = intPtr(cores)
		}
	}
	if out, err := runCommand(client, "awk '/MemTotal/ {print $2}' /proc/meminfo"); err == nil {
		if kb, err := strconv.ParseFloat(strings.TrimSpace(out), 64); err == nil && kb > 0 {
			facts.MemoryGB = floatPtr(round2(kb / (1 << 20)))
		}
	}
	if out, err := runCommand(client, "df -k / | awk 'NR==2 {print $2}'"); err == nil {
		if kb, err := strconv.ParseFloat(strings.TrimSpace(out), 64); err == nil && kb > 0 {
			facts.DiskGB = floatPtr(round2(kb / (1 << 20)))
		}
	}

	facts.Services = p.listeningServices(client)

	return facts, nil
}

// listeningServices 获取远程主机监听端口
func (p *sshProber) listeningServices(client *ssh.Client) []ServiceFact {
	out, err := runCommand(client, "ss -lnt 2>/dev/null | tail -n +2")
	if err != nil {
		return nil
	}
	return parseListeningPorts(out)
}

// parseListeningPorts 解析 ss -lnt 的输出，重复端口只保留一条
func parseListeningPorts(out string) []ServiceFact {
	seen := make(map[int]bool)
	var services []ServiceFact
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		// 本地地址列形如 0.0.0.0:22 或 [::]:22
		local := fields[3]
		idx := strings.LastIndex(local, ":")
		if idx < 0 {
			continue
		}
		port, err := strconv.Atoi(local[idx+1:])
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

// dialSSH 建立SSH连接，受单目标超时约束
func dialSSH(ctx context.Context, target Target) (*ssh.Client, error) {
	timeout := time.Duration(global.Config.Discovery.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// ICMP 探测仅作为前置观测，很多环境禁 ping 但 SSH 可达
	if pinger, err := ping.NewPinger(target.Host); err == nil {
		pinger.Count = 1
		pinger.Timeout = 2 * time.Second
		pinger.SetPrivileged(false)
		if err := pinger.Run(); err == nil && pinger.Statistics().PacketsRecv == 0 {
			logc.Infof(ctx, "目标 %s ICMP 不可达, 继续尝试 SSH", target.Host)
		}
	}

	cfg := &ssh.ClientConfig{
		User: target.User,
		Auth: []ssh.AuthMethod{
			ssh.Password(target.Password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}

	type dialResult struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialResult, 1)
	go func() {
		client, err := ssh.Dial("tcp", target.sshAddr(global.Config.Discovery.SSHPort), cfg)
		ch <- dialResult{client: client, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, errs.NewUnreachable(target.Addr(), ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, errs.NewUnreachable(target.Addr(), r.err)
		}
		return r.client, nil
	}
}

// runCommand 在一个新会话中执行命令并返回标准输出
func runCommand(client *ssh.Client, cmd string) (string, error) {
	session, err := client.NewSession()
	if err != nil {
		return "", err
	}
	defer session.Close()

	out, err := session.Output(cmd)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
