package probe

import "testing"

// TestParseListeningPorts 解析 ss -lnt 输出
func TestParseListeningPorts(t *testing.T) {
	out := `LISTEN 0      128          0.0.0.0:22        0.0.0.0:*
LISTEN 0      511          0.0.0.0:80        0.0.0.0:*
LISTEN 0      511             [::]:80           [::]:*
LISTEN 0      70         127.0.0.1:3306      0.0.0.0:*
这一行不是合法输出
`

	services := parseListeningPorts(out)
	if len(services) != 3 {
		t.Fatalf("期望解析出 3 个端口，实际 %d 个", len(services))
	}

	ports := make(map[int]bool)
	for _, svc := range services {
		ports[svc.Port] = true
		if svc.Protocol != "tcp" {
			t.Errorf("期望协议为 tcp，实际 %s", svc.Protocol)
		}
	}
	for _, want := range []int{22, 80, 3306} {
		if !ports[want] {
			t.Errorf("期望端口 %d 被解析出来", want)
		}
	}
}

// TestProberFor 目标类型路由
func TestProberFor(t *testing.T) {
	for _, kind := range []string{TargetKindLocal, TargetKindSSH, TargetKindWindows} {
		if _, err := ProberFor(Target{Kind: kind}); err != nil {
			t.Errorf("期望目标类型 %s 有对应探测器，实际报错: %v", kind, err)
		}
	}

	if _, err := ProberFor(Target{Kind: "carrier-pigeon"}); err == nil {
		t.Error("期望未知目标类型被拒绝")
	}
}

// TestTargetAddr 目标地址展示与SSH拨号地址
func TestTargetAddr(t *testing.T) {
	local := Target{Kind: TargetKindLocal}
	if local.Addr() != "localhost" {
		t.Errorf("期望本机目标地址为 localhost，实际 %s", local.Addr())
	}

	remote := Target{Kind: TargetKindSSH, Host: "10.0.0.1"}
	if got := remote.sshAddr(0); got != "10.0.0.1:22" {
		t.Errorf("期望缺省端口回退到 22，实际 %s", got)
	}
	if got := remote.sshAddr(2222); got != "10.0.0.1:2222" {
		t.Errorf("期望使用配置端口 2222，实际 %s", got)
	}

	explicit := Target{Kind: TargetKindSSH, Host: "10.0.0.1", Port: 26}
	if got := explicit.sshAddr(22); got != "10.0.0.1:26" {
		t.Errorf("期望目标自带端口优先，实际 %s", got)
	}
}
