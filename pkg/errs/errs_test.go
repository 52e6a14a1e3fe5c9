package errs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestErrorKinds 错误类型判定
func TestErrorKinds(t *testing.T) {
	v := NewValidation("字段校验失败", "hostname", "status")
	if !IsValidation(v) {
		t.Error("期望识别为校验错误")
	}
	if IsNotFound(v) || IsUnreachable(v) {
		t.Error("校验错误不应命中其他类型")
	}

	n := NewNotFound("服务器", "42")
	if !IsNotFound(n) {
		t.Error("期望识别为未找到错误")
	}

	u := NewUnreachable("192.168.1.10", errors.New("connection refused"))
	if !IsUnreachable(u) {
		t.Error("期望识别为不可达错误")
	}

	// 包装后仍可识别
	wrapped := fmt.Errorf("执行失败: %w", v)
	if !IsValidation(wrapped) {
		t.Error("期望包装后的校验错误仍可识别")
	}
}

// TestValidationMessage 校验错误信息包含字段名
func TestValidationMessage(t *testing.T) {
	err := NewValidation("字段校验失败", "hostname", "ipAddress")
	msg := err.Error()
	for _, field := range []string{"hostname", "ipAddress"} {
		if !strings.Contains(msg, field) {
			t.Errorf("期望错误信息包含字段 %s，实际为 %q", field, msg)
		}
	}
}
