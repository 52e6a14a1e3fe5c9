package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError 输入校验错误
// Fields 列出出错的字段，调用方可直接返回给前端
type ValidationError struct {
	Fields []string
	Msg    string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s, 字段: %s", e.Msg, strings.Join(e.Fields, ", "))
}

// NewValidation 创建校验错误
func NewValidation(msg string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Msg: msg}
}

// NotFoundError 引用的实体不存在
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s 不存在: %s", e.Resource, e.Key)
}

// NewNotFound 创建不存在错误
func NewNotFound(resource, key string) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

// UnreachableTargetError 发现目标不可达（超时 / 凭据失败 / 网络不通）
// 仅记录到目标维度，不会向上终止整个批次
type UnreachableTargetError struct {
	Target string
	Cause  error
}

func (e *UnreachableTargetError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("目标不可达: %s", e.Target)
	}
	return fmt.Sprintf("目标不可达: %s, 原因: %s", e.Target, e.Cause.Error())
}

func (e *UnreachableTargetError) Unwrap() error {
	return e.Cause
}

// NewUnreachable 创建目标不可达错误
func NewUnreachable(target string, cause error) *UnreachableTargetError {
	return &UnreachableTargetError{Target: target, Cause: cause}
}

// StoreError 底层存储事务失败，事务内的写入已整体回滚
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("存储操作失败: %s, err: %s", e.Op, e.Err.Error())
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStore 创建存储错误
func NewStore(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// IsValidation 判断是否为校验错误
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsNotFound 判断是否为不存在错误
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsUnreachable 判断是否为目标不可达错误
func IsUnreachable(err error) bool {
	var e *UnreachableTargetError
	return errors.As(err, &e)
}
