// Package apperr 定义账本边界统一的错误分类
// 分类决定调用方的处理方式：校验/未找到/越权不可重试，冲突重试读写步骤，依赖错误退避重试
package apperr

import (
	"errors"
	"fmt"
)

// Kind 错误分类
type Kind int

const (
	KindValidation Kind = iota + 1 // 输入不合法
	KindNotFound                   // 引用的活动/用户/里程碑不存在
	KindAuthorization              // 非创建者执行创建者专属操作
	KindConflict                   // 去重键唯一性冲突，说明存在并发竞争
	KindDependency                 // 预言机/ID生成器/存储不可用
)

// Error 带分类的业务错误
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation 构造校验错误
func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound 构造未找到错误
func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Authorization 构造越权错误
func Authorization(format string, args ...interface{}) error {
	return &Error{Kind: KindAuthorization, Msg: fmt.Sprintf(format, args...)}
}

// Conflict 构造冲突错误
func Conflict(msg string, err error) error {
	return &Error{Kind: KindConflict, Msg: msg, Err: err}
}

// Dependency 构造依赖错误
func Dependency(msg string, err error) error {
	return &Error{Kind: KindDependency, Msg: msg, Err: err}
}

// KindOf 返回错误的分类，非业务错误一律视为依赖错误
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindDependency
}

// IsKind 判断错误是否属于指定分类
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
