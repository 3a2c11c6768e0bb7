package askservice

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnreachable 表示无法从 ask-service 获得可用响应（连接拒绝、DNS、超时等）。
var ErrUnreachable = errors.New("ask-service unreachable")

// UnreachableError 包装了网络层的底层错误。
type UnreachableError struct {
	Err error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("%s: %v", ErrUnreachable, e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// Is 让 errors.Is(err, ErrUnreachable) 成立。
func (e *UnreachableError) Is(target error) bool { return target == ErrUnreachable }

// StatusError 表示上游返回了非 2xx 状态码。Detail 为上游响应体（JSON 或 JSON 字符串）。
type StatusError struct {
	StatusCode int
	Detail     json.RawMessage
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ask-service returned status %d: %s", e.StatusCode, e.Detail)
}
