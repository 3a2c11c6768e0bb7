// Package service 包含了应用的业务逻辑层。
package service

// ValidationError 表示请求输入缺失或格式错误，对应 HTTP 400。
// 校验失败的请求不会触发任何上游调用。
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError 表示引用的实体不存在，对应 HTTP 404。
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// 对外暴露的错误消息，与既有前端约定保持一致。
const (
	MsgQuestionRequired = "question is required"
	MsgInvalidUserID    = "Invalid user id"
	MsgUserNotFound     = "User not found"
)
