package service

import (
	"bytes"
	"context"
	"encoding/json"

	"lucai-go/internal/model"
	"lucai-go/pkg/askservice"
)

// ChatService 定义了聊天代理的接口。
type ChatService interface {
	// Ask 校验请求并把问题转发给 ask-service，成功时原样返回上游 JSON。
	Ask(ctx context.Context, req model.ChatRequest) (json.RawMessage, error)
}

type chatService struct {
	askClient askservice.Client
}

// NewChatService 创建一个新的 ChatService 实例。
func NewChatService(askClient askservice.Client) ChatService {
	return &chatService{askClient: askClient}
}

// Ask 是无状态的转发：不缓存、不去重、不重试，每个合法请求只发起一次上游调用。
func (s *chatService) Ask(ctx context.Context, req model.ChatRequest) (json.RawMessage, error) {
	question, ok := questionFrom(req.Question)
	if !ok {
		return nil, &ValidationError{Message: MsgQuestionRequired}
	}
	return s.askClient.Ask(ctx, model.AskRequest{
		Question: question,
		SQLOnly:  truthy(req.SQLOnly),
	})
}

// questionFrom 只接受非空的 JSON 字符串。
func questionFrom(raw json.RawMessage) (string, bool) {
	var question string
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	if err := json.Unmarshal(trimmed, &question); err != nil || question == "" {
		return "", false
	}
	return question, true
}

// truthy 按真值语义把任意 JSON 值转换为布尔值：
// false、0、""、null 与缺省为假，其余值（包括 "false"、[] 和 {}）为真。
func truthy(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	var v interface{}
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}
