package model

import "encoding/json"

// ChatRequest 是前端提交给聊天代理的请求体。
// 字段保留原始 JSON，question 的类型校验与 sql_only 的真值转换在 service 层完成。
type ChatRequest struct {
	Question json.RawMessage `json:"question"`
	SQLOnly  json.RawMessage `json:"sql_only"`
}

// AskRequest 是转发给 ask-service 的请求体。
type AskRequest struct {
	Question string `json:"question"`
	SQLOnly  bool   `json:"sql_only"`
}
