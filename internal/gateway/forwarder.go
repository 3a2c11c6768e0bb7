// Package gateway 实现面向浏览器的聊天入口：HTTP 路由与 websocket 转发。
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrBackendUnreachable 表示无法连接后端 API。
var ErrBackendUnreachable = errors.New("backend unreachable")

// Forwarder 把问题转发到后端的 /chat 路由。
type Forwarder struct {
	chatURL string
	client  *http.Client
}

// NewForwarder 创建一个 Forwarder。backendURL 末尾的斜杠会被去掉。
func NewForwarder(backendURL string, timeout time.Duration) *Forwarder {
	return &Forwarder{
		chatURL: strings.TrimRight(backendURL, "/") + "/chat",
		client:  &http.Client{Timeout: timeout},
	}
}

// Forward 发送 {"question": q} 并返回后端的状态码与 JSON 响应体。
// 后端响应体不是合法 JSON 时返回 {}。
func (f *Forwarder) Forward(ctx context.Context, question string) (int, json.RawMessage, error) {
	reqBytes, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.chatURL, bytes.NewReader(reqBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || !json.Valid(body) {
		return resp.StatusCode, json.RawMessage(`{}`), nil
	}
	return resp.StatusCode, json.RawMessage(body), nil
}
