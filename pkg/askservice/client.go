// Package askservice provides a client for the upstream ask-service that answers
// natural-language questions.
package askservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"lucai-go/internal/config"
	"lucai-go/internal/model"
	"lucai-go/pkg/log"
)

// Client defines the interface for an ask-service client.
type Client interface {
	// Ask 发起一次 POST /ask 调用，成功时原样返回上游的 JSON。
	// 失败时返回 *StatusError（上游返回非 2xx）或 *UnreachableError（网络层失败）。
	Ask(ctx context.Context, req model.AskRequest) (json.RawMessage, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

// NewClient 创建一个新的 ask-service 客户端，超时时间来自配置。
func NewClient(cfg config.AskServiceConfig) Client {
	return &httpClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Ask 只调用一次上游，不做重试。
func (c *httpClient) Ask(ctx context.Context, req model.AskRequest) (json.RawMessage, error) {
	reqBytes, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ask request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ask", bytes.NewReader(reqBytes))
	if err != nil {
		return nil, &UnreachableError{Err: fmt.Errorf("failed to create ask request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		log.Errorf("[AskClient] 调用 ask-service 失败, error: %v", err)
		return nil, &UnreachableError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Errorf("[AskClient] 读取 ask-service 响应失败, error: %v", err)
		return nil, &UnreachableError{Err: fmt.Errorf("failed to read ask response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warnf("[AskClient] ask-service 返回非 2xx 状态码: %s", resp.Status)
		return nil, &StatusError{StatusCode: resp.StatusCode, Detail: detailFromBody(payload)}
	}

	if !json.Valid(payload) {
		log.Errorf("[AskClient] ask-service 返回了无法解析的成功响应, status: %s", resp.Status)
		return nil, &UnreachableError{Err: fmt.Errorf("ask-service returned invalid JSON with status %d", resp.StatusCode)}
	}
	return json.RawMessage(payload), nil
}

// detailFromBody 优先把上游错误体当作 JSON，失败时回退为 JSON 字符串形式的原始文本。
func detailFromBody(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	text, _ := json.Marshal(string(body))
	return json.RawMessage(text)
}
