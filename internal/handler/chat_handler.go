package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"lucai-go/internal/model"
	"lucai-go/internal/service"
	"lucai-go/pkg/log"
)

// ChatHandler 负责把前端的问题代理到 ask-service。
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler 创建一个新的 ChatHandler。
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Ask 处理 POST {prefix}/chat。
// 无法解析为 JSON 对象的请求体按“缺少 question”处理，由 service 层返回 400。
func (h *ChatHandler) Ask(c *gin.Context) {
	var req model.ChatRequest
	body, err := c.GetRawData()
	if err != nil {
		respondError(c, err)
		return
	}
	if err := json.Unmarshal(body, &req); err != nil {
		log.Warnf("Ask: Invalid request payload, error: %v", err)
		req = model.ChatRequest{}
	}

	payload, err := h.chatService.Ask(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	// 成功响应原样透传，不做任何结构校验或转换
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
