package gateway

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"lucai-go/pkg/chatclient"
	"lucai-go/pkg/log"
)

var (
	errQuestionRequired = json.RawMessage(`{"error":"question-required"}`)
	errBackendDown      = json.RawMessage(`{"error":"backend-unreachable"}`)
)

// maxFrameBytes 限制单个 websocket 帧的大小，超出时连接被关闭。
const maxFrameBytes = 64 << 10

// Handler 负责处理浏览器发来的聊天请求。
type Handler struct {
	forwarder *Forwarder
	upgrader  websocket.Upgrader
}

// NewHandler 创建一个新的 Handler。
// allowOrigins 与后端的 CORS 列表相同：为空时接受任意来源的 websocket 握手，
// 否则只接受列表中的 Origin（没有 Origin 头的非浏览器客户端始终放行）。
func NewHandler(forwarder *Forwarder, allowOrigins []string) *Handler {
	allowed := make(map[string]struct{}, len(allowOrigins))
	for _, origin := range allowOrigins {
		allowed[origin] = struct{}{}
	}
	return &Handler{
		forwarder: forwarder,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if len(allowed) == 0 || origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

// questionFromBody 优先按 JSON {question} 解析；请求体不是 JSON 时把去掉首尾空白的原始文本当作问题。
func questionFromBody(body []byte) string {
	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}
	obj, ok := payload.(map[string]interface{})
	if !ok {
		return ""
	}
	question, _ := obj["question"].(string)
	return question
}

// Chat 处理 POST /api/chat，状态码与响应体原样透传自后端。
func (h *Handler) Chat(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		log.Warnf("Chat: failed to read request body: %v", err)
		body = nil
	}
	question := questionFromBody(body)
	if question == "" {
		c.Data(http.StatusBadRequest, "application/json; charset=utf-8", errQuestionRequired)
		return
	}

	status, payload, err := h.forwarder.Forward(c.Request.Context(), question)
	if err != nil {
		log.Error("[gateway/api/chat] backend error", err)
		c.Data(http.StatusBadGateway, "application/json; charset=utf-8", errBackendDown)
		return
	}
	c.Data(status, "application/json; charset=utf-8", payload)
}

// WebSocket 处理 GET /ws/chat：每个文本帧是一个问题，每个问题回写一帧 Frame。
// 连接上不保存任何会话状态。
func (h *Handler) WebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket 升级失败", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxFrameBytes)

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warnf("从 WebSocket 读取消息失败: %v", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		frame := h.answer(c, strings.TrimSpace(string(message)))
		if err := conn.WriteJSON(frame); err != nil {
			log.Warnf("向 WebSocket 写入消息失败: %v", err)
			return
		}
	}
}

func (h *Handler) answer(c *gin.Context, question string) chatclient.Frame {
	if question == "" {
		return chatclient.Frame{Status: http.StatusBadRequest, Body: errQuestionRequired}
	}
	status, payload, err := h.forwarder.Forward(c.Request.Context(), question)
	if err != nil {
		log.Error("[gateway/ws/chat] backend error", err)
		return chatclient.Frame{Status: http.StatusBadGateway, Body: errBackendDown}
	}
	return chatclient.Frame{Status: status, Body: payload}
}
