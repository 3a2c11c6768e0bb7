package chatclient

import "encoding/json"

// Frame 是网关在 websocket 上回写的一帧：后端状态码加上原样的响应体。
type Frame struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}
