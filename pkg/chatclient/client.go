// Package chatclient provides a chat client for the browser-facing gateway and
// the transcript model that the terminal UI renders.
package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Asker sends one question and returns the text of the reply.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Client posts questions to the gateway's /api/chat route as {"question": q}.
// A JSON envelope keeps questions such as "42" or "true" from being read as
// JSON values instead of text.
type Client struct {
	chatURL string
	client  *http.Client
}

// NewClient creates a Client for the gateway at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		chatURL: strings.TrimRight(baseURL, "/") + "/api/chat",
		client:  &http.Client{Timeout: timeout},
	}
}

// Ask returns the response body text whatever the status code; only transport
// failures are reported as errors.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	reqBytes, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatURL, bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read gateway response: %w", err)
	}
	return string(body), nil
}

// WSClient asks questions over the gateway's websocket relay.
type WSClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// DialWS opens a websocket connection to url (ws:// or wss://).
func DialWS(ctx context.Context, url string) (*WSClient, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}
	return &WSClient{conn: conn}, nil
}

// Ask writes the question as a text frame and waits for the reply frame.
func (c *WSClient) Ask(ctx context.Context, question string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetReadDeadline(deadline)
		defer c.conn.SetReadDeadline(time.Time{})
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, []byte(question)); err != nil {
		return "", fmt.Errorf("failed to send question: %w", err)
	}
	var frame Frame
	if err := c.conn.ReadJSON(&frame); err != nil {
		return "", fmt.Errorf("failed to read reply: %w", err)
	}
	return string(frame.Body), nil
}

// Close sends a close frame and closes the connection.
func (c *WSClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}
