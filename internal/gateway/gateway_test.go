package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lucai-go/internal/gateway"
	"lucai-go/pkg/chatclient"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBackend 模拟后端 API 的 /chat 路由，记录收到的问题。
func fakeBackend(t *testing.T, status int, body string) (*httptest.Server, *atomic.Value, *atomic.Int32) {
	t.Helper()
	var lastQuestion atomic.Value
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/api/chat", r.URL.Path)
		var req struct {
			Question string `json:"question"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		lastQuestion.Store(req.Question)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &lastQuestion, &calls
}

func newEngine(backendURL string, allowOrigins ...string) *gin.Engine {
	forwarder := gateway.NewForwarder(backendURL+"/api/", 2*time.Second)
	return gateway.NewRouter(gateway.NewHandler(forwarder, allowOrigins))
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/chat"
}

func post(engine *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestChat_JSONQuestion(t *testing.T) {
	backend, question, _ := fakeBackend(t, http.StatusOK, `{"answer":"7 samples"}`)
	engine := newEngine(backend.URL)

	rec := post(engine, `{"question":"how many samples?"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"answer":"7 samples"}`, rec.Body.String())
	assert.Equal(t, "how many samples?", question.Load())
}

func TestChat_RawTextQuestionIsTrimmed(t *testing.T) {
	backend, question, _ := fakeBackend(t, http.StatusOK, `{}`)
	engine := newEngine(backend.URL)

	rec := post(engine, "  list mixtures \n")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "list mixtures", question.Load())
}

func TestChat_EmptyQuestion(t *testing.T) {
	backend, _, calls := fakeBackend(t, http.StatusOK, `{}`)
	engine := newEngine(backend.URL)

	for _, body := range []string{"", "   ", `{}`, `{"question":""}`, `[1,2]`} {
		rec := post(engine, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"error":"question-required"}`, rec.Body.String(), body)
	}
	assert.EqualValues(t, 0, calls.Load())
}

func TestChat_BackendStatusPassesThrough(t *testing.T) {
	backend, _, _ := fakeBackend(t, http.StatusBadGateway, `{"error":"ask-service-unreachable"}`)
	engine := newEngine(backend.URL)

	rec := post(engine, `{"question":"q"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"ask-service-unreachable"}`, rec.Body.String())
}

func TestChat_NonJSONBackendBody(t *testing.T) {
	backend, _, _ := fakeBackend(t, http.StatusInternalServerError, `<html>oops</html>`)
	engine := newEngine(backend.URL)

	rec := post(engine, `{"question":"q"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
}

func TestChat_BackendUnreachable(t *testing.T) {
	closed := httptest.NewServer(http.NotFoundHandler())
	url := closed.URL
	closed.Close()
	engine := newEngine(url)

	rec := post(engine, `{"question":"q"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"backend-unreachable"}`, rec.Body.String())
}

func TestForwarder_UnreachableError(t *testing.T) {
	closed := httptest.NewServer(http.NotFoundHandler())
	url := closed.URL
	closed.Close()

	_, _, err := gateway.NewForwarder(url, time.Second).Forward(context.Background(), "q")

	assert.ErrorIs(t, err, gateway.ErrBackendUnreachable)
}

func TestHealthzAndUnknownRoute(t *testing.T) {
	engine := newEngine("http://127.0.0.1:1")

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebSocketRelay(t *testing.T) {
	backend, question, calls := fakeBackend(t, http.StatusOK, `{"answer":"3"}`)
	gw := httptest.NewServer(newEngine(backend.URL))
	defer gw.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := chatclient.DialWS(ctx, wsURL(gw))
	require.NoError(t, err)
	defer client.Close()

	reply, err := client.Ask(ctx, "  count projects ")
	require.NoError(t, err)
	assert.JSONEq(t, `{"answer":"3"}`, reply)
	assert.Equal(t, "count projects", question.Load())

	// 空问题不会转发到后端
	reply, err = client.Ask(ctx, "   ")
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"question-required"}`, reply)
	assert.EqualValues(t, 1, calls.Load())
}

func TestHTTPClientAgainstGateway(t *testing.T) {
	backend, _, _ := fakeBackend(t, http.StatusNotFound, `{"error":"User not found"}`)
	gw := httptest.NewServer(newEngine(backend.URL))
	defer gw.Close()

	reply, err := chatclient.NewClient(gw.URL, time.Second).Ask(context.Background(), "who is user 9?")

	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"User not found"}`, reply)
}


func TestHTTPClientSendsJSONLookingQuestionsAsText(t *testing.T) {
	backend, question, calls := fakeBackend(t, http.StatusOK, `{"answer":"ok"}`)
	gw := httptest.NewServer(newEngine(backend.URL))
	defer gw.Close()
	client := chatclient.NewClient(gw.URL, time.Second)

	for _, q := range []string{"42", "2024", "true", `"hello"`} {
		reply, err := client.Ask(context.Background(), q)
		require.NoError(t, err, q)
		assert.JSONEq(t, `{"answer":"ok"}`, reply, q)
		assert.Equal(t, q, question.Load(), q)
	}
	assert.EqualValues(t, 4, calls.Load())
}

func TestWebSocketOriginAllowList(t *testing.T) {
	backend, _, _ := fakeBackend(t, http.StatusOK, `{}`)
	gw := httptest.NewServer(newEngine(backend.URL, "http://app.lucai.test"))
	defer gw.Close()

	allowed := http.Header{"Origin": []string{"http://app.lucai.test"}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(gw), allowed)
	require.NoError(t, err)
	conn.Close()

	denied := http.Header{"Origin": []string{"http://evil.test"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(gw), denied)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestWebSocketOversizedFrameClosesConnection(t *testing.T) {
	backend, _, calls := fakeBackend(t, http.StatusOK, `{}`)
	gw := httptest.NewServer(newEngine(backend.URL))
	defer gw.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(gw), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(strings.Repeat("a", 70<<10))))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()

	// 服务端返回 1009 后关闭连接；未读完的数据可能使客户端直接看到连接重置
	assert.Error(t, err)
	assert.EqualValues(t, 0, calls.Load())
}
