package https_server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"venturedeck/internal/config"
	"venturedeck/internal/dao/mysql/mysqltest"
	myredis "venturedeck/internal/dao/redis"
	ws "venturedeck/internal/gateway/websocket"
	"venturedeck/internal/handler"
	"venturedeck/internal/https_server"
	"venturedeck/internal/infrastructure/storage"
	"venturedeck/internal/service"
	"venturedeck/pkg/errorx"
	"venturedeck/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiEnvelope struct {
	Code int             `json:"code"`
	Msg  any             `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type captureMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *captureMailer) Send(_ context.Context, to, _, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to+"|"+body)
	return nil
}

type testServer struct {
	*httptest.Server
	client *http.Client
	mailer *captureMailer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwt.Init("test-secret", 15, 168)

	avatarDir := t.TempDir()
	conf := &config.Config{}
	conf.LocalPath = avatarDir
	conf.IgnoredRequestDays = 30
	conf.ResetURL = "http://app.test/reset"

	store, err := storage.NewLocalStorage(avatarDir, "http://app.test")
	require.NoError(t, err)

	hub := ws.NewHub()
	mailer := &captureMailer{}
	svcs := service.NewServices(conf, service.Deps{
		Repos:     mysqltest.NewRepositories(t),
		Cache:     myredis.NewMemoryCache(),
		Publisher: hub,
		Mailer:    mailer,
		Storage:   store,
	})

	engine := https_server.Init(handler.NewHandlers(svcs, hub), conf)
	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)
	return &testServer{Server: server, client: &http.Client{Timeout: 5 * time.Second}, mailer: mailer}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) apiEnvelope {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env apiEnvelope
	require.NoError(t, json.Unmarshal(raw, &env), "status=%d body=%q", resp.StatusCode, string(raw))
	return env
}

func (s *testServer) ok(t *testing.T, method, path string, body any, token string, out any) {
	t.Helper()
	env := s.do(t, method, path, body, token)
	require.Equal(t, errorx.CodeSuccess, env.Code, "%s %s msg=%v", method, path, env.Msg)
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
}

type founder struct {
	UserId      string `json:"user_id"`
	AccessToken string `json:"access_token"`
}

func (s *testServer) signup(t *testing.T, email, fullName string) founder {
	t.Helper()
	var f founder
	s.ok(t, http.MethodPost, "/auth/signup", map[string]any{"email": email, "password": "password123"}, "", &f)
	s.ok(t, http.MethodPost, "/profile/update", map[string]any{
		"full_name":      fullName,
		"bio":            "Second-time founder",
		"startup_vision": "Carbon accounting for SMBs",
		"skills":         "go, postgres",
		"cofounder_type": "Technical",
		"university":     "Stanford",
	}, f.AccessToken, nil)
	return f
}

func (s *testServer) dial(t *testing.T, path, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(s.URL, "http") + path
	if strings.Contains(path, "?") {
		url += "&token=" + token
	} else {
		url += "?token=" + token
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) ws.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var evt ws.Event
	require.NoError(t, conn.ReadJSON(&evt))
	return evt
}

func TestPrivateRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/profile/me", "/directory/list", "/contact/list", "/conversation/list", "/notification/list"} {
		resp, err := s.client.Get(s.URL + path)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	resp, err := s.client.Get(s.URL + "/ping")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSignupValidationAndDuplicate(t *testing.T) {
	s := newTestServer(t)

	env := s.do(t, http.MethodPost, "/auth/signup", map[string]any{"email": "not-an-email", "password": "short"}, "")
	assert.Equal(t, errorx.CodeInvalidParam, env.Code)

	s.ok(t, http.MethodPost, "/auth/signup", map[string]any{"email": "ada@example.com", "password": "password123"}, "", nil)
	env = s.do(t, http.MethodPost, "/auth/signup", map[string]any{"email": "ADA@example.com", "password": "password123"}, "")
	assert.Equal(t, errorx.CodeUserExist, env.Code)

	env = s.do(t, http.MethodPost, "/auth/login", map[string]any{"email": "ada@example.com", "password": "wrong-password"}, "")
	assert.Equal(t, errorx.CodeInvalidPassword, env.Code)
}

func TestContactFlowWithRealtimeNotification(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice@example.com", "Alice")
	bob := s.signup(t, "bob@example.com", "Bob")

	var dir []map[string]any
	s.ok(t, http.MethodGet, "/directory/list?query=bob", nil, alice.AccessToken, &dir)
	require.Len(t, dir, 1)
	assert.Equal(t, bob.UserId, dir[0]["user_id"])

	bobNotifications := s.dial(t, "/ws/notification", bob.AccessToken)

	var rel struct {
		State     string `json:"state"`
		RequestId string `json:"request_id"`
	}
	s.ok(t, http.MethodPost, "/contact/sendRequest", map[string]any{"target_id": bob.UserId}, alice.AccessToken, &rel)
	assert.Equal(t, "pending", rel.State)
	require.NotEmpty(t, rel.RequestId)

	evt := readEvent(t, bobNotifications)
	assert.Equal(t, ws.TypeNotificationCreated, evt.Type)
	assert.Contains(t, string(evt.Data), "/founder/"+alice.UserId)

	env := s.do(t, http.MethodPost, "/contact/sendRequest", map[string]any{"target_id": bob.UserId}, alice.AccessToken)
	assert.Equal(t, errorx.CodeConflict, env.Code)

	// 只有接收方可以接受
	env = s.do(t, http.MethodPost, "/contact/acceptRequest", map[string]any{"request_id": rel.RequestId}, alice.AccessToken)
	assert.NotEqual(t, errorx.CodeSuccess, env.Code)

	var incoming []map[string]any
	s.ok(t, http.MethodGet, "/contact/requestList", nil, bob.AccessToken, &incoming)
	require.Len(t, incoming, 1)

	s.ok(t, http.MethodPost, "/contact/acceptRequest", map[string]any{"request_id": rel.RequestId}, bob.AccessToken, nil)

	s.ok(t, http.MethodGet, "/contact/relationship?target_id="+bob.UserId, nil, alice.AccessToken, &rel)
	assert.Equal(t, "connected", rel.State)

	var contacts []map[string]any
	s.ok(t, http.MethodGet, "/contact/list", nil, bob.AccessToken, &contacts)
	require.Len(t, contacts, 1)
	assert.Equal(t, alice.UserId, contacts[0]["user_id"])

	var unread struct {
		Count int64 `json:"count"`
	}
	s.ok(t, http.MethodGet, "/notification/unreadCount", nil, alice.AccessToken, &unread)
	assert.Equal(t, int64(1), unread.Count)
	s.ok(t, http.MethodPost, "/notification/markAllRead", nil, alice.AccessToken, nil)
	s.ok(t, http.MethodGet, "/notification/unreadCount", nil, alice.AccessToken, &unread)
	assert.Equal(t, int64(0), unread.Count)
}

func TestConversationFlowWithRealtimeMessages(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice@example.com", "Alice")
	bob := s.signup(t, "bob@example.com", "Bob")
	carol := s.signup(t, "carol@example.com", "Carol")

	var conv struct {
		ConversationId string `json:"conversation_id"`
	}
	s.ok(t, http.MethodPost, "/conversation/open", map[string]any{"peer_id": bob.UserId}, alice.AccessToken, &conv)
	require.NotEmpty(t, conv.ConversationId)

	var again struct {
		ConversationId string `json:"conversation_id"`
	}
	s.ok(t, http.MethodPost, "/conversation/open", map[string]any{"peer_id": alice.UserId}, bob.AccessToken, &again)
	assert.Equal(t, conv.ConversationId, again.ConversationId)

	// 非参与者既不能读消息也不能订阅
	env := s.do(t, http.MethodGet, "/message/list?conversation_id="+conv.ConversationId, nil, carol.AccessToken)
	assert.Equal(t, errorx.CodeForbidden, env.Code)

	stream := s.dial(t, "/ws/conversation?conversation_id="+conv.ConversationId, bob.AccessToken)

	s.ok(t, http.MethodPost, "/message/send", map[string]any{
		"conversation_id": conv.ConversationId,
		"content":         "Want to grab coffee?",
	}, alice.AccessToken, nil)

	evt := readEvent(t, stream)
	assert.Equal(t, ws.TypeMessageCreated, evt.Type)
	assert.Contains(t, string(evt.Data), "Want to grab coffee?")

	var inbox []struct {
		ConversationId string `json:"conversation_id"`
		LastMessage    string `json:"last_message"`
		UnreadCount    int64  `json:"unread_count"`
	}
	s.ok(t, http.MethodGet, "/conversation/list", nil, bob.AccessToken, &inbox)
	require.Len(t, inbox, 1)
	assert.Equal(t, "Want to grab coffee?", inbox[0].LastMessage)
	assert.Equal(t, int64(1), inbox[0].UnreadCount)

	var read struct {
		Count int64 `json:"count"`
	}
	s.ok(t, http.MethodPost, "/message/markRead", map[string]any{"conversation_id": conv.ConversationId}, bob.AccessToken, &read)
	assert.Equal(t, int64(1), read.Count)

	evt = readEvent(t, stream)
	assert.Equal(t, ws.TypeMessagesRead, evt.Type)

	s.ok(t, http.MethodGet, "/conversation/list", nil, bob.AccessToken, &inbox)
	assert.Equal(t, int64(0), inbox[0].UnreadCount)
}

func TestPasswordResetFlow(t *testing.T) {
	s := newTestServer(t)
	s.signup(t, "dana@example.com", "Dana")

	s.ok(t, http.MethodPost, "/auth/forgotPassword", map[string]any{"email": "nobody@example.com"}, "", nil)
	s.ok(t, http.MethodPost, "/auth/forgotPassword", map[string]any{"email": "dana@example.com"}, "", nil)

	require.Len(t, s.mailer.sent, 1)
	_, link, found := strings.Cut(s.mailer.sent[0], "http://app.test/reset?token=")
	require.True(t, found)
	token := strings.Fields(link)[0]

	s.ok(t, http.MethodPost, "/auth/resetPassword", map[string]any{"token": token, "password": "new-password-1"}, "", nil)

	env := s.do(t, http.MethodPost, "/auth/resetPassword", map[string]any{"token": token, "password": "new-password-2"}, "")
	assert.Equal(t, errorx.CodeUnauthorized, env.Code)

	s.ok(t, http.MethodPost, "/auth/login", map[string]any{"email": "dana@example.com", "password": "new-password-1"}, "", nil)
}
