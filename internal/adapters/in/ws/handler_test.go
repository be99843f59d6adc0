package ws_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dispatch/internal/adapters/in/ws"
	"dispatch/internal/adapters/out/realtime"
	"dispatch/internal/core/domain/model/session"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthenticator accepts one token and maps it to a fixed identity.
type stubAuthenticator struct {
	token    string
	identity string
}

func (a stubAuthenticator) Authenticate(_ context.Context, _ session.Role, credential string) (string, error) {
	if credential != a.token {
		return "", session.ErrAuthenticationFailed
	}
	return a.identity, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) (*httptest.Server, *realtime.InMemoryRegistry) {
	t.Helper()

	registry := realtime.NewInMemoryRegistry()
	handler := ws.NewHandler(registry, stubAuthenticator{token: "secret", identity: "courier-3"}, discardLogger())

	e := echo.New()
	e.GET("/ws", handler.Handle)

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return server, registry
}

func wsURL(server *httptest.Server, query string) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?" + query
}

func TestHandler_RejectsUnknownRole(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/ws?role=superuser")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_RejectsBadCredential(t *testing.T) {
	server, registry := newTestServer(t)

	resp, err := http.Get(server.URL + "/ws?role=delivery&token=wrong")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, registry.FindByRole(session.RoleDelivery))
}

func TestHandler_RegistersAuthenticatedConnection(t *testing.T) {
	server, registry := newTestServer(t)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(server, "role=delivery&token=secret"), nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	// Scope defaults to the authenticated identity.
	waitForConnection(t, func() bool {
		_, ok := registry.FindByRoleAndScope(session.RoleDelivery, "courier-3")
		return ok
	})
}

func TestHandler_BrowserConnectsWithoutCredential(t *testing.T) {
	server, registry := newTestServer(t)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(server, "role=browser&scope=user-9"), nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	waitForConnection(t, func() bool {
		_, ok := registry.FindByRoleAndScope(session.RoleBrowser, "user-9")
		return ok
	})
}

func TestHandler_DeliversEnvelopeEndToEnd(t *testing.T) {
	server, registry := newTestServer(t)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(server, "role=customer&scope=order-1&token=secret"), nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	waitForConnection(t, func() bool {
		_, ok := registry.FindByRoleAndScope(session.RoleCustomer, "order-1")
		return ok
	})

	target, ok := registry.FindByRoleAndScope(session.RoleCustomer, "order-1")
	require.True(t, ok)
	target.Send(session.NewEnvelope(session.EventOrderUpdate, map[string]any{"id": "order-1"}, "on its way"))

	var received session.Envelope
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&received))

	assert.Equal(t, session.EventOrderUpdate, received.Type)
	assert.Equal(t, "on its way", received.Message)
	assert.NotEmpty(t, received.Timestamp)
}

func TestHandler_DisconnectUnregisters(t *testing.T) {
	server, registry := newTestServer(t)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(server, "role=chef&scope=chef-7&token=secret"), nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	waitForConnection(t, func() bool {
		_, ok := registry.FindByRoleAndScope(session.RoleChef, "chef-7")
		return ok
	})

	require.NoError(t, conn.Close())

	waitForConnection(t, func() bool {
		_, ok := registry.FindByRoleAndScope(session.RoleChef, "chef-7")
		return !ok
	})
}

func waitForConnection(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
