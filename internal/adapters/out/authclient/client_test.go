package authclient_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"dispatch/internal/adapters/out/authclient"
	"dispatch/internal/core/domain/model/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Authenticate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/auth/verify", r.URL.Path)

		var body struct {
			Role  string `json:"role"`
			Token string `json:"token"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body.Token != "valid-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"identity": "courier-3"})
	}))
	defer server.Close()

	client := authclient.NewClient(server.URL, discardLogger())

	t.Run("valid credential resolves identity", func(t *testing.T) {
		identity, err := client.Authenticate(t.Context(), session.RoleDelivery, "valid-token")
		require.NoError(t, err)
		assert.Equal(t, "courier-3", identity)
	})

	t.Run("rejected credential", func(t *testing.T) {
		_, err := client.Authenticate(t.Context(), session.RoleDelivery, "stolen-token")
		require.ErrorIs(t, err, session.ErrAuthenticationFailed)
	})

	t.Run("empty credential short-circuits", func(t *testing.T) {
		_, err := client.Authenticate(t.Context(), session.RoleAdmin, "")
		require.ErrorIs(t, err, session.ErrAuthenticationFailed)
	})
}

func TestClient_Authenticate_ServiceDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := authclient.NewClient(server.URL, discardLogger())

	_, err := client.Authenticate(t.Context(), session.RoleChef, "any")
	require.ErrorIs(t, err, session.ErrAuthenticationFailed)
}
