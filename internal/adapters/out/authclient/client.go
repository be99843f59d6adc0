// Package authclient verifies handshake credentials against the external
// auth collaborator. Token issuance and storage live in that service; this
// client only asks "who is this token, for this role".
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"dispatch/internal/core/domain/model/session"
)

// Client implements ports.Authenticator over the collaborator's verify
// endpoint. Any failure to verify collapses to ErrAuthenticationFailed; the
// caller never learns more than "rejected", matching what the handshake may
// reveal to an unauthenticated peer.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// NewClient creates a verifier against the given auth service base URL.
func NewClient(baseURL string, log *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
		log:     log.With("component", "auth_client"),
	}
}

type verifyRequest struct {
	Role  string `json:"role"`
	Token string `json:"token"`
}

type verifyResponse struct {
	Identity string `json:"identity"`
}

// Authenticate resolves the credential to the actor's identity for the role.
func (c *Client) Authenticate(ctx context.Context, role session.Role, credential string) (string, error) {
	if credential == "" {
		return "", session.ErrAuthenticationFailed
	}

	body, err := json.Marshal(verifyRequest{Role: role.String(), Token: credential})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/auth/verify", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("auth service unreachable", "error", err)
		return "", session.ErrAuthenticationFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", session.ErrAuthenticationFailed
	}

	var verified verifyResponse
	if err = json.NewDecoder(resp.Body).Decode(&verified); err != nil {
		return "", session.ErrAuthenticationFailed
	}
	if verified.Identity == "" {
		return "", session.ErrAuthenticationFailed
	}

	return verified.Identity, nil
}
