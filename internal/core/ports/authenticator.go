package ports

import (
	"context"

	"dispatch/internal/core/domain/model/session"
)

// Authenticator validates handshake credentials against the external auth
// collaborator. Token issuance and storage live outside this core.
type Authenticator interface {
	// Authenticate resolves the credential to the actor's identity for the
	// given role (admin id, kitchen id, courier id, user id). Returns
	// session.ErrAuthenticationFailed when the credential is missing or
	// invalid; the connection attempt is then rejected with a reason code.
	Authenticate(ctx context.Context, role session.Role, credential string) (string, error)
}
