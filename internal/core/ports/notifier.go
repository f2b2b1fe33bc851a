package ports

import "context"

// Notifier delivers out-of-band messages to users.
// The core treats message delivery as an opaque service; a send failure after
// a reset token was persisted triggers a compensating rollback of the token.
type Notifier interface {
	// SendPasswordReset emails the plain reset token to the address.
	SendPasswordReset(ctx context.Context, email, token string) error
}
