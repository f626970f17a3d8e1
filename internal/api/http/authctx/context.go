package authctx

import (
	"context"

	"github.com/mindvault/mindvault-server/internal/model"
)

type identityKey struct{}

// Manager stores the authenticated identity in request contexts. Downstream
// resolvers read it back through the model.ContextManager interface.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentity returns a context carrying the given identity.
func (m *Manager) SetIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity returns the identity stored in the context, or the anonymous
// identity when none was set.
func (m *Manager) GetIdentity(ctx context.Context) model.Identity {
	if identity, ok := ctx.Value(identityKey{}).(model.Identity); ok {
		return identity
	}
	return model.Anonymous()
}
