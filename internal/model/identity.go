package model

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the authentication context derived once per request. It is
// either anonymous or carries the verified subject identifier; resolvers
// branch on it instead of inspecting raw tokens.
type Identity struct {
	subject uuid.UUID
	known   bool
}

// Anonymous returns the identity of an unauthenticated request.
func Anonymous() Identity {
	return Identity{}
}

// Identified returns an identity carrying the verified subject.
func Identified(subject uuid.UUID) Identity {
	return Identity{subject: subject, known: true}
}

// Subject returns the verified user ID and whether the identity is known.
func (i Identity) Subject() (uuid.UUID, bool) {
	if !i.known || i.subject == uuid.Nil {
		return uuid.Nil, false
	}
	return i.subject, true
}

// ContextManager moves an Identity in and out of request contexts.
type ContextManager interface {
	SetIdentity(ctx context.Context, identity Identity) context.Context
	GetIdentity(ctx context.Context) Identity
}
