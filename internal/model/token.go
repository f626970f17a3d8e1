package model

import "github.com/google/uuid"

// TokenManager issues and verifies signed identity tokens.
type TokenManager interface {
	Generate(subjectID uuid.UUID) (string, error)
	Parse(token string) (uuid.UUID, error)
}
