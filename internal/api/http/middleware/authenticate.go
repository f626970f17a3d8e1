package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mindvault/mindvault-server/internal/apierrors"
	"github.com/mindvault/mindvault-server/internal/logger"
	"github.com/mindvault/mindvault-server/internal/model"
)

// TokenManager resolves the subject from bearer tokens.
type TokenManager interface {
	Parse(token string) (uuid.UUID, error)
}

// publicOperations may execute without a credential. Everything else is
// fail-closed: no valid bearer token, no execution.
var publicOperations = map[string]struct{}{
	"register":           {},
	"login":              {},
	"hello":              {},
	"IntrospectionQuery": {},
}

// Authenticate derives the per-request identity from the Authorization
// header and rejects unauthenticated requests to non-public operations
// before GraphQL execution starts.
type Authenticate struct {
	tokenManager   TokenManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenManager TokenManager, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenManager: tokenManager, contextManager: contextManager, logger: logger}
}

// operationRequest mirrors the part of the GraphQL POST body the middleware
// needs; the handler re-parses the full body afterwards.
type operationRequest struct {
	OperationName string `json:"operationName"`
}

// Handle wraps next with authentication.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			m.logger.Error("Authenticate middleware: failed to read request body", "error", err.Error())
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		var op operationRequest
		// A malformed body is left for the GraphQL handler to report.
		_ = json.Unmarshal(body, &op)

		if _, ok := publicOperations[op.OperationName]; ok {
			ctx := m.contextManager.SetIdentity(r.Context(), model.Anonymous())
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		identity, err := m.authenticate(r)
		if err != nil {
			m.logger.Info("Authenticate middleware: rejecting request",
				"operation", op.OperationName,
				"error", err.Error())
			writeAuthenticationRequired(w)
			return
		}

		ctx := m.contextManager.SetIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) authenticate(r *http.Request) (model.Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return model.Anonymous(), errors.New("missing authorization header")
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")
	subject, err := m.tokenManager.Parse(tokenString)
	if err != nil {
		return model.Anonymous(), fmt.Errorf("invalid token: %w", err)
	}

	return model.Identified(subject), nil
}

// writeAuthenticationRequired ends the request with a GraphQL-shaped error
// body so clients handle middleware and resolver failures uniformly.
func writeAuthenticationRequired(w http.ResponseWriter) {
	apiErr := apierrors.NewAuthenticationRequired()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"errors": []map[string]interface{}{
			{
				"message":    apiErr.Error(),
				"extensions": apiErr.Extensions(),
			},
		},
	})
}
