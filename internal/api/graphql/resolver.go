package graphql

import (
	"context"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"github.com/mindvault/mindvault-server/internal/apierrors"
	"github.com/mindvault/mindvault-server/internal/logger"
	"github.com/mindvault/mindvault-server/internal/model"
)

// AuthService defines user registration and login operations.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (model.AuthPayload, error)
	Login(ctx context.Context, email, password string) (model.AuthPayload, error)
}

// UserService defines profile operations.
type UserService interface {
	GetUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	UpdateProfile(ctx context.Context, subject uuid.UUID, name, email *string) (model.User, error)
	DeleteAccount(ctx context.Context, subject uuid.UUID) error
}

// ItemService defines owner-scoped item operations.
type ItemService interface {
	CreateItem(ctx context.Context, subject uuid.UUID, params model.CreateItemParams) (model.Item, error)
	GetItem(ctx context.Context, subject uuid.UUID, itemID uuid.UUID) (model.Item, error)
	GetItems(ctx context.Context, subject uuid.UUID, filter model.ItemFilter) ([]model.Item, error)
	GetItemsByUser(ctx context.Context, subject uuid.UUID, requested uuid.UUID) ([]model.Item, error)
	UpdateItem(ctx context.Context, subject uuid.UUID, itemID uuid.UUID, params model.UpdateItemParams) (model.Item, error)
	DeleteItem(ctx context.Context, subject uuid.UUID, itemID uuid.UUID) (model.Item, error)
}

// CategoryService defines operations on the global category collection.
type CategoryService interface {
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (model.Category, error)
	CreateCategory(ctx context.Context, title string, count *int) (model.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, title string, count *int) (model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// Resolver implements every query and mutation of the schema. Each resolver
// returns (value, error); errors cross the boundary only as client-safe
// apierrors values.
type Resolver struct {
	authService     AuthService
	userService     UserService
	itemService     ItemService
	categoryService CategoryService
	contextManager  model.ContextManager
	logger          *logger.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(
	authService AuthService,
	userService UserService,
	itemService ItemService,
	categoryService CategoryService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Resolver {
	return &Resolver{
		authService:     authService,
		userService:     userService,
		itemService:     itemService,
		categoryService: categoryService,
		contextManager:  contextManager,
		logger:          logger,
	}
}

// deleteResponse is the payload of delete mutations.
type deleteResponse struct {
	Message string `json:"message"`
}

// requireIdentity returns the verified subject or an AuthenticationRequired
// error. The middleware already rejects anonymous requests to non-public
// operations; this guard also covers operation names chosen by the client to
// dodge the allow-list.
func (r *Resolver) requireIdentity(ctx context.Context) (uuid.UUID, error) {
	subject, ok := r.contextManager.GetIdentity(ctx).Subject()
	if !ok {
		return uuid.Nil, apierrors.NewAuthenticationRequired()
	}
	return subject, nil
}

// handleError maps err to its client-safe form. Internal causes are logged
// here and never reach the response.
func (r *Resolver) handleError(operation string, err error) error {
	apiErr := apierrors.AsError(err)
	if apiErr.Kind == apierrors.KindInternal {
		r.logger.Error("GraphQL resolver: operation failed",
			"operation", operation,
			"error", err.Error())
	}
	return apiErr
}

func argString(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

func argOptionalString(p graphql.ResolveParams, name string) *string {
	if s, ok := p.Args[name].(string); ok {
		return &s
	}
	return nil
}

func argOptionalInt(p graphql.ResolveParams, name string) *int {
	switch v := p.Args[name].(type) {
	case int:
		return &v
	case float64:
		n := int(v)
		return &n
	}
	return nil
}

func argUUID(p graphql.ResolveParams, name string) (uuid.UUID, error) {
	raw, _ := p.Args[name].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apierrors.NewValidation(name, "must be a valid id")
	}
	return id, nil
}

func argStringList(p graphql.ResolveParams, name string) []string {
	raw, ok := p.Args[name].([]interface{})
	if !ok {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}
	return values
}

func argOptionalStringList(p graphql.ResolveParams, name string) *[]string {
	if _, ok := p.Args[name]; !ok {
		return nil
	}
	values := argStringList(p, name)
	return &values
}
