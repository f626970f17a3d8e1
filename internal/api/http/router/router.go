package router

import (
	"net/http"

	"github.com/mindvault/mindvault-server/internal/api/graphql"
	"github.com/mindvault/mindvault-server/internal/api/http/middleware"
	"github.com/mindvault/mindvault-server/internal/logger"
	"github.com/mindvault/mindvault-server/internal/model"
	"github.com/mindvault/mindvault-server/internal/service"
)

// Router wires the GraphQL endpoint and its middleware into an http.Handler.
type Router struct {
	authService     *service.Auth
	userService     *service.User
	itemService     *service.Item
	categoryService *service.Category
	tokenManager    model.TokenManager
	contextManager  model.ContextManager
	logger          *logger.Logger
}

// New creates new Router instance.
func New(
	authService *service.Auth,
	userService *service.User,
	itemService *service.Item,
	categoryService *service.Category,
	tokenManager model.TokenManager,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:     authService,
		userService:     userService,
		itemService:     itemService,
		categoryService: categoryService,
		tokenManager:    tokenManager,
		contextManager:  contextManager,
		logger:          logger,
	}
}

// Register builds the schema, handler and middleware chain and returns the
// root handler.
func (r *Router) Register() (http.Handler, error) {
	resolver := graphql.NewResolver(
		r.authService,
		r.userService,
		r.itemService,
		r.categoryService,
		r.contextManager,
		r.logger,
	)
	schema, err := graphql.NewSchema(resolver)
	if err != nil {
		return nil, err
	}
	gqlHandler := graphql.NewHandler(schema, r.logger)

	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenManager, r.contextManager, r.logger)

	mux := http.NewServeMux()
	mux.Handle("/graphql", logging.Handle(authenticate.Handle(gqlHandler)))
	mux.Handle("/", logging.Handle(http.HandlerFunc(welcome)))

	return mux, nil
}

func welcome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Welcome to the MindVault API"))
}
