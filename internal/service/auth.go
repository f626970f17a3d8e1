package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mindvault/mindvault-server/internal/apierrors"
	"github.com/mindvault/mindvault-server/internal/logger"
	"github.com/mindvault/mindvault-server/internal/model"
)

const minPasswordLength = 8

// Auth implements registration and login over the credential store.
type Auth struct {
	userStore    model.UserStore
	tokenManager model.TokenManager
	logger       *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(userStore model.UserStore, tokenManager model.TokenManager, logger *logger.Logger) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Register validates the input, stores the user with a bcrypt password hash
// and issues a token for the new account.
func (a *Auth) Register(ctx context.Context, name, email, password string) (model.AuthPayload, error) {
	a.logger.Debug("Auth service: starting user registration", "email", email)

	if err := validateRegistration(name, email, password); err != nil {
		return model.AuthPayload{}, err
	}

	existing, err := a.userStore.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.AuthPayload{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if existing.ID != uuid.Nil {
		a.logger.Info("Auth service: user already exists", "email", email)
		return model.AuthPayload{}, apierrors.NewUserAlreadyExists(email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.AuthPayload{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	user, err = a.userStore.Create(ctx, user)
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.AuthPayload{}, fmt.Errorf("failed to create user: %w", err)
	}

	tokenString, err := a.tokenManager.Generate(user.ID)
	if err != nil {
		return model.AuthPayload{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user registered successfully",
		"email", email,
		"user_id", user.ID)

	return model.AuthPayload{User: user, Token: tokenString}, nil
}

// Login compares the supplied password against the stored hash and issues a
// token on success. Unknown email and wrong password are indistinguishable
// to the caller; the distinguishing reason stays in the server log.
func (a *Auth) Login(ctx context.Context, email, password string) (model.AuthPayload, error) {
	a.logger.Debug("Auth service: starting user login", "email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: login attempt for unknown email", "email", email)
		return model.AuthPayload{}, apierrors.NewInvalidCredentials()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.AuthPayload{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		a.logger.Info("Auth service: password mismatch", "user_id", user.ID)
		return model.AuthPayload{}, apierrors.NewInvalidCredentials()
	}

	tokenString, err := a.tokenManager.Generate(user.ID)
	if err != nil {
		return model.AuthPayload{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user logged in successfully", "user_id", user.ID)

	return model.AuthPayload{User: user, Token: tokenString}, nil
}

func validateRegistration(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return apierrors.NewValidation("name", "is required")
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if len(password) < minPasswordLength {
		return apierrors.NewValidation("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return apierrors.NewValidation("email", "is not a valid email address")
	}
	return nil
}
