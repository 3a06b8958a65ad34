package service

import (
	"context"
	"fmt"

	"github.com/marketforge/marketsync/internal/adapter"
	"github.com/marketforge/marketsync/internal/logger"
	"github.com/marketforge/marketsync/models"
)

type clientAuthService struct {
	server adapter.ServerAdapter
	logger *logger.Logger
}

// NewClientAuthService creates the client-side auth boundary over the server
// adapter. The adapter keeps the session token; this service only validates
// input and shapes errors.
func NewClientAuthService(server adapter.ServerAdapter, log *logger.Logger) ClientAuthService {
	return &clientAuthService{server: server, logger: log}
}

// Register implements [ClientAuthService].
func (a *clientAuthService) Register(ctx context.Context, user models.User) (models.User, error) {
	if user.Login == "" || user.Password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	registered, err := a.server.Register(ctx, user)
	if err != nil {
		a.logger.Err(err).Str("func", "Register").Str("login", user.Login).Msg("registration failed")
		return models.User{}, fmt.Errorf("register: %w", err)
	}

	return registered, nil
}

// Login implements [ClientAuthService].
func (a *clientAuthService) Login(ctx context.Context, user models.User) (models.Token, error) {
	if user.Login == "" || user.Password == "" {
		return models.Token{}, ErrInvalidDataProvided
	}

	token, err := a.server.Login(ctx, user)
	if err != nil {
		a.logger.Err(err).Str("func", "Login").Str("login", user.Login).Msg("login failed")
		return models.Token{}, fmt.Errorf("login: %w", err)
	}

	return token, nil
}
