package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/marketforge/marketsync/internal/adapter"
	"github.com/marketforge/marketsync/internal/logger"
	"github.com/marketforge/marketsync/internal/mock"
	"github.com/marketforge/marketsync/models"
)

func TestClientAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := mock.NewMockServerAdapter(ctrl)
	svc := NewClientAuthService(srv, logger.Nop())
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		user := models.User{Login: "buyer", Password: "secret"}
		srv.EXPECT().Register(ctx, user).Return(models.User{UserID: 42, Login: "buyer"}, nil)

		registered, err := svc.Register(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, int64(42), registered.UserID)
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := svc.Register(ctx, models.User{Login: "buyer"})
		assert.ErrorIs(t, err, ErrInvalidDataProvided)

		_, err = svc.Register(ctx, models.User{Password: "secret"})
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	})

	t.Run("server failure propagates", func(t *testing.T) {
		user := models.User{Login: "buyer", Password: "secret"}
		srv.EXPECT().Register(ctx, user).Return(models.User{}, adapter.ErrConflict)

		_, err := svc.Register(ctx, user)
		assert.ErrorIs(t, err, adapter.ErrConflict)
	})
}

func TestClientAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := mock.NewMockServerAdapter(ctrl)
	svc := NewClientAuthService(srv, logger.Nop())
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		user := models.User{Login: "buyer", Password: "secret"}
		srv.EXPECT().Login(ctx, user).Return(models.Token{SignedString: "jwt", UserID: 7}, nil)

		token, err := svc.Login(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, int64(7), token.UserID)
		assert.Equal(t, "jwt", token.SignedString)
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := svc.Login(ctx, models.User{Login: "buyer"})
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	})

	t.Run("wrong credentials propagate", func(t *testing.T) {
		user := models.User{Login: "buyer", Password: "nope"}
		srv.EXPECT().Login(ctx, user).Return(models.Token{}, adapter.ErrUnauthorized)

		_, err := svc.Login(ctx, user)
		assert.ErrorIs(t, err, adapter.ErrUnauthorized)
	})
}
