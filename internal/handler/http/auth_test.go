package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/marketforge/marketsync/internal/service"
	"github.com/marketforge/marketsync/internal/store"
	"github.com/marketforge/marketsync/models"
)

func TestHandlerRegister(t *testing.T) {
	t.Run("successful registration returns bearer token", func(t *testing.T) {
		env := newTestEnv(t)

		registered := models.User{UserID: 42, Login: "alice"}
		env.auth.EXPECT().
			RegisterUser(gomock.Any(), models.User{Login: "alice", Password: "secret"}).
			Return(registered, nil)
		env.auth.EXPECT().
			CreateToken(gomock.Any(), registered).
			Return(models.Token{SignedString: "signed-token"}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"login":"alice","password":"secret"}`))
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Bearer signed-token", rec.Header().Get("Authorization"))
	})

	t.Run("malformed JSON body is rejected", func(t *testing.T) {
		env := newTestEnv(t)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"login":`))
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid credentials map to 400 with JSON error body", func(t *testing.T) {
		env := newTestEnv(t)

		env.auth.EXPECT().
			RegisterUser(gomock.Any(), gomock.Any()).
			Return(models.User{}, fmt.Errorf("register user: %w", service.ErrInvalidDataProvided))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"login":"","password":""}`))
		env.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "invalid data provided", body.Error)
	})

	t.Run("duplicate login maps to 409", func(t *testing.T) {
		env := newTestEnv(t)

		env.auth.EXPECT().
			RegisterUser(gomock.Any(), gomock.Any()).
			Return(models.User{}, fmt.Errorf("create user: %w", store.ErrLoginAlreadyExists))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"login":"alice","password":"secret"}`))
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("token creation failure maps to 500", func(t *testing.T) {
		env := newTestEnv(t)

		env.auth.EXPECT().
			RegisterUser(gomock.Any(), gomock.Any()).
			Return(models.User{UserID: 1}, nil)
		env.auth.EXPECT().
			CreateToken(gomock.Any(), gomock.Any()).
			Return(models.Token{}, service.ErrTokenCreationFailed)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"login":"alice","password":"secret"}`))
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Empty(t, rec.Header().Get("Authorization"))
	})
}

func TestHandlerLogin(t *testing.T) {
	t.Run("successful login returns bearer token", func(t *testing.T) {
		env := newTestEnv(t)

		found := models.User{UserID: 7, Login: "bob"}
		env.auth.EXPECT().
			Login(gomock.Any(), models.User{Login: "bob", Password: "hunter2"}).
			Return(found, nil)
		env.auth.EXPECT().
			CreateToken(gomock.Any(), found).
			Return(models.Token{SignedString: "fresh-token"}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"login":"bob","password":"hunter2"}`))
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Bearer fresh-token", rec.Header().Get("Authorization"))
	})

	t.Run("wrong password maps to 401", func(t *testing.T) {
		env := newTestEnv(t)

		env.auth.EXPECT().
			Login(gomock.Any(), gomock.Any()).
			Return(models.User{}, fmt.Errorf("login: %w", service.ErrWrongPassword))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"login":"bob","password":"wrong"}`))
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown user maps to 401", func(t *testing.T) {
		env := newTestEnv(t)

		env.auth.EXPECT().
			Login(gomock.Any(), gomock.Any()).
			Return(models.User{}, fmt.Errorf("find user: %w", store.ErrNoUserWasFound))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"login":"ghost","password":"secret"}`))
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed JSON body is rejected", func(t *testing.T) {
		env := newTestEnv(t)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`not json`))
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
