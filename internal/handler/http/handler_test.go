package http

import (
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/marketforge/marketsync/internal/config"
	"github.com/marketforge/marketsync/internal/logger"
	"github.com/marketforge/marketsync/internal/mock"
	"github.com/marketforge/marketsync/internal/ratelimit"
	"github.com/marketforge/marketsync/internal/service"
)

// testEnv bundles the handler under test with its mocked service layer and a
// fully wired router.
type testEnv struct {
	handler     *Handler
	router      *chi.Mux
	auth        *mock.MockAuthService
	collections *mock.MockCollectionSyncService
}

// newTestEnv builds a Handler over mocked services with rate limits generous
// enough to never interfere with functional tests.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	authService := mock.NewMockAuthService(ctrl)
	collectionService := mock.NewMockCollectionSyncService(ctrl)

	h := &Handler{
		services: &service.Services{
			AuthService:           authService,
			CollectionSyncService: collectionService,
		},
		limiter: ratelimit.New(),
		rate: config.RateLimit{
			AuthLimit:  1000,
			AuthWindow: time.Minute,
			APILimit:   1000,
			APIWindow:  time.Minute,
		},
		version: "1.2.3",
		logger:  logger.Nop(),
	}

	return &testEnv{
		handler:     h,
		router:      h.Init(),
		auth:        authService,
		collections: collectionService,
	}
}
