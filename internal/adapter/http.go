package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/marketforge/marketsync/internal/config"
	"github.com/marketforge/marketsync/internal/logger"
	"github.com/marketforge/marketsync/internal/utils"
	"github.com/marketforge/marketsync/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the user credentials to
// POST /api/auth/register. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	log := h.logger.GetChildLogger()

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, classifyRequestError("register request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("register parse bearer token: %w", err)
	}
	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return models.User{}, fmt.Errorf("register parse user id: %w", err)
	}

	h.SetToken(token)
	log.Debug().Str("func", "Register").Str("login", user.Login).Msg("registered")
	return models.User{UserID: userID, Login: user.Login, Name: user.Name}, nil
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.Token, error) {
	log := h.logger.GetChildLogger()

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/login")
	if err != nil {
		return models.Token{}, classifyRequestError("login request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("login parse bearer token: %w", err)
	}
	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return models.Token{}, fmt.Errorf("login parse user id: %w", err)
	}

	h.SetToken(token)
	log.Debug().Str("func", "Login").Str("login", user.Login).Msg("logged in")
	return models.Token{SignedString: token, UserID: userID}, nil
}

// Fetch implements [ServerAdapter]. It GETs
// GET /api/collections/{collection} and decodes the entry list. Requires a
// valid bearer token.
func (h *httpServerAdapter) Fetch(ctx context.Context, collection models.CollectionType) ([]models.ResourceEntry, error) {
	resp, err := h.authedRequest(ctx).
		Get("/api/collections/" + string(collection))
	if err != nil {
		return nil, classifyRequestError("fetch request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var cr models.CollectionResponse
	if err = json.Unmarshal(resp.Body(), &cr); err != nil {
		return nil, fmt.Errorf("decode fetch response: %w", err)
	}

	return cr.Items, nil
}

// Push implements [ServerAdapter]. It POSTs one entry upsert to
// POST /api/collections/{collection}/items. Requires a valid bearer token.
// Returns a wrapped [ErrValidation] on server-side rejection.
func (h *httpServerAdapter) Push(ctx context.Context, collection models.CollectionType, req models.PushRequest) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/collections/" + string(collection) + "/items")
	if err != nil {
		return classifyRequestError("push request", err)
	}

	return mapHTTPError(resp)
}

// Remove implements [ServerAdapter]. It sends
// DELETE /api/collections/{collection}/items/{resourceID}. Requires a valid
// bearer token.
func (h *httpServerAdapter) Remove(ctx context.Context, collection models.CollectionType, resourceID string) error {
	resp, err := h.authedRequest(ctx).
		Delete("/api/collections/" + string(collection) + "/items/" + url.PathEscape(resourceID))
	if err != nil {
		return classifyRequestError("remove request", err)
	}

	return mapHTTPError(resp)
}

// Clear implements [ServerAdapter]. It sends
// DELETE /api/collections/{collection}. Requires a valid bearer token.
func (h *httpServerAdapter) Clear(ctx context.Context, collection models.CollectionType) error {
	resp, err := h.authedRequest(ctx).
		Delete("/api/collections/" + string(collection))
	if err != nil {
		return classifyRequestError("clear request", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
