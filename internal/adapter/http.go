package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-chat-client/internal/config"
	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/models"
)

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying resty client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := resty.New().
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

// Register implements [ServerAdapter]. It POSTs the profile data to
// POST /api/user/register. On success the bearer token from the response
// envelope is stored via SetToken. Returns an error if the request fails,
// the server returns a non-2xx status, or the envelope reports failure.
func (h *httpServerAdapter) Register(ctx context.Context, data models.RegistrationData) (models.User, error) {
	var result models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(data).
		SetResult(&result).
		Post("/api/user/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w: %v", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}
	if err = mapEnvelope(result.Envelope); err != nil {
		return models.User{}, err
	}

	h.SetToken(result.Token)
	return result.User, nil
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/user/login. On success the bearer token from the response
// envelope is stored via SetToken.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	var result models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		SetResult(&result).
		Post("/api/user/login")
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w: %v", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}
	if err = mapEnvelope(result.Envelope); err != nil {
		return models.User{}, err
	}

	h.SetToken(result.Token)
	return result.User, nil
}

// GetUserData implements [ServerAdapter]. It GETs /api/user/data using the
// stored bearer token and returns the profile of the token's owner.
func (h *httpServerAdapter) GetUserData(ctx context.Context) (models.User, error) {
	var result models.UserResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&result).
		Get("/api/user/data")
	if err != nil {
		return models.User{}, fmt.Errorf("get user data request: %w: %v", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}
	if err = mapEnvelope(result.Envelope); err != nil {
		return models.User{}, err
	}

	return result.User, nil
}

// GetChats implements [ServerAdapter]. It GETs /api/chat/get and returns the
// backend-ordered conversation list. Requires a valid bearer token.
func (h *httpServerAdapter) GetChats(ctx context.Context) ([]models.Chat, error) {
	var result models.ChatsResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&result).
		Get("/api/chat/get")
	if err != nil {
		return nil, fmt.Errorf("get chats request: %w: %v", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	if err = mapEnvelope(result.Envelope); err != nil {
		return nil, err
	}

	return result.Chats, nil
}

// CreateChat implements [ServerAdapter]. It GETs /api/chat/create and
// returns the created conversation. Requires a valid bearer token.
func (h *httpServerAdapter) CreateChat(ctx context.Context) (models.Chat, error) {
	var result models.ChatResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&result).
		Get("/api/chat/create")
	if err != nil {
		return models.Chat{}, fmt.Errorf("create chat request: %w: %v", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Chat{}, err
	}
	if err = mapEnvelope(result.Envelope); err != nil {
		return models.Chat{}, err
	}

	return result.Chat, nil
}

// DeleteChat implements [ServerAdapter]. It POSTs the chat id to
// POST /api/chat/delete. Requires a valid bearer token.
func (h *httpServerAdapter) DeleteChat(ctx context.Context, chatID string) error {
	var result models.Envelope

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"chatId": chatID}).
		SetResult(&result).
		Post("/api/chat/delete")
	if err != nil {
		return fmt.Errorf("delete chat request: %w: %v", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	return mapEnvelope(result)
}

// SendTextPrompt implements [ServerAdapter]. It POSTs the prompt to
// POST /api/message/text and returns the generated reply text, which the
// backend carries in the envelope message field. Requires a valid bearer
// token.
func (h *httpServerAdapter) SendTextPrompt(ctx context.Context, req models.PromptRequest) (string, error) {
	req.Published = false // only meaningful for image prompts

	var result models.TextReplyResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post("/api/message/text")
	if err != nil {
		return "", fmt.Errorf("send text prompt request: %w: %v", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	if !result.Success {
		return "", mapEnvelope(result.Envelope)
	}

	return result.Message, nil
}

// SendImagePrompt implements [ServerAdapter]. It POSTs the prompt to
// POST /api/message/image and returns the generated image reference.
// Requires a valid bearer token.
func (h *httpServerAdapter) SendImagePrompt(ctx context.Context, req models.PromptRequest) (string, error) {
	var result models.ImageReplyResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post("/api/message/image")
	if err != nil {
		return "", fmt.Errorf("send image prompt request: %w: %v", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	if err = mapEnvelope(result.Envelope); err != nil {
		return "", err
	}

	return result.ImageURL, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
