package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/spec-kit/shopbot-service/internal/config"
	apperrors "github.com/spec-kit/shopbot-service/pkg/util"
)

// ChatWebhookClient calls the external conversational workflow that handles
// messages no responder rule could answer.
type ChatWebhookClient struct {
	cfg    config.WebhookConfig
	client *http.Client
	logger *zap.Logger
}

type webhookRequest struct {
	Message string `json:"message"`
}

type webhookResponse struct {
	Response string `json:"response"`
}

// NewChatWebhookClient constructs the client.
func NewChatWebhookClient(cfg config.WebhookConfig, logger *zap.Logger) *ChatWebhookClient {
	return &ChatWebhookClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
		logger: logger,
	}
}

// Configured reports whether a webhook URL has been set.
func (c *ChatWebhookClient) Configured() bool {
	return c != nil && c.cfg.URL != ""
}

// Ask forwards the customer message and returns the workflow's reply. Any
// transport failure, non-2xx status or malformed body is returned as an
// upstream error; callers substitute the fallback reply.
func (c *ChatWebhookClient) Ask(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(webhookRequest{Message: message})
	if err != nil {
		return "", apperrors.NewUpstreamError("chat webhook request encoding failed", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.NewUpstreamError("chat webhook request failed", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", apperrors.NewUpstreamError("chat webhook unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("chat webhook returned non-2xx", zap.Int("status", resp.StatusCode))
		return "", apperrors.NewUpstreamError("chat webhook failed", fmt.Errorf("status %d", resp.StatusCode))
	}

	var parsed webhookResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", apperrors.NewUpstreamError("chat webhook response malformed", err)
	}
	if parsed.Response == "" {
		return "", apperrors.NewUpstreamError("chat webhook response empty", nil)
	}
	return parsed.Response, nil
}

// FallbackReply is the user-visible message shown when the webhook fails.
func (c *ChatWebhookClient) FallbackReply() string {
	if c == nil || c.cfg.FallbackReply == "" {
		return "Lo siento, ha ocurrido un error. Por favor, intenta de nuevo."
	}
	return c.cfg.FallbackReply
}
