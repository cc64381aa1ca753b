// Package notify provides the outbound delivery providers for the
// notification queue.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/pharmaledger/backend/internal/domain/notification"
	"github.com/pharmaledger/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// MetaProvider delivers WhatsApp template messages through the Meta Graph
// API. Payload entries become template body parameters in key order as the
// template expects them.
type MetaProvider struct {
	baseURL       string
	accessToken   string
	phoneNumberID string
	client        *http.Client
	logger        *zap.Logger
}

// NewMetaProvider creates a Meta WhatsApp provider from configuration
func NewMetaProvider(cfg *config.NotificationConfig, logger *zap.Logger) *MetaProvider {
	return &MetaProvider{
		baseURL:       cfg.APIBaseURL,
		accessToken:   cfg.AccessToken,
		phoneNumberID: cfg.PhoneNumberID,
		client:        &http.Client{Timeout: 15 * time.Second},
		logger:        logger,
	}
}

type templateParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type templateComponent struct {
	Type       string              `json:"type"`
	Parameters []templateParameter `json:"parameters"`
}

type templatePayload struct {
	Name       string              `json:"name"`
	Language   map[string]string   `json:"language"`
	Components []templateComponent `json:"components,omitempty"`
}

type messageRequest struct {
	MessagingProduct string          `json:"messaging_product"`
	To               string          `json:"to"`
	Type             string          `json:"type"`
	Template         templatePayload `json:"template"`
}

// Send delivers one notification. A non-2xx response is a delivery failure
// and the body is surfaced so the queue records why.
func (p *MetaProvider) Send(ctx context.Context, n *notification.Notification) error {
	if n.Channel != notification.ChannelWhatsApp {
		return fmt.Errorf("meta provider cannot deliver channel %q", n.Channel)
	}

	request := messageRequest{
		MessagingProduct: "whatsapp",
		To:               n.Recipient,
		Type:             "template",
		Template: templatePayload{
			Name:     n.TemplateName,
			Language: map[string]string{"code": "en"},
		},
	}
	if params := templateParameters(n.Payload); len(params) > 0 {
		request.Template.Components = []templateComponent{{
			Type:       "body",
			Parameters: params,
		}}
	}

	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", p.baseURL, p.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("meta API returned %d: %s", resp.StatusCode, string(detail))
	}

	p.logger.Debug("whatsapp message delivered",
		zap.String("recipient", n.Recipient),
		zap.String("template", n.TemplateName))
	return nil
}

// templateParameters flattens the payload into ordered body parameters
func templateParameters(payload notification.Payload) []templateParameter {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	params := make([]templateParameter, 0, len(keys))
	for _, key := range keys {
		params = append(params, templateParameter{Type: "text", Text: payload[key]})
	}
	return params
}
