package telegram

//go:generate go run go.uber.org/mock/mockgen -source=./telegram.go -destination=./mocks/telegram_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"himalayandays/config"
	"himalayandays/infras/otel"
	"himalayandays/shared/constant"
)

const (
	apiBaseURL     = "https://api.telegram.org"
	defaultTimeout = 10 * time.Second

	otelScopeName    = "telegram"
	otelAttrChatID   = "chat_id"
	otelAttrDelivery = "delivered"
)

// Notifier relays HTML-formatted messages to the configured operations
// channel(s). Delivery is best effort: when credentials are unset the relay
// is skipped entirely, and a failed target is logged without being raised
// to the caller.
type Notifier interface {
	Send(ctx context.Context, htmlText string) error
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

type notifierImpl struct {
	cfg    *config.Config
	client *http.Client
	otel   otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Notifier {
	timeout := defaultTimeout
	if cfg.External.Telegram.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.External.Telegram.TimeoutSeconds) * time.Second
	}

	return &notifierImpl{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		otel:   otl,
	}
}

func (n *notifierImpl) Send(ctx context.Context, htmlText string) (err error) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelExternalScopeName, otelScopeName+".Send")
	defer scope.End()

	token := n.cfg.External.Telegram.BotToken
	chatIDs := n.cfg.External.Telegram.ChatIDs

	if token == constant.Empty || len(chatIDs) == 0 {
		log.Debug().Msg("telegram credentials not configured, skipping relay")

		return nil
	}

	delivered := 0

	for _, chatID := range chatIDs {
		if err := n.sendToChat(ctx, token, chatID, htmlText); err != nil {
			log.Error().Err(err).Str("chat_id", chatID).Msg("failed to relay telegram message")

			continue
		}

		delivered++
	}

	scope.SetAttribute(otelAttrDelivery, delivered)

	if delivered == 0 {
		return fmt.Errorf("failed to relay message to all %d telegram targets", len(chatIDs))
	}

	return nil
}

func (n *notifierImpl) sendToChat(ctx context.Context, token, chatID, htmlText string) (err error) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelExternalScopeName, otelScopeName+".sendToChat")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrChatID, chatID)

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      htmlText,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", apiBaseURL, token)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build telegram request: %w", err)
	}

	request.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	resp, err := n.client.Do(request)
	if err != nil {
		return fmt.Errorf("failed to call telegram API: %w", err)
	}
	defer resp.Body.Close()

	var body sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode telegram response: %w", err)
	}

	if !body.OK {
		return fmt.Errorf("telegram API rejected message: %s", body.Description)
	}

	return nil
}
