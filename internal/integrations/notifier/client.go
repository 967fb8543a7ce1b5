package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client webhook-клиент доменных событий бронирования.
// События публикуются ТОЛЬКО после коммита транзакции: событие без
// зафиксированного изменения невозможно. Ошибки доставки логируются
// и не влияют на результат операции.
type Client struct {
	url        string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента уведомлений.
// Пустой url отключает отправку (события только логируются).
func NewClient(url string, timeout time.Duration, log Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Publish отправляет событие на webhook
func (c *Client) Publish(ctx context.Context, eventType EventType, payload interface{}) error {
	event := Event{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	if c.url == "" {
		c.log.Info("Notifier disabled, skipping %s event", eventType)
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrDeliveryFailed, resp.StatusCode, string(respBody))
	}

	return nil
}

// PublishAsync отправляет событие в фоне, логируя ошибки доставки.
// Используется после коммита транзакции, когда результат операции
// уже не зависит от доставки уведомления.
func (c *Client) PublishAsync(eventType EventType, payload interface{}) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout+time.Second)
		defer cancel()

		if err := c.Publish(ctx, eventType, payload); err != nil {
			c.log.Error("Failed to publish %s event: %v", eventType, err)
		}
	}()
}
