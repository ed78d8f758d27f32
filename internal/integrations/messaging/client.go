package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Logger интерфейс логирования для клиента
type Logger interface {
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Client клиент шлюза сообщений клиентам (SMS / мессенджеры)
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// SendTemplateRequest запрос на отправку шаблонного сообщения
type SendTemplateRequest struct {
	IdempotencyKey string            `json:"idempotency_key"`
	Phone          string            `json:"phone"`
	Template       string            `json:"template"`
	Params         map[string]string `json:"params,omitempty"`
}

// SendResult результат отправки
type SendResult struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

// NewClient создает новый экземпляр клиента шлюза сообщений
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendTemplate отправляет шаблонное сообщение клиенту.
// Ключ идемпотентности генерируется на каждую логическую отправку:
// повтор запроса при сетевой ошибке не продублирует сообщение.
func (c *Client) SendTemplate(ctx context.Context, phone, template string, params map[string]string) (*SendResult, error) {
	request := SendTemplateRequest{
		IdempotencyKey: uuid.NewString(),
		Phone:          phone,
		Template:       template,
		Params:         params,
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/messages/send", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		// Продолжаем обработку
	case http.StatusUnprocessableEntity:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: phone=%s: %s", ErrSendRejected, phone, string(body))
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var result SendResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("Message sent: template=%s, message_id=%s", template, result.MessageID)

	return &result, nil
}
