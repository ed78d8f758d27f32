package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс логирования для клиента
type Logger interface {
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Client клиент для работы со справочником барбершопов
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента справочника
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetTenant получает барбершоп с точками и мастерами
func (c *Client) GetTenant(ctx context.Context, tenantID int64) (*Tenant, error) {
	url := fmt.Sprintf("%s/internal/tenants/%d", c.baseURL, tenantID)

	var tenant Tenant
	if err := c.getJSON(ctx, url, &tenant, ErrTenantNotFound); err != nil {
		return nil, err
	}

	return &tenant, nil
}

// GetService получает услугу с длительностью и списком мастеров
func (c *Client) GetService(ctx context.Context, tenantID, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/tenants/%d/services/%d", c.baseURL, tenantID, serviceID)

	var service Service
	if err := c.getJSON(ctx, url, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	return &service, nil
}

// GetStaff получает мастера барбершопа
func (c *Client) GetStaff(ctx context.Context, tenantID, staffID int64) (*Staff, error) {
	url := fmt.Sprintf("%s/internal/tenants/%d/staff/%d", c.baseURL, tenantID, staffID)

	var staff Staff
	if err := c.getJSON(ctx, url, &staff, ErrStaffNotFound); err != nil {
		return nil, err
	}

	return &staff, nil
}

// GetTenantWithGracefulDegradation получает барбершоп с graceful degradation.
// При недоступности справочника возвращает ErrServiceDegraded: вызывающий код
// может продолжить без данных о точках и мастерах.
func (c *Client) GetTenantWithGracefulDegradation(ctx context.Context, tenantID int64) (*Tenant, error) {
	tenant, err := c.GetTenant(ctx, tenantID)
	if err != nil {
		// Бизнес-ошибку (барбершоп не найден) пробрасываем дальше
		if errors.Is(err, ErrTenantNotFound) {
			c.log.Info("Tenant %d not found in directory", tenantID)
			return nil, err
		}

		// Все остальное (недоступность, timeout, ошибки парсинга) превращаем
		// в ErrServiceDegraded. Уровень ERROR, чтобы быстрее заметить проблему.
		c.log.Error("Directory service unavailable, applying graceful degradation for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: tenant=%d, error=%v", ErrServiceDegraded, tenantID, err)
	}

	return tenant, nil
}

// getJSON выполняет GET-запрос и декодирует ответ.
// notFoundErr возвращается на 404 от справочника.
func (c *Client) getJSON(ctx context.Context, url string, dst interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid request parameters", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
