package salonservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с SalonService (каталог салонов, услуг и мастеров)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента SalonService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetSalon получает салон по ID
func (c *Client) GetSalon(ctx context.Context, salonID int64) (*Salon, error) {
	reqURL := fmt.Sprintf("%s/internal/salons/%d", c.baseURL, salonID)

	var salon Salon
	if err := c.getJSON(ctx, reqURL, &salon, ErrSalonNotFound); err != nil {
		return nil, err
	}
	return &salon, nil
}

// GetSalonBySlug получает салон по публичному slug
// Используется публичной страницей записи
func (c *Client) GetSalonBySlug(ctx context.Context, slug string) (*Salon, error) {
	reqURL := fmt.Sprintf("%s/internal/salons/by-slug/%s", c.baseURL, url.PathEscape(slug))

	var salon Salon
	if err := c.getJSON(ctx, reqURL, &salon, ErrSalonNotFound); err != nil {
		return nil, err
	}
	return &salon, nil
}

// GetService получает услугу салона
func (c *Client) GetService(ctx context.Context, salonID, serviceID int64) (*Service, error) {
	reqURL := fmt.Sprintf("%s/internal/salons/%d/services/%d", c.baseURL, salonID, serviceID)

	var service Service
	if err := c.getJSON(ctx, reqURL, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}
	return &service, nil
}

// GetStaff получает мастера салона
func (c *Client) GetStaff(ctx context.Context, salonID, staffID int64) (*Staff, error) {
	reqURL := fmt.Sprintf("%s/internal/salons/%d/staff/%d", c.baseURL, salonID, staffID)

	var staff Staff
	if err := c.getJSON(ctx, reqURL, &staff, ErrStaffNotFound); err != nil {
		return nil, err
	}
	return &staff, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
// notFoundErr возвращается при статусе 404
func (c *Client) getJSON(ctx context.Context, reqURL string, dst interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
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
