package profilestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"

	domainerrors "github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/ports"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/valueobjects"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/infrastructure/metrics"
)

const breakerName = "profile-store"

// Config configura o cliente do serviço de perfis
type Config struct {
	BaseURL    string
	ServiceKey string
	Timeout    time.Duration
}

// Client consulta o serviço externo de perfis (API REST estilo PostgREST)
// para descobrir a organização de um usuário. Implementa ports.ProfileStore.
type Client struct {
	baseURL    string
	serviceKey string
	timeout    time.Duration
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[string]
	logger     ports.Logger
}

type profileRow struct {
	OrganizationID *string `json:"organization_id"`
}

// NewClient cria o cliente com circuit breaker:
// abre após 5 falhas consecutivas e tenta de novo depois de 30s
func NewClient(cfg Config, logger ports.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})

	return &Client{
		baseURL:    cfg.BaseURL,
		serviceKey: cfg.ServiceKey,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		cb:         cb,
		logger:     logger,
	}
}

var _ ports.ProfileStore = (*Client)(nil)

// OrganizationIDByEmail retorna "" sem erro quando o perfil não existe.
// Falhas de transporte, respostas não-2xx e circuito aberto viram ErrProfileStoreUnavailable.
func (c *Client) OrganizationIDByEmail(ctx context.Context, email string) (string, error) {
	orgID, err := c.cb.Execute(func() (string, error) {
		return c.fetch(ctx, valueobjects.NormalizeEmail(email))
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: circuit %s", domainerrors.ErrProfileStoreUnavailable, err)
		}
		return "", fmt.Errorf("%w: %w", domainerrors.ErrProfileStoreUnavailable, err)
	}
	return orgID, nil
}

func (c *Client) fetch(ctx context.Context, email string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("select", "organization_id")
	q.Set("email", "eq."+email)
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rest/v1/users?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("profile store request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("profile store returned status %d", resp.StatusCode)
	}

	var rows []profileRow
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&rows); err != nil {
		return "", fmt.Errorf("decode profile store response: %w", err)
	}

	if len(rows) == 0 || rows[0].OrganizationID == nil {
		return "", nil
	}
	return *rows[0].OrganizationID, nil
}
