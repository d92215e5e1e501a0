package postal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/muller/cepapp/internal/core/domain"
	"github.com/muller/cepapp/internal/pkg/metrics"
)

const (
	DefaultBaseURL = "https://viacep.com.br/ws"
	defaultTimeout = 5 * time.Second
	maxBodyBytes   = 64 << 10
)

// Config configures the ViaCEP client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// ViaCEPClient resolves Brazilian zip codes through the ViaCEP JSON API.
// It performs a single attempt per call and caches nothing.
type ViaCEPClient struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

func NewViaCEPClient(cfg Config, logger zerolog.Logger) *ViaCEPClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &ViaCEPClient{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// viaCEPFlag accepts both `true` and `"true"` for the erro field.
type viaCEPFlag bool

func (f *viaCEPFlag) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	*f = viaCEPFlag(strings.EqualFold(s, "true"))
	return nil
}

type viaCEPResponse struct {
	CEP         string     `json:"cep"`
	Logradouro  string     `json:"logradouro"`
	Complemento string     `json:"complemento"`
	Unidade     string     `json:"unidade"`
	Bairro      string     `json:"bairro"`
	Localidade  string     `json:"localidade"`
	UF          string     `json:"uf"`
	Erro        viaCEPFlag `json:"erro"`
}

// Resolve looks up zipCode. 4xx answers and `erro` payloads yield
// domain.ErrPostalRejected; everything else that is not a usable record
// yields domain.ErrPostalUnreachable.
func (c *ViaCEPClient) Resolve(ctx context.Context, zipCode string) (*domain.PostalRecord, error) {
	start := time.Now()
	record, outcome, err := c.resolve(ctx, zipCode)
	metrics.PostalLookupDuration.Observe(time.Since(start).Seconds())
	metrics.PostalLookupsTotal.WithLabelValues(outcome).Inc()

	if err != nil {
		c.logger.Debug().Err(err).Str("zip_code", zipCode).Str("outcome", outcome).Msg("viacep lookup failed")
		return nil, err
	}
	return record, nil
}

func (c *ViaCEPClient) resolve(ctx context.Context, zipCode string) (*domain.PostalRecord, string, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(zipCode) + "/json/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "unreachable", fmt.Errorf("%w: build request: %v", domain.ErrPostalUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "unreachable", fmt.Errorf("%w: %v", domain.ErrPostalUnreachable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return nil, "unreachable", fmt.Errorf("%w: status %d", domain.ErrPostalUnreachable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, "rejected", fmt.Errorf("%w: status %d", domain.ErrPostalRejected, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, "unreachable", fmt.Errorf("%w: unexpected status %d", domain.ErrPostalUnreachable, resp.StatusCode)
	}

	var body viaCEPResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return nil, "unreachable", fmt.Errorf("%w: decode body: %v", domain.ErrPostalUnreachable, err)
	}
	if body.Erro {
		return nil, "rejected", fmt.Errorf("%w: zip code %s not found", domain.ErrPostalRejected, zipCode)
	}
	if body.CEP == "" {
		return nil, "unreachable", fmt.Errorf("%w: response without cep", domain.ErrPostalUnreachable)
	}

	return &domain.PostalRecord{
		ZipCode:      body.CEP,
		Street:       body.Logradouro,
		Complement:   body.Complemento,
		Number:       body.Unidade,
		Neighborhood: body.Bairro,
		City:         body.Localidade,
		State:        body.UF,
	}, "ok", nil
}
