package attom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/alejandrodnm/dealscan/internal/ports"
)

const (
	defaultAttomBase     = "https://api.gateway.attomdata.com/propertyapi/v1.0.0"
	defaultNominatimBase = "https://nominatim.openstreetmap.org"

	// ATTOM en plan free limita por minuto; nos quedamos muy por debajo.
	attomRatePerSec = 2
	// Nominatim pide máximo 1 req/s absoluta para uso no comercial.
	nominatimRatePerSec = 1

	minSuggestQueryLen = 4
	suggestLimit       = 6

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond

	userAgent = "dealscan/1.0"
)

// Client implementa ports.PropertyProvider contra ATTOM (facts de la
// propiedad) y Nominatim (autocompletado de direcciones), con rate
// limiting y retries.
type Client struct {
	http             *http.Client
	attomBase        string
	nominatimBase    string
	apiKey           string
	attomLimiter     *rate.Limiter
	nominatimLimiter *rate.Limiter
}

// NewClient crea un Client con los base URLs dados.
// Si attomBase o nominatimBase están vacíos, usa los URLs de producción.
func NewClient(attomBase, nominatimBase, apiKey string) *Client {
	if attomBase == "" {
		attomBase = defaultAttomBase
	}
	if nominatimBase == "" {
		nominatimBase = defaultNominatimBase
	}
	return &Client{
		http:             &http.Client{Timeout: 10 * time.Second},
		attomBase:        attomBase,
		nominatimBase:    nominatimBase,
		apiKey:           apiKey,
		attomLimiter:     rate.NewLimiter(attomRatePerSec, 2),
		nominatimLimiter: rate.NewLimiter(nominatimRatePerSec, 1),
	}
}

// LookupByAddress busca los facts de una propiedad por dirección completa.
// Devuelve (nil, nil) si ATTOM no encuentra nada — el caller degrada a
// "superficie desconocida" y sigue con el análisis.
func (c *Client) LookupByAddress(ctx context.Context, address string) (*ports.PropertyFacts, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("attom.LookupByAddress: ATTOM_API_KEY not set")
	}

	u := fmt.Sprintf("%s/property/basicprofile?%s", c.attomBase,
		url.Values{"address": {address}}.Encode())

	headers := http.Header{
		"Accept": {"application/json"},
		"apikey": {c.apiKey},
	}

	raw, err := c.get(ctx, c.attomLimiter, u, headers)
	if err != nil {
		return nil, fmt.Errorf("attom.LookupByAddress: %w", err)
	}

	var resp basicProfileResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("attom.LookupByAddress: decode response: %w", err)
	}
	if len(resp.Property) == 0 {
		return nil, nil
	}

	p := resp.Property[0]
	oneLine := p.Address.OneLine
	if oneLine == "" {
		oneLine = address
	}

	return &ports.PropertyFacts{
		Address: oneLine,
		Sqft:    p.Building.Size.sqft(),
		RawJSON: string(raw),
	}, nil
}

// Suggest devuelve hasta 6 sugerencias de dirección de Nominatim para una
// consulta parcial. Consultas de menos de 4 caracteres (tras recortar
// espacios) devuelven nil sin tocar la red.
func (c *Client) Suggest(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if len(query) < minSuggestQueryLen {
		return nil, nil
	}

	params := url.Values{
		"q":              {query},
		"format":         {"json"},
		"addressdetails": {"0"},
		"limit":          {fmt.Sprintf("%d", suggestLimit)},
	}
	u := fmt.Sprintf("%s/search?%s", c.nominatimBase, params.Encode())

	// Nominatim exige identificarse con un User-Agent propio
	headers := http.Header{
		"Accept":     {"application/json"},
		"User-Agent": {userAgent},
	}

	raw, err := c.get(ctx, c.nominatimLimiter, u, headers)
	if err != nil {
		return nil, fmt.Errorf("attom.Suggest: %w", err)
	}

	var results []nominatimResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, fmt.Errorf("attom.Suggest: decode response: %w", err)
	}

	var out []string
	for _, r := range results {
		if r.DisplayName != "" {
			out = append(out, r.DisplayName)
		}
	}
	return out, nil
}

// get hace un GET con rate limiting y retries, y devuelve el body crudo.
func (c *Client) get(ctx context.Context, limiter *rate.Limiter, u string, headers http.Header) ([]byte, error) {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		for k, vs := range headers {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if attempt == maxRetries {
				return nil, fmt.Errorf("request failed after %d retries: %w", maxRetries, err)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			slog.Warn("rate limited by API", "attempt", attempt+1)
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return nil, fmt.Errorf("server error %d after %d retries", resp.StatusCode, maxRetries)
			}
			c.sleep(ctx, attempt)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("client error %d: %s", resp.StatusCode, string(body))
		}
		if readErr != nil {
			return nil, fmt.Errorf("read response: %w", readErr)
		}
		return body, nil
	}
	return nil, fmt.Errorf("exhausted %d retries", maxRetries)
}

// sleep espera con backoff exponencial, respetando el contexto.
func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * baseRetryWait
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}
