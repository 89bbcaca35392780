// Package console implements the procurement back-office console core: a
// typed client for the admin API plus the season bag-rate pricing matrix
// and its save/reset workflow.
package console

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"millgate/internal/domain"
	"millgate/internal/wire"
)

// RequestError is returned for any non-2xx API response. It carries the
// HTTP status, the server's error code and message when the body could be
// parsed, and the raw body otherwise.
type RequestError struct {
	Status  int
	Code    string
	Message string
	Body    []byte
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d, %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error (status %d): %s", e.Status, string(e.Body))
}

// envelope mirrors the server's standard response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client is a typed HTTP client for the admin API. The zero value is not
// usable; construct with NewClient.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client rooted at baseURL (including the API prefix,
// e.g. "https://host/api/v1") that authenticates with the given bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListSeasonBagRates fetches the saved rates for a crop year and season.
// Grouped and legacy response shapes are both accepted.
func (c *Client) ListSeasonBagRates(ctx context.Context, startYear int, season domain.SeasonCode) ([]domain.SeasonBagRate, error) {
	query := url.Values{}
	query.Set("cropYearStartYear", strconv.Itoa(startYear))
	query.Set("seasonCode", string(season))

	env, err := c.do(ctx, http.MethodGet, "/admin/season-bag-rates", query, nil)
	if err != nil {
		return nil, err
	}
	return wire.NormalizeList(env.Data)
}

// SaveSeasonBagRates submits the grouped write payload. When the server
// rejects the modern shape with HTTP 400 the same logical operation is
// retried exactly once using the legacy flat payload; any other failure
// class is surfaced as-is. Returns the authoritative saved entries and the
// server's success message, if any.
func (c *Client) SaveSeasonBagRates(ctx context.Context, req wire.UpsertRequest) ([]domain.SeasonBagRate, string, error) {
	env, err := c.do(ctx, http.MethodPost, "/admin/season-bag-rates", nil, req)
	if err != nil {
		var reqErr *RequestError
		if !errors.As(err, &reqErr) || reqErr.Status != http.StatusBadRequest {
			return nil, "", err
		}
		// Version-skew fallback: an older backend only understands the flat
		// shape. Retried once, 400-only, so genuine validation errors on the
		// retry still surface.
		env, err = c.do(ctx, http.MethodPost, "/admin/season-bag-rates", nil, wire.ToLegacyUpsertPayload(req))
		if err != nil {
			return nil, "", err
		}
	}
	items, err := wire.NormalizeList(env.Data)
	if err != nil {
		return nil, "", err
	}
	return items, env.Message, nil
}

// ResetSeasonBagRates zeroes every rate for the crop year and season. The
// confirmation token is forwarded verbatim; callers gate on it before the
// request is issued.
func (c *Client) ResetSeasonBagRates(ctx context.Context, startYear int, season domain.SeasonCode, confirm string) ([]domain.SeasonBagRate, string, error) {
	body := map[string]interface{}{
		"cropYearStartYear": startYear,
		"seasonCode":        season,
		"confirm":           confirm,
	}
	env, err := c.do(ctx, http.MethodPost, "/admin/season-bag-rates/reset", nil, body)
	if err != nil {
		return nil, "", err
	}
	items, err := wire.NormalizeList(env.Data)
	if err != nil {
		return nil, "", err
	}
	return items, env.Message, nil
}

// ListCropYears fetches crop years, newest first.
func (c *Client) ListCropYears(ctx context.Context, offset, limit int) ([]domain.CropYear, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))

	env, err := c.do(ctx, http.MethodGet, "/admin/crop-years", query, nil)
	if err != nil {
		return nil, err
	}
	var years []domain.CropYear
	if err := json.Unmarshal(env.Data, &years); err != nil {
		return nil, fmt.Errorf("%w: %v", wire.ErrMalformedResponse, err)
	}
	return years, nil
}

// ListActiveRiceTypes fetches the active rice types that participate in the
// pricing matrix.
func (c *Client) ListActiveRiceTypes(ctx context.Context) ([]domain.RiceType, error) {
	env, err := c.do(ctx, http.MethodGet, "/admin/rice-types", url.Values{"include_inactive": {"false"}}, nil)
	if err != nil {
		return nil, err
	}
	var types []domain.RiceType
	if err := json.Unmarshal(env.Data, &types); err != nil {
		return nil, fmt.Errorf("%w: %v", wire.ErrMalformedResponse, err)
	}
	return types, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (*envelope, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling admin API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &RequestError{Status: resp.StatusCode, Body: respBody}
		var env envelope
		if jsonErr := json.Unmarshal(respBody, &env); jsonErr == nil && env.Error != nil {
			reqErr.Code = env.Error.Code
			reqErr.Message = env.Error.Message
		}
		return nil, reqErr
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", wire.ErrMalformedResponse, err)
	}
	return &env, nil
}
