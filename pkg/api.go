package pkg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultURL             = "https://api.corona-19.kr/korea/country/new/"
	DefaultServiceKeyParam = "serviceKey"
	DefaultTimeout         = 10 * time.Second

	// maxBodyBytes caps the response; the real payload is about 2 KiB.
	maxBodyBytes = 1 << 20
)

func NewApiMetadata(serviceKey string) *ApiMetadata {
	return &ApiMetadata{
		URL:             DefaultURL,
		ServiceKeyParam: DefaultServiceKeyParam,
		ServiceKey:      serviceKey,
		Timeout:         DefaultTimeout,
	}
}

func (api *ApiMetadata) client() *http.Client {
	if api.HTTPClient != nil {
		return api.HTTPClient
	}
	timeout := api.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func (api *ApiMetadata) requestURL() (string, error) {
	u, err := url.Parse(api.URL)
	if err != nil {
		return "", err
	}
	query := u.Query()
	param := api.ServiceKeyParam
	if param == "" {
		param = DefaultServiceKeyParam
	}
	query.Set(param, api.ServiceKey)
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// Fetch issues one GET against the API and returns the raw body.
func (api *ApiMetadata) Fetch(ctx context.Context) ([]byte, error) {
	target, err := api.requestURL()
	if err != nil {
		return nil, &TransportError{URL: api.URL, Err: fmt.Errorf("invalid url: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &TransportError{URL: api.URL, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := api.client().Do(req)
	if err != nil {
		return nil, &TransportError{URL: api.URL, Err: unwrapURLError(err)}
	}
	defer resp.Body.Close() // nolint: errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{URL: api.URL, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &TransportError{URL: api.URL, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	if len(body) > maxBodyBytes {
		return nil, &TransportError{URL: api.URL, Err: fmt.Errorf("response body exceeds %d bytes", maxBodyBytes)}
	}
	return body, nil
}

func (api *ApiMetadata) GetCovidOverview(ctx context.Context) (*CityCovidOverview, error) {
	body, err := api.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return Decode(body)
}

// unwrapURLError drops the *url.Error wrapper, which would repeat the
// request URL including the service key.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
