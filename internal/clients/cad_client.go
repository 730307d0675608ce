package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// CADClient talks to the JPL SBDB close-approach data API.
type CADClient interface {
	FetchApproaches(ctx context.Context, query CADQuery) ([]byte, error)
}

// CADQuery narrows the close approaches requested from the API.
type CADQuery struct {
	DateMin string
	DateMax string
	DistMax string
}

type CADConfig struct {
	URL     string
	Timeout time.Duration
}

type cadClient struct {
	baseURL string
	client  *http.Client
}

func NewCADClient(config CADConfig) CADClient {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &cadClient{
		baseURL: config.URL,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:       10,
				IdleConnTimeout:    30 * time.Second,
				DisableCompression: false,
			},
		},
	}
}

// FetchApproaches returns the raw CAD JSON document for query.
func (c *cadClient) FetchApproaches(ctx context.Context, query CADQuery) ([]byte, error) {
	params := url.Values{}
	params.Add("fullname", "false")
	if query.DateMin != "" {
		params.Add("date-min", query.DateMin)
	}
	if query.DateMax != "" {
		params.Add("date-max", query.DateMax)
	}
	if query.DistMax != "" {
		params.Add("dist-max", query.DistMax)
	}

	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "neolink/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("CAD API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}
