package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Client defines the read interface against the destination platform.
type Client interface {
	// LoadTaxRates returns all tax rates currently stored on the platform.
	LoadTaxRates(ctx context.Context) ([]TaxRate, error)
	// LoadTaxRules returns the rules linking rates to tax classes.
	LoadTaxRules(ctx context.Context) ([]TaxRule, error)
	// LoadTaxClasses returns the platform's tax classes.
	LoadTaxClasses(ctx context.Context) ([]TaxClass, error)
	// LoadCountries returns the platform's countries with their regions.
	LoadCountries(ctx context.Context) ([]Country, error)
}

// NewClient creates an HTTP client for the platform API.
func NewClient(cfg Config) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Same strict-transport posture as the storage client: a dead platform
	// endpoint must fail the run, not hang it.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &httpClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		token:   cfg.AccessToken,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
	}
}

type httpClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func (c *httpClient) LoadTaxRates(ctx context.Context) ([]TaxRate, error) {
	var rates []TaxRate
	if err := c.get(ctx, "/tax/rates", &rates); err != nil {
		return nil, fmt.Errorf("failed to load platform tax rates: %w", err)
	}
	return rates, nil
}

func (c *httpClient) LoadTaxRules(ctx context.Context) ([]TaxRule, error) {
	var rules []TaxRule
	if err := c.get(ctx, "/tax/rules", &rules); err != nil {
		return nil, fmt.Errorf("failed to load platform tax rules: %w", err)
	}
	return rules, nil
}

func (c *httpClient) LoadTaxClasses(ctx context.Context) ([]TaxClass, error) {
	var classes []TaxClass
	if err := c.get(ctx, "/tax/classes", &classes); err != nil {
		return nil, fmt.Errorf("failed to load platform tax classes: %w", err)
	}
	return classes, nil
}

func (c *httpClient) LoadCountries(ctx context.Context) ([]Country, error) {
	var countries []Country
	if err := c.get(ctx, "/countries", &countries); err != nil {
		return nil, fmt.Errorf("failed to load platform countries: %w", err)
	}
	return countries, nil
}

// get issues a GET request and decodes the JSON body into out.
func (c *httpClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body for the error message
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("platform returned %d for %s: %s", resp.StatusCode, path, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
