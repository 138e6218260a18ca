// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	sdkHttp "github.com/hashicorp/cap-idtoken/sdk/http"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"
)

// DefaultTokenInfoEndpoint is the public token info endpoint used by
// Inspect.
const DefaultTokenInfoEndpoint = "https://www.googleapis.com/oauth2/v3/tokeninfo"

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 1 << 20

// Client redeems JWT-bearer assertions for id_tokens. Each call makes
// exactly one request; nothing is retried or cached.
type Client struct {
	httpClient        *http.Client
	tokenInfoEndpoint string
	logger            hclog.Logger
}

// NewClient creates a Client.
//
// Supported options:
//   - WithHTTPClient
//   - WithCACert
//   - WithTimeout
//   - WithTokenInfoEndpoint
//   - WithLogger
func NewClient(opt ...Option) (*Client, error) {
	const op = "exchange.NewClient"
	opts := getClientOpts(opt...)

	hc := opts.withHTTPClient
	if hc == nil {
		var err error
		hc, err = sdkHttp.NewClient(sdkHttp.WithCACert(opts.withCACert), sdkHttp.WithTimeout(opts.withTimeout))
		if err != nil {
			return nil, fmt.Errorf("%s: unable to create http client: %w: %w", op, ErrInvalidParameter, err)
		}
	}
	if err := validateURL(opts.withTokenInfoEndpoint); err != nil {
		return nil, fmt.Errorf("%s: token info endpoint: %w", op, err)
	}
	return &Client{
		httpClient:        hc,
		tokenInfoEndpoint: opts.withTokenInfoEndpoint,
		logger:            opts.withLogger,
	}, nil
}

// client returns the http client carried by ctx (see sdk/http.ClientContext)
// or the client's own.
func (c *Client) client(ctx context.Context) *http.Client {
	if hc, ok := sdkHttp.ContextClient(ctx); ok {
		return hc
	}
	return c.httpClient
}

type tokenResponse struct {
	IdToken          string `json:"id_token"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	ErrorURI         string `json:"error_uri"`
}

// Exchange posts assertion to tokenEndpoint with the JWT bearer grant type
// and returns the id_token from the json response.
//
// The response's HTTP status is not the failure signal: a response without
// an id_token is a ErrTokenExchange. When the body is an OAuth 2.0 error
// response the returned error also wraps an *oauth2.RetrieveError. Bodies
// larger than 1 MiB are rejected with ErrResponseTooLarge.
func (c *Client) Exchange(ctx context.Context, tokenEndpoint, assertion string) (IdToken, error) {
	const op = "Client.Exchange"
	if c == nil || c.httpClient == nil {
		return "", fmt.Errorf("%s: client is not initialized; please use NewClient(): %w", op, ErrInvalidParameter)
	}
	if err := validateURL(tokenEndpoint); err != nil {
		return "", fmt.Errorf("%s: token endpoint: %w", op, err)
	}
	if assertion == "" {
		return "", fmt.Errorf("%s: assertion is empty: %w", op, ErrInvalidParameter)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenEndpoint, strings.NewReader(EncodeForm(assertion)))
	if err != nil {
		return "", fmt.Errorf("%s: unable to create request: %w: %w", op, ErrInvalidParameter, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.Debug("redeeming assertion", "token_endpoint", tokenEndpoint)
	resp, body, err := c.do(req)
	switch {
	case errors.Is(err, ErrResponseTooLarge):
		return "", fmt.Errorf("%s: %w: %w", op, ErrTokenExchange, err)
	case err != nil:
		return "", fmt.Errorf("%s: %w", op, err)
	}
	c.logger.Debug("token endpoint responded", "status", resp.StatusCode, "bytes", len(body))

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("%s: cannot decode token response from %s (status %d): %w: %w", op, tokenEndpoint, resp.StatusCode, ErrTokenExchange, err)
	}
	if tr.IdToken == "" {
		if tr.Error != "" {
			rErr := &oauth2.RetrieveError{
				Response:         resp,
				Body:             body,
				ErrorCode:        tr.Error,
				ErrorDescription: tr.ErrorDescription,
				ErrorURI:         tr.ErrorURI,
			}
			return "", fmt.Errorf("%s: %s (status %d): %w: %w: %w", op, tokenEndpoint, resp.StatusCode, ErrTokenExchange, ErrMissingIdToken, rErr)
		}
		return "", fmt.Errorf("%s: %s (status %d): %w: %w", op, tokenEndpoint, resp.StatusCode, ErrTokenExchange, ErrMissingIdToken)
	}
	return IdToken(tr.IdToken), nil
}

// do sends req once and reads the response body. Errors never include the
// request's query, which may carry a token.
func (c *Client) do(req *http.Request) (*http.Response, []byte, error) {
	endpoint := withoutQuery(req.URL)
	resp, err := c.client(req.Context()).Do(req)
	if err != nil {
		var uErr *url.Error
		if errors.As(err, &uErr) {
			err = uErr.Err
		}
		return nil, nil, fmt.Errorf("request to %s failed: %w: %w", endpoint, ErrNetwork, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("reading response from %s failed: %w: %w", endpoint, ErrNetwork, err)
	}
	if len(body) > maxResponseSize {
		return nil, nil, fmt.Errorf("response from %s exceeds %d bytes: %w", endpoint, maxResponseSize, ErrResponseTooLarge)
	}
	return resp, body, nil
}

func withoutQuery(u *url.URL) string {
	c := *u
	c.RawQuery = ""
	c.Fragment = ""
	c.User = nil
	return c.String()
}

func validateURL(u string) error {
	if u == "" {
		return fmt.Errorf("url is empty: %w", ErrInvalidParameter)
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	if (parsed.Scheme != "https" && parsed.Scheme != "http") || parsed.Host == "" {
		return fmt.Errorf("%q is not an absolute http or https url: %w", u, ErrInvalidParameter)
	}
	return nil
}
