// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package exchange

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Inspect asks the token info endpoint about t and returns the raw
// response body. The body is not parsed or validated; bodies larger than
// 1 MiB are rejected with ErrResponseTooLarge.
func (c *Client) Inspect(ctx context.Context, t IdToken) ([]byte, error) {
	const op = "Client.Inspect"
	if c == nil || c.httpClient == nil {
		return nil, fmt.Errorf("%s: client is not initialized; please use NewClient(): %w", op, ErrInvalidParameter)
	}
	if t == "" {
		return nil, fmt.Errorf("%s: id_token is empty: %w", op, ErrInvalidParameter)
	}
	u, err := url.Parse(c.tokenInfoEndpoint)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidParameter, err)
	}
	q := u.Query()
	q.Set("id_token", string(t))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to create request: %w: %w", op, ErrInvalidParameter, err)
	}
	c.logger.Debug("inspecting id_token", "token_info_endpoint", c.tokenInfoEndpoint)
	resp, body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.logger.Debug("token info endpoint responded", "status", resp.StatusCode, "bytes", len(body))
	return body, nil
}
