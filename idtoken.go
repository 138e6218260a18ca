// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package idtoken

import (
	"context"
	"fmt"

	"github.com/hashicorp/cap-idtoken/credential"
	"github.com/hashicorp/cap-idtoken/exchange"
	"github.com/hashicorp/cap-idtoken/jwtbearer"
)

// Fetch mints a new assertion for the service account c and redeems it at
// c.TokenEndpoint for an id_token with targetAudience as its audience.
//
// Supported options:
//   - WithClient
//   - WithLogger
//   - WithNow
func Fetch(ctx context.Context, c *credential.ServiceCredential, targetAudience string, opt ...Option) (exchange.IdToken, error) {
	const op = "idtoken.Fetch"
	if c == nil {
		return "", fmt.Errorf("%s: credential is nil: %w", op, exchange.ErrInvalidParameter)
	}
	opts := getFetchOpts(opt...)

	client := opts.withClient
	if client == nil {
		var err error
		if client, err = exchange.NewClient(exchange.WithLogger(opts.withLogger)); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	a, err := jwtbearer.New(c, targetAudience,
		jwtbearer.WithLogger(opts.withLogger),
		jwtbearer.WithNow(opts.withNow),
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	assertion, err := a.Serialize()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	tok, err := client.Exchange(ctx, c.TokenEndpoint, assertion)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	opts.withLogger.Debug("received id_token", "issuer", c.Issuer, "target_audience", targetAudience)
	return tok, nil
}
