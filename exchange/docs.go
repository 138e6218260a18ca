// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

/*
exchange redeems JWT-bearer assertions at an OAuth 2.0 token endpoint for
id_tokens, and can show what a token info endpoint reports about an
id_token.

Every call makes one request. Nothing is retried and nothing is cached;
callers that need a deadline pass a context with one or use WithTimeout.

Example usage:

	c, err := exchange.NewClient(exchange.WithTimeout(10 * time.Second))
	if err != nil {
		// handle error
	}
	tok, err := c.Exchange(ctx, cred.TokenEndpoint, assertion)
	if err != nil {
		// handle error
	}
	info, err := c.Inspect(ctx, tok)
*/
package exchange
