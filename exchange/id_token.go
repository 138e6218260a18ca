// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package exchange

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
)

// IdToken is an id_token returned by a token endpoint.
type IdToken string

// RedactedIdToken is the redacted string or json for an id_token
const RedactedIdToken = "[REDACTED: id_token]"

// String will redact the token
func (t IdToken) String() string {
	return RedactedIdToken
}

// MarshalJSON will redact the token
func (t IdToken) MarshalJSON() ([]byte, error) {
	return json.Marshal(RedactedIdToken)
}

var supportedAlgorithms = []jose.SignatureAlgorithm{
	jose.RS256, jose.RS384, jose.RS512,
	jose.ES256, jose.ES384, jose.ES512,
	jose.PS256, jose.PS384, jose.PS512,
	jose.EdDSA,
}

// Claims decodes the id_token's claims into claims. The signature is NOT
// verified, so the result is only suitable for display.
func (t IdToken) Claims(claims interface{}) error {
	const op = "IdToken.Claims"
	if len(t) == 0 {
		return fmt.Errorf("%s: id_token is empty: %w", op, ErrInvalidParameter)
	}
	if claims == nil {
		return fmt.Errorf("%s: claims interface is nil: %w", op, ErrInvalidParameter)
	}
	tok, err := jwt.ParseSigned(string(t), supportedAlgorithms)
	if err != nil {
		return fmt.Errorf("%s: unable to parse id_token: %w", op, err)
	}
	if err := tok.UnsafeClaimsWithoutVerification(claims); err != nil {
		return fmt.Errorf("%s: unable to decode id_token claims: %w", op, err)
	}
	return nil
}

// Expiry returns the id_token's exp claim, unverified.
func (t IdToken) Expiry() (time.Time, error) {
	const op = "IdToken.Expiry"
	var c jwt.Claims
	if err := t.Claims(&c); err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	if c.Expiry == nil {
		return time.Time{}, fmt.Errorf("%s: id_token has no exp claim: %w", op, ErrInvalidParameter)
	}
	return c.Expiry.Time(), nil
}
