// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package jwtbearer

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// Lifetime of every assertion. The token endpoint only needs the assertion
// long enough to redeem it.
const Lifetime = 60 * time.Second

// Claims of a JWT-bearer assertion requesting an ID token. Fields are
// declared in the order they are serialized.
type Claims struct {
	// Issuer is the service account identity.
	Issuer string `json:"iss"`

	// Audience is the token endpoint the assertion is redeemed at.
	Audience string `json:"aud"`

	Expiry   int64 `json:"exp"`
	IssuedAt int64 `json:"iat"`

	// TargetAudience is the audience of the requested ID token.
	TargetAudience string `json:"target_audience"`
}

// NewClaims returns claims issued at now (truncated to seconds) which expire
// Lifetime later.
func NewClaims(issuer, audience, targetAudience string, now time.Time) Claims {
	iat := now.Unix()
	return Claims{
		Issuer:         issuer,
		Audience:       audience,
		Expiry:         iat + int64(Lifetime/time.Second),
		IssuedAt:       iat,
		TargetAudience: targetAudience,
	}
}

// Validate checks that every claim is set and that the claims expire
// exactly Lifetime after they were issued.
func (c Claims) Validate() error {
	const op = "Claims.Validate"
	switch {
	case c.Issuer == "":
		return fmt.Errorf("%s: %w", op, ErrMissingIssuer)
	case c.Audience == "":
		return fmt.Errorf("%s: %w", op, ErrMissingAudience)
	case c.TargetAudience == "":
		return fmt.Errorf("%s: %w", op, ErrMissingTargetAudience)
	case c.IssuedAt <= 0:
		return fmt.Errorf("%s: iat must be positive: %w", op, ErrInvalidClaims)
	case c.Expiry != c.IssuedAt+int64(Lifetime/time.Second):
		return fmt.Errorf("%s: exp must be iat + %d: %w", op, int64(Lifetime/time.Second), ErrInvalidClaims)
	}
	return nil
}

// JSON returns the compact json encoding of the claims. Characters such as
// '&' and '<' are written as is rather than as unicode escapes.
func (c Claims) JSON() ([]byte, error) {
	const op = "Claims.JSON"
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Encode returns the claims as a base64url (unpadded) JWT segment.
func (c Claims) Encode() (string, error) {
	b, err := c.JSON()
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
