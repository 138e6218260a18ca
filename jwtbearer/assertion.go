// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package jwtbearer

import (
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/cap-idtoken/credential"
	"github.com/hashicorp/go-hclog"
)

const (
	// GrantType is the grant_type used to redeem an assertion.
	// https://www.rfc-editor.org/rfc/rfc7523.html#section-2.1
	GrantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	// Algorithm is the only signing algorithm used for assertions.
	Algorithm = "RS256"

	// Header is the JOSE header of every assertion.
	Header = `{"alg":"RS256","typ":"JWT"}`
)

var encodedHeader = base64.RawURLEncoding.EncodeToString([]byte(Header))

// Assertion mints signed JWT-bearer assertions for one service account and
// target audience.
type Assertion struct {
	issuer         string
	audience       string
	targetAudience string
	key            *rsa.PrivateKey

	now    func() time.Time
	sign   Signer
	logger hclog.Logger
}

// New creates an Assertion for the service account c. The aud claim is the
// credential's token endpoint and targetAudience becomes the
// target_audience claim.
//
// Supported options:
//   - WithNow
//   - WithSigner
//   - WithLogger
func New(c *credential.ServiceCredential, targetAudience string, opt ...Option) (*Assertion, error) {
	const op = "jwtbearer.New"
	if c == nil {
		return nil, fmt.Errorf("%s: credential is nil: %w", op, ErrInvalidClaims)
	}
	key, err := ParsePrivateKey(string(c.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return NewWithKey(c.Issuer, c.TokenEndpoint, targetAudience, key, opt...)
}

// NewWithKey creates an Assertion from its parts.
//
// Supported options:
//   - WithNow
//   - WithSigner
//   - WithLogger
func NewWithKey(issuer, audience, targetAudience string, key *rsa.PrivateKey, opt ...Option) (*Assertion, error) {
	const op = "jwtbearer.NewWithKey"
	opts := getAssertionOpts(opt...)
	a := &Assertion{
		issuer:         issuer,
		audience:       audience,
		targetAudience: targetAudience,
		key:            key,
		now:            opts.withNow,
		sign:           opts.withSigner,
		logger:         opts.withLogger,
	}
	if err := a.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

func (a *Assertion) validate() error {
	const op = "Assertion.validate"
	switch {
	case a.now == nil:
		return fmt.Errorf("%s: %w", op, ErrMissingFuncNow)
	case a.sign == nil:
		return fmt.Errorf("%s: %w", op, ErrMissingFuncSigner)
	case a.key == nil:
		return fmt.Errorf("%s: private key is nil: %w", op, ErrKeyFormat)
	case a.issuer == "":
		return fmt.Errorf("%s: %w", op, ErrMissingIssuer)
	case a.audience == "":
		return fmt.Errorf("%s: %w", op, ErrMissingAudience)
	case a.targetAudience == "":
		return fmt.Errorf("%s: %w", op, ErrMissingTargetAudience)
	}
	return nil
}

// Claims returns the claims an assertion minted now would carry.
func (a *Assertion) Claims() Claims {
	return NewClaims(a.issuer, a.audience, a.targetAudience, a.now())
}

// Serialize mints a new signed assertion in JWS compact form. Each call
// reads the clock again, so an assertion is never reused.
func (a *Assertion) Serialize() (string, error) {
	const op = "Assertion.Serialize"
	if err := a.validate(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	claims := a.Claims()
	if err := claims.Validate(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	a.logger.Debug("jwt payload",
		"iss", claims.Issuer,
		"aud", claims.Audience,
		"exp", claims.Expiry,
		"iat", claims.IssuedAt,
		"target_audience", claims.TargetAudience,
	)

	payload, err := claims.JSON()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	signingInput := encodedHeader + "." + base64.RawURLEncoding.EncodeToString(payload)
	signed, err := a.sign(payload, a.key)
	switch {
	case err != nil && errors.Is(err, ErrSigning):
		return "", fmt.Errorf("%s: %w", op, err)
	case err != nil:
		return "", fmt.Errorf("%s: %w: %w", op, ErrSigning, err)
	case signed == "":
		return "", fmt.Errorf("%s: empty assertion: %w", op, ErrSigning)
	case !strings.HasPrefix(signed, signingInput+"."):
		return "", fmt.Errorf("%s: assertion does not carry the %s header and the claims as given: %w", op, Header, ErrSigning)
	case len(signed) == len(signingInput)+1:
		return "", fmt.Errorf("%s: empty signature: %w", op, ErrSigning)
	}
	return signed, nil
}
