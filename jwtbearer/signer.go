// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package jwtbearer

import (
	"crypto/rsa"
	"fmt"

	"github.com/go-jose/go-jose/v4"
)

// Signer signs payload with key and returns the JWS compact serialization
// (header.payload.signature). The payload bytes must be signed as given.
type Signer func(payload []byte, key *rsa.PrivateKey) (string, error)

var _ Signer = Sign

// Sign returns the RS256 compact JWS of payload with the header
// {"alg":"RS256","typ":"JWT"}.
func Sign(payload []byte, key *rsa.PrivateKey) (string, error) {
	const op = "jwtbearer.Sign"
	if key == nil {
		return "", fmt.Errorf("%s: private key is nil: %w", op, ErrSigning)
	}
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.RS256, Key: key},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", fmt.Errorf("%s: unable to create signer: %w: %w", op, ErrSigning, err)
	}
	jws, err := signer.Sign(payload)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrSigning, err)
	}
	compact, err := jws.CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("%s: unable to serialize: %w: %w", op, ErrSigning, err)
	}
	return compact, nil
}
