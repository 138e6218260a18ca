// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package jwtbearer

import "errors"

var (
	// these may happen due to user error

	ErrKeyFormat             = errors.New("invalid private key format")
	ErrMissingIssuer         = errors.New("missing issuer")
	ErrMissingAudience       = errors.New("missing audience")
	ErrMissingTargetAudience = errors.New("missing target audience")
	ErrInvalidClaims         = errors.New("invalid claims")

	// cryptographic failures are always fatal to the current request

	ErrSigning = errors.New("error signing assertion")

	// if these happen, either the caller directly instantiated &Assertion{}
	// or there's a bug somewhere.

	ErrMissingFuncNow    = errors.New("missing now func; please use New()")
	ErrMissingFuncSigner = errors.New("missing signer func; please use New()")
)
