// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package exchange

import "errors"

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNetwork          = errors.New("network error")
	ErrTokenExchange    = errors.New("token exchange failed")
	ErrMissingIdToken   = errors.New("id_token is missing")
	ErrResponseTooLarge = errors.New("response is too large")
)
