// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package exchange

import (
	"fmt"
	"net/url"

	"github.com/hashicorp/cap-idtoken/jwtbearer"
)

const (
	assertionParameter = "assertion"
	grantTypeParameter = "grant_type"
)

// EncodeForm returns the application/x-www-form-urlencoded body that
// redeems assertion: exactly the assertion and grant_type fields.
func EncodeForm(assertion string) string {
	return encodeForm(assertion, jwtbearer.GrantType)
}

func encodeForm(assertion, grantType string) string {
	return url.Values{
		assertionParameter: {assertion},
		grantTypeParameter: {grantType},
	}.Encode()
}

// DecodeForm parses a body produced by EncodeForm and returns the assertion
// and grant type.
func DecodeForm(body string) (assertion, grantType string, err error) {
	const op = "exchange.DecodeForm"
	v, err := url.ParseQuery(body)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w: %w", op, ErrInvalidParameter, err)
	}
	if len(v) != 2 || len(v[assertionParameter]) != 1 || len(v[grantTypeParameter]) != 1 {
		return "", "", fmt.Errorf("%s: expected exactly %q and %q: %w", op, assertionParameter, grantTypeParameter, ErrInvalidParameter)
	}
	return v.Get(assertionParameter), v.Get(grantTypeParameter), nil
}
