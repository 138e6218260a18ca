// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

/*
jwtbearer mints the signed JWT assertions a service account presents to an
OAuth 2.0 token endpoint using the JWT bearer grant (RFC 7523) to obtain an
ID token for a target audience.

Every assertion has the fixed header {"alg":"RS256","typ":"JWT"} and the
claims iss, aud, exp, iat and target_audience, in that order, where aud is
the token endpoint and exp is always 60 seconds after iat.

Example usage:

	c, err := credential.Load("service-account.json")
	if err != nil {
		// handle error
	}
	a, err := jwtbearer.New(c, "https://api.example.com")
	if err != nil {
		// handle error
	}
	assertion, err := a.Serialize()
*/
package jwtbearer
