// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// idtoken obtains ID tokens for a service account with the OAuth 2.0 JWT
// bearer grant (RFC 7523). The service account signs a short lived
// assertion with its RSA private key and redeems it at its token endpoint
// for an id_token whose audience is the requested target audience.
//
// Packages:
//   - credential: reads and validates service account key files
//   - jwtbearer: parses keys and mints signed assertions
//   - exchange: redeems assertions and inspects id_tokens
//   - sdk/http: http client construction shared by the above
//
// See cmd/idtoken for a command line tool built on Fetch.
package idtoken
