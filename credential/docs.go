// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

/*
credential reads service account key files and validates the fields the
JWT bearer flow depends on: private_key, client_email and token_uri.

Validation happens when the file is loaded, and every missing field is
reported as a *MissingFieldError.

Example usage:

	c, err := credential.Load("service-account.json")
	if err != nil {
		// handle error
	}
	fmt.Println(c.Issuer, c.TokenEndpoint)
*/
package credential
