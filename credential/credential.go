// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package credential

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Field names read from a service account key file.
const (
	FieldPrivateKey  = "private_key"
	FieldClientEmail = "client_email"
	FieldTokenURI    = "token_uri"
)

// RequiredFields are checked, in this order, by New.
var RequiredFields = []string{FieldPrivateKey, FieldClientEmail, FieldTokenURI}

// PrivateKey is the PEM or base64 encoded PKCS#8 key of a service account.
type PrivateKey string

// RedactedPrivateKey is the redacted string or json for a private key
const RedactedPrivateKey = "[REDACTED: private key]"

// String will redact the private key
func (k PrivateKey) String() string {
	return RedactedPrivateKey
}

// MarshalJSON will redact the private key
func (k PrivateKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(RedactedPrivateKey)
}

// ServiceCredential identifies a service account and where it redeems
// assertions. It is not modified after New returns it.
type ServiceCredential struct {
	// PrivateKey signs the assertion.
	PrivateKey PrivateKey

	// Issuer is the service account identity (client_email) and becomes
	// the assertion's iss claim.
	Issuer string

	// TokenEndpoint is the token_uri. It is both the assertion's aud claim
	// and the URL the assertion is posted to.
	TokenEndpoint string

	fields map[string]string
}

// Field returns the raw value of a key file field and whether it was
// present.
func (c *ServiceCredential) Field(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c.fields[name]
	return v, ok
}

// ReadFile reads a service account key file into a map. The file must hold
// a single flat JSON object whose values are all strings.
func ReadFile(path string) (map[string]string, error) {
	const op = "credential.ReadFile"
	if path == "" {
		return nil, fmt.Errorf("%s: path is empty: %w", op, ErrCredentialFile)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrCredentialFile, err)
	}
	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%s: %s is not a flat json object of strings: %w: %w", op, path, ErrCredentialFile, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%s: %s does not contain a json object: %w", op, path, ErrCredentialFile)
	}
	return fields, nil
}

// New creates a ServiceCredential from key file fields. Every required
// field is checked up front; each one that is missing or empty is reported
// as a *MissingFieldError.
func New(fields map[string]string) (*ServiceCredential, error) {
	const op = "credential.New"
	var result *multierror.Error
	for _, f := range RequiredFields {
		if strings.TrimSpace(fields[f]) == "" {
			result = multierror.Append(result, &MissingFieldError{Field: f})
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tokenURI := fields[FieldTokenURI]
	u, err := url.Parse(tokenURI)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidTokenURI, err)
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return nil, fmt.Errorf("%s: %q must be an absolute http or https url: %w", op, tokenURI, ErrInvalidTokenURI)
	}

	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return &ServiceCredential{
		PrivateKey:    PrivateKey(fields[FieldPrivateKey]),
		Issuer:        fields[FieldClientEmail],
		TokenEndpoint: tokenURI,
		fields:        copied,
	}, nil
}

// Load reads and validates the key file at path.
func Load(path string) (*ServiceCredential, error) {
	const op = "credential.Load"
	fields, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := New(fields)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, path, err)
	}
	return c, nil
}
