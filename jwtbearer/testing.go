// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package jwtbearer

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestGenerateKey will generate a test 2048-bit RSA key and return it along
// with its PKCS#8 PEM encoding.
func TestGenerateKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	require := require.New(t)
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(err)

	derBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(err)
	pemBlock := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: derBytes,
	}
	return priv, string(pem.EncodeToMemory(pemBlock))
}
