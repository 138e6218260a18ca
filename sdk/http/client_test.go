// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package http

import (
	"context"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestNewClient(t *testing.T) {
	t.Parallel()
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)
	caPEM := string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw}))

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		c, err := NewClient()
		require.NoError(t, err)
		assert.Zero(t, c.Timeout)
		assert.NotNil(t, c.Transport)
	})
	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		c, err := NewClient(WithTimeout(3 * time.Second))
		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, c.Timeout)
	})
	t.Run("invalid-ca", func(t *testing.T) {
		t.Parallel()
		c, err := NewClient(WithCACert("not a cert"))
		require.ErrorIs(t, err, ErrInvalidCertificatePem)
		assert.Nil(t, c)
	})
	t.Run("trusted-ca", func(t *testing.T) {
		t.Parallel()
		c, err := NewClient(WithCACert(caPEM))
		require.NoError(t, err)
		resp, err := c.Get(srv.URL)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "ok", string(body))
	})
	t.Run("untrusted", func(t *testing.T) {
		t.Parallel()
		c, err := NewClient()
		require.NoError(t, err)
		_, err = c.Get(srv.URL)
		assert.Error(t, err)
	})
}

func TestClientContext(t *testing.T) {
	t.Parallel()
	c, ok := ContextClient(context.Background())
	assert.False(t, ok)
	assert.Nil(t, c)

	want := &http.Client{Timeout: time.Second}
	got, ok := ContextClient(ClientContext(context.Background(), want))
	assert.True(t, ok)
	assert.Same(t, want, got)
}

func TestClientContext_OAuth2Key(t *testing.T) {
	t.Parallel()
	want := &http.Client{Timeout: time.Second}
	ctx := ClientContext(context.Background(), want)
	got, ok := ctx.Value(oauth2.HTTPClient).(*http.Client)
	require.True(t, ok)
	assert.Same(t, want, got)

	got, ok = ContextClient(oidc.ClientContext(context.Background(), want))
	assert.True(t, ok)
	assert.Same(t, want, got)
}
