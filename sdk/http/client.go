// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package http

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/oauth2"
)

var ErrInvalidCertificatePem = errors.New("invalid certificate PEM")

// Option defines a common functional options type which can be used in a
// variadic parameter pattern.
type Option func(interface{})

type clientOptions struct {
	withCACert  string
	withTimeout time.Duration
}

func clientDefaults() clientOptions {
	return clientOptions{}
}

func getClientOpts(opt ...Option) clientOptions {
	opts := clientDefaults()
	for _, o := range opt {
		if o != nil {
			o(&opts)
		}
	}
	return opts
}

// WithCACert provides an optional CA certificate PEM used instead of the
// installed system CA chain.
func WithCACert(caPEM string) Option {
	return func(o interface{}) {
		if o, ok := o.(*clientOptions); ok {
			o.withCACert = caPEM
		}
	}
}

// WithTimeout provides an optional timeout for each request made by the
// client. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(o interface{}) {
		if o, ok := o.(*clientOptions); ok {
			o.withTimeout = d
		}
	}
}

// NewClient creates a new http client on a pooled cleanhttp transport. It
// uses the installed system CA chain unless WithCACert is provided.
//
// Supported options:
//   - WithCACert
//   - WithTimeout
func NewClient(opt ...Option) (*http.Client, error) {
	opts := getClientOpts(opt...)
	tr := cleanhttp.DefaultPooledTransport()

	if opts.withCACert != "" {
		certPool := x509.NewCertPool()
		if ok := certPool.AppendCertsFromPEM([]byte(opts.withCACert)); !ok {
			return nil, ErrInvalidCertificatePem
		}

		tr.TLSClientConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
			RootCAs:    certPool,
		}
	}

	return &http.Client{
		Transport: tr,
		Timeout:   opts.withTimeout,
	}, nil
}

// ClientContext returns a new Context that carries the provided HTTP client.
// It uses the context key used by github.com/coreos/go-oidc and
// golang.org/x/oauth2, so the returned context works for those packages as
// well.
func ClientContext(ctx context.Context, client *http.Client) context.Context {
	return oidc.ClientContext(ctx, client)
}

// ContextClient returns the HTTP client carried by ctx, if any.
func ContextClient(ctx context.Context) (*http.Client, bool) {
	if ctx == nil {
		return nil, false
	}
	c, ok := ctx.Value(oauth2.HTTPClient).(*http.Client)
	return c, ok && c != nil
}
