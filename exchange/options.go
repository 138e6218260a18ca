// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package exchange

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Option defines a common functional options type which can be used in a
// variadic parameter pattern.
type Option func(interface{})

// ApplyOpts takes a pointer to the options struct as a set of default options
// and applies the slice of opts as overrides.
func ApplyOpts(opts interface{}, opt ...Option) {
	for _, o := range opt {
		if o == nil { // ignore any nil Options
			continue
		}
		o(opts)
	}
}

// clientOptions is the set of available options for NewClient
type clientOptions struct {
	withHTTPClient        *http.Client
	withCACert            string
	withTimeout           time.Duration
	withTokenInfoEndpoint string
	withLogger            hclog.Logger
}

func clientDefaults() clientOptions {
	return clientOptions{
		withTokenInfoEndpoint: DefaultTokenInfoEndpoint,
		withLogger:            hclog.NewNullLogger(),
	}
}

// getClientOpts gets the defaults and applies the opt overrides passed in.
func getClientOpts(opt ...Option) clientOptions {
	opts := clientDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// WithHTTPClient provides an optional http client. When set, WithCACert and
// WithTimeout are ignored.
func WithHTTPClient(c *http.Client) Option {
	return func(o interface{}) {
		if o, ok := o.(*clientOptions); ok {
			o.withHTTPClient = c
		}
	}
}

// WithCACert provides an optional CA certificate PEM for the token and
// token info endpoints.
func WithCACert(caPEM string) Option {
	return func(o interface{}) {
		if o, ok := o.(*clientOptions); ok {
			o.withCACert = caPEM
		}
	}
}

// WithTimeout provides an optional per request timeout. The default is no
// timeout, so callers embedding the client in a long running process
// should set one or pass a context with a deadline.
func WithTimeout(d time.Duration) Option {
	return func(o interface{}) {
		if o, ok := o.(*clientOptions); ok {
			o.withTimeout = d
		}
	}
}

// WithTokenInfoEndpoint provides an optional token info endpoint for
// Inspect.
func WithTokenInfoEndpoint(u string) Option {
	return func(o interface{}) {
		if o, ok := o.(*clientOptions); ok && u != "" {
			o.withTokenInfoEndpoint = u
		}
	}
}

// WithLogger provides an optional logger.
func WithLogger(l hclog.Logger) Option {
	return func(o interface{}) {
		if o, ok := o.(*clientOptions); ok && l != nil {
			o.withLogger = l
		}
	}
}
