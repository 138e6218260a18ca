// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package idtoken

import (
	"time"

	"github.com/hashicorp/cap-idtoken/exchange"
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

// fetchOptions is the set of available options for Fetch
type fetchOptions struct {
	withClient *exchange.Client
	withLogger hclog.Logger
	withNow    func() time.Time
}

func fetchDefaults() fetchOptions {
	return fetchOptions{
		withLogger: hclog.NewNullLogger(),
		withNow:    time.Now,
	}
}

// getFetchOpts gets the defaults and applies the opt overrides passed in.
func getFetchOpts(opt ...Option) fetchOptions {
	opts := fetchDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// WithClient provides an optional exchange client. By default Fetch creates
// one with no request timeout.
func WithClient(c *exchange.Client) Option {
	return func(o interface{}) {
		if o, ok := o.(*fetchOptions); ok {
			o.withClient = c
		}
	}
}

// WithLogger provides an optional logger.
func WithLogger(l hclog.Logger) Option {
	return func(o interface{}) {
		if o, ok := o.(*fetchOptions); ok && l != nil {
			o.withLogger = l
		}
	}
}

// WithNow provides an optional clock for the assertion's iat and exp claims.
func WithNow(now func() time.Time) Option {
	return func(o interface{}) {
		if o, ok := o.(*fetchOptions); ok && now != nil {
			o.withNow = now
		}
	}
}
