// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package jwtbearer

import (
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

// assertionOptions is the set of available options for New
type assertionOptions struct {
	withNow    func() time.Time
	withSigner Signer
	withLogger hclog.Logger
}

func assertionDefaults() assertionOptions {
	return assertionOptions{
		withNow:    time.Now,
		withSigner: Sign,
		withLogger: hclog.NewNullLogger(),
	}
}

// getAssertionOpts gets the defaults and applies the opt overrides passed
// in.
func getAssertionOpts(opt ...Option) assertionOptions {
	opts := assertionDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// WithNow provides an optional clock used for the iat and exp claims.
func WithNow(now func() time.Time) Option {
	return func(o interface{}) {
		if o, ok := o.(*assertionOptions); ok && now != nil {
			o.withNow = now
		}
	}
}

// WithSigner provides an optional Signer, replacing Sign.
func WithSigner(s Signer) Option {
	return func(o interface{}) {
		if o, ok := o.(*assertionOptions); ok && s != nil {
			o.withSigner = s
		}
	}
}

// WithLogger provides an optional logger. The claims of every assertion are
// logged at debug level before they are signed.
func WithLogger(l hclog.Logger) Option {
	return func(o interface{}) {
		if o, ok := o.(*assertionOptions); ok && l != nil {
			o.withLogger = l
		}
	}
}
