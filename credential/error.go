// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package credential

import (
	"errors"
	"fmt"
)

var (
	ErrCredentialFile  = errors.New("credential file error")
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidTokenURI = errors.New("invalid token uri")
)

// MissingFieldError reports a required credential field that is absent or
// empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingField, e.Field)
}

// Is allows errors.Is(err, ErrMissingField) to match any MissingFieldError.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}
