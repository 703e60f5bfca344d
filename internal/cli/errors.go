// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import "errors"

var (
	// errInvalidFieldArg is returned for a field argument without "=" or
	// with an empty name.
	errInvalidFieldArg = errors.New("invalid field argument")

	// errNoFields is returned by create and update when no field argument
	// is given.
	errNoFields = errors.New("at least one name=value field is required")
)
