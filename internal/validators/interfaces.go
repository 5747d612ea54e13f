// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds field-scoped input checks for domain values.
//
// A Validator inspects a value and, when field names are given, checks only
// those fields. Services wrap the returned sentinel errors with their own
// validation error so transport layers can map them to a status code.
package validators

import "context"

// Validator validates arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
