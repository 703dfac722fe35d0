// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks registration input before an account is
// created: username characters, email shape and master password strength.
package validators

import "context"

// Validator checks a value. With field names given, only those fields are
// checked; otherwise all of them are.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
