// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned (possibly wrapped) when the
	// arguments to an estimator are unusable: an empty sample,
	// non-finite values, mismatched lengths, or empty limits.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoConvergence is returned (wrapped in a
	// *ConvergenceError) when a root could not be found.
	ErrNoConvergence = errors.New("did not converge")
)

// ConvergenceError describes a failed root search.
type ConvergenceError struct {
	// Lo and Hi are the bracket that was searched.
	Lo, Hi float64

	// Iterations is the number of iterations performed before
	// giving up.
	Iterations int

	// Reason says what went wrong.
	Reason string
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("root search in [%g, %g] did not converge after %d iterations: %s", e.Lo, e.Hi, e.Iterations, e.Reason)
}

func (e *ConvergenceError) Unwrap() error {
	return ErrNoConvergence
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidInput}, args...)...)
}
