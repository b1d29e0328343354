// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import "errors"

// ValidationError indicates a missing/zero attached value on a payable call,
// or a target staker that does not exist.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// AuthorizationError indicates the caller identity does not match the role
// required by the handler.
type AuthorizationError struct {
	msg string
}

func (e *AuthorizationError) Error() string { return e.msg }

// InsufficientFundsError indicates the reward pool cannot cover the computed
// bonus at withdrawal time.
type InsufficientFundsError struct {
	msg string
}

func (e *InsufficientFundsError) Error() string { return e.msg }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsAuthorization reports whether err is (or wraps) an AuthorizationError.
func IsAuthorization(err error) bool {
	var target *AuthorizationError
	return errors.As(err, &target)
}

// IsInsufficientFunds reports whether err is (or wraps) an InsufficientFundsError.
func IsInsufficientFunds(err error) bool {
	var target *InsufficientFundsError
	return errors.As(err, &target)
}

// NewValidationError builds a ValidationError with the given message. It is
// exported for host-side layers that validate calls before dispatch.
func NewValidationError(msg string) error {
	return &ValidationError{msg: msg}
}

func validationErr(msg string) error {
	return &ValidationError{msg: msg}
}

func authorizationErr(msg string) error {
	return &AuthorizationError{msg: msg}
}

func insufficientFundsErr(msg string) error {
	return &InsufficientFundsError{msg: msg}
}
