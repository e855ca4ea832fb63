// Package services implements the operations that span more than one repository
// call: invoice creation, due collection, quotation numbering, credentials,
// the admin profile and reporting.
package services

import "errors"

var (
	// ErrInvalidInput wraps every error caused by a bad request payload.
	ErrInvalidInput = errors.New("invalid input")
	// ErrWrongPassword is returned for any failed credential check.
	ErrWrongPassword = errors.New("wrong password")
)
