package domain

import (
	"errors"
	"strings"
)

// Common domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("invalid credentials")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)

// kindError is a user-facing variant of one of the sentinels above
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string {
	return e.msg
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

// Not-found variants, all matching ErrNotFound
var (
	ErrClientNotFound   error = &kindError{"client not found", ErrNotFound}
	ErrEngineerNotFound error = &kindError{"engineer not found", ErrNotFound}
	ErrRecordNotFound   error = &kindError{"maintenance record not found", ErrNotFound}
	ErrMemoNotFound     error = &kindError{"memo not found", ErrNotFound}
)

// Conflict variants, all matching ErrConflict
var (
	ErrAmbiguousClient   error = &kindError{"client name matches several clients", ErrConflict}
	ErrAmbiguousEngineer error = &kindError{"engineer name matches several engineers", ErrConflict}
	ErrAmbiguousRecordID error = &kindError{"record id matches several records", ErrConflict}
)

// ValidationError names the fields that were missing or malformed
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "malformed fields: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Fields returns every offending field name, missing first
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Missing)+len(e.Invalid))
	fields = append(fields, e.Missing...)
	return append(fields, e.Invalid...)
}

// Validator collects field problems and yields a *ValidationError when any were found
type Validator struct {
	err ValidationError
}

// Require records name as missing when value is blank
func (v *Validator) Require(name, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.err.Missing = append(v.err.Missing, name)
	}
	return v
}

// Check records name as malformed when ok is false
func (v *Validator) Check(name string, ok bool) *Validator {
	if !ok {
		v.err.Invalid = append(v.err.Invalid, name)
	}
	return v
}

// Err returns the collected error or nil
func (v *Validator) Err() error {
	if len(v.err.Missing) == 0 && len(v.err.Invalid) == 0 {
		return nil
	}
	e := v.err
	return &e
}
