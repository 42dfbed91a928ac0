// Package domain holds the error taxonomy shared by every subsystem.
// Errors are created at the point of detection and propagate unmodified
// to the transport layer, which maps each type to exactly one HTTP status.
package domain

import "fmt"

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	Msg    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Msg)
}

// NewNotFoundError creates a NotFoundError for the given entity kind.
func NewNotFoundError(entity, msg string) *NotFoundError {
	return &NotFoundError{Entity: entity, Msg: msg}
}

// ValidationError signals a malformed or unsatisfiable request.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError creates a ValidationError.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

// OwnershipError signals that the acting party violates an ownership rule
// of the booking lifecycle (booking an own item, deciding someone else's
// booking). The transport layer reports it as not-found rather than
// forbidden so that existence is not leaked to unrelated parties.
type OwnershipError struct {
	Msg string
}

func (e *OwnershipError) Error() string { return e.Msg }

// NewOwnershipError creates an OwnershipError.
func NewOwnershipError(msg string) *OwnershipError {
	return &OwnershipError{Msg: msg}
}

// ForbiddenError signals an access violation that is reported as 403,
// such as editing an item owned by another user.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string { return e.Msg }

// NewForbiddenError creates a ForbiddenError.
func NewForbiddenError(msg string) *ForbiddenError {
	return &ForbiddenError{Msg: msg}
}

// StatusUpdateError signals a redundant or impossible booking status
// transition. A booking's status is terminal once it leaves WAITING.
type StatusUpdateError struct {
	Msg string
}

func (e *StatusUpdateError) Error() string { return e.Msg }

// NewStatusUpdateError creates a StatusUpdateError.
func NewStatusUpdateError(msg string) *StatusUpdateError {
	return &StatusUpdateError{Msg: msg}
}

// EmailExistsError signals a uniqueness conflict on a user's email.
type EmailExistsError struct {
	Email string
}

func (e *EmailExistsError) Error() string {
	return fmt.Sprintf("email already in use: %s", e.Email)
}

// NewEmailExistsError creates an EmailExistsError.
func NewEmailExistsError(email string) *EmailExistsError {
	return &EmailExistsError{Email: email}
}

// UnknownStateError signals an unrecognized state token in a listing
// query. The message echoes the offending token verbatim.
type UnknownStateError struct {
	Token string
}

func (e *UnknownStateError) Error() string {
	return "Unknown state: " + e.Token
}

// NewUnknownStateError creates an UnknownStateError carrying the token.
func NewUnknownStateError(token string) *UnknownStateError {
	return &UnknownStateError{Token: token}
}

// PaginationError signals a negative offset or non-positive page size.
type PaginationError struct {
	From int
	Size int
}

func (e *PaginationError) Error() string {
	return fmt.Sprintf("invalid pagination window: from=%d size=%d", e.From, e.Size)
}

// NewPaginationError creates a PaginationError.
func NewPaginationError(from, size int) *PaginationError {
	return &PaginationError{From: from, Size: size}
}
