package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// NotFoundError indicates the requested record does not resolve, or is
// invisible to the caller for owner-scoped lookups.
type NotFoundError struct {
	Resource string
	Term     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with term %s not found", e.Resource, e.Term)
}

// ConflictError indicates a unique-constraint violation. Detail carries
// the constraint message from the database when available.
type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string {
	return e.Detail
}

// UnauthorizedError indicates the caller is not allowed to mutate the
// record it targeted.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string {
	return e.Msg
}

// InternalError masks an unexpected persistence failure. The original
// error is logged server-side and never reaches the caller.
type InternalError struct{}

func (e *InternalError) Error() string {
	return "unexpected error, check server logs"
}

// mapDBError is the single classification point for persistence
// failures shared by the product and store services. Unique-constraint
// violations become ConflictError; everything else is logged and masked
// as InternalError.
func mapDBError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &ConflictError{Detail: pgErr.Detail}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &ConflictError{Detail: err.Error()}
	}

	log.Printf("unexpected database error: %v", err)
	return &InternalError{}
}
