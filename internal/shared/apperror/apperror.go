package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind phân loại lỗi để formatter quyết định status, log level và có report hay không
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
)

// Error codes exposed to clients
const (
	CodeBadUserInput = "BAD_USER_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
)

// Postgres SQLSTATE codes we translate
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgStringTooLong       = "22001"
	pgInvalidDatetime     = "22007"
	pgDatetimeOverflow    = "22008"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Extensions is picked up by graphql-go when the error reaches the executor
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

// ========================================
// CONSTRUCTORS
// ========================================

func Validation(message string, err error) *Error {
	return &Error{Kind: KindValidation, Code: CodeBadUserInput, Message: message, Err: err}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Code: CodeNotFound, Message: resource + " not found"}
}

func Conflict(message string, err error) *Error {
	return &Error{Kind: KindConflict, Code: CodeConflict, Message: message, Err: err}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeInternal, Message: message, Err: err}
}

// ========================================
// CLASSIFICATION
// ========================================

// KindOf returns KindInternal for anything that is not an *Error
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

// IsReportable: chỉ lỗi hạ tầng mới gửi lên error tracker
func IsReportable(err error) bool {
	return err != nil && KindOf(err) == KindInternal
}

func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage hides internal details from clients
func PublicMessage(err error) string {
	if KindOf(err) == KindInternal {
		return "internal server error"
	}
	// driver messages carry SQL detail, keep only our own wording
	var appErr *Error
	var pgErr *pgconn.PgError
	if errors.As(err, &appErr) && errors.As(err, &pgErr) {
		return appErr.Message
	}
	return err.Error()
}

// FromPg translates a pgx error into the taxonomy. op describes the failed operation
// and is used as the message for infrastructure errors.
func FromPg(err error, op string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return Conflict("referential constraint violated", err)
		case pgUniqueViolation:
			return Conflict("duplicate value", err)
		case pgNotNullViolation, pgCheckViolation, pgStringTooLong, pgInvalidDatetime, pgDatetimeOverflow:
			return Validation("invalid value for "+columnOrConstraint(pgErr), err)
		}
	}
	return Internal(op, err)
}

// IsForeignKeyViolation lets repositories attach a message that fits the operation
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

func columnOrConstraint(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return "field"
}
