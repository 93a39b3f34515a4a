package service

import (
	"errors"
	"fmt"
)

// Kind classifies service failures for callers (the HTTP layer maps kinds to
// status codes).
type Kind string

const (
	// KindConflict 唯一性冲突，Field 标记冲突字段
	KindConflict Kind = "conflict"
	// KindInvalidCredentials 认证失败，不区分用户不存在与密码错误
	KindInvalidCredentials Kind = "invalid_credentials"
	// KindNotFound 标识符无法解析到已有账户
	KindNotFound Kind = "not_found"
	// KindTransactionFailure 存储层/事务失败，保留底层原因
	KindTransactionFailure Kind = "transaction_failure"
)

// Error is the structured service error. Message is safe to show to callers;
// Err carries the machine-inspectable cause and is never serialized.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap 支持 errors.Is / errors.As
func (e *Error) Unwrap() error {
	return e.Err
}

// errInvalidCredentials is shared by both authentication failure paths so a
// caller can never tell a missing name from a wrong password.
var errInvalidCredentials = &Error{
	Kind:    KindInvalidCredentials,
	Message: "invalid name or password",
}

func conflictError(field string) *Error {
	return &Error{
		Kind:    KindConflict,
		Field:   field,
		Message: fmt.Sprintf("%s already exists", field),
	}
}

func notFoundError() *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: "no such account",
	}
}

func storageError(op string, err error) *Error {
	return &Error{
		Kind:    KindTransactionFailure,
		Message: fmt.Sprintf("%s failed", op),
		Err:     err,
	}
}

// ErrKind extracts the service error kind, or "" for foreign errors.
func ErrKind(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return ""
}

// AsError 提取 *Error；非服务错误返回 nil
func AsError(err error) *Error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return nil
}
