package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")
)

// ErrorCode закрытый перечень бизнес-ошибок. Каждому коду соответствует человекочитаемое описание.
type ErrorCode string

const (
	CodeUserNotFound               ErrorCode = "USER_NOT_FOUND"
	CodeMaxAccountPerUser10        ErrorCode = "MAX_ACCOUNT_PER_USER_10"
	CodeAccountNotFound            ErrorCode = "ACCOUNT_NOT_FOUND"
	CodeUserAccountUnMatched       ErrorCode = "USER_ACCOUNT_UN_MATCHED"
	CodeAccountAlreadyUnregistered ErrorCode = "ACCOUNT_ALREADY_UNREGISTERED"
	CodeAmountExceedBalance        ErrorCode = "AMOUNT_EXCEED_BALANCE"
	CodeBalanceOverZero            ErrorCode = "BALANCE_OVER_ZERO"
)

func (c ErrorCode) Description() string {
	switch c {
	case CodeUserNotFound:
		return "user not found"
	case CodeMaxAccountPerUser10:
		return "a user can not own more than 10 accounts"
	case CodeAccountNotFound:
		return "account not found"
	case CodeUserAccountUnMatched:
		return "user does not own the account"
	case CodeAccountAlreadyUnregistered:
		return "account is already unregistered"
	case CodeAmountExceedBalance:
		return "transaction amount exceeds account balance"
	case CodeBalanceOverZero:
		return "account with remaining balance can not be unregistered"
	}
	return "unknown error code"
}

// AccountError бизнес-ошибка валидации. Не является временной и не подлежит ретраю,
// отдается клиенту как есть.
type AccountError struct {
	Code ErrorCode
}

func NewAccountError(code ErrorCode) *AccountError {
	return &AccountError{Code: code}
}

func (e *AccountError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Code.Description())
}

// IsAccountCode проверяет что err (или любая ошибка в цепочке) является AccountError с кодом code.
func IsAccountCode(err error, code ErrorCode) bool {
	var accErr *AccountError
	if errors.As(err, &accErr) {
		return accErr.Code == code
	}
	return false
}
