package domain

type AccountStatus string

const (
	AccountStatusInUse        AccountStatus = "IN_USE"
	AccountStatusUnregistered AccountStatus = "UNREGISTERED"
)

type TransactionType string

const (
	TransactionTypeUse TransactionType = "USE"
	// TransactionTypeCancel зарезервирован под отмену транзакций, обработка пока не реализована.
	TransactionTypeCancel TransactionType = "CANCEL"
)

type TransactionResult string

const (
	TransactionResultSuccess TransactionResult = "SUCCESS"
	TransactionResultFail    TransactionResult = "FAIL"
)
