package domain

import "time"

type User struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
}

type Account struct {
	ID             int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	UserID         int64
	Number         string
	Balance        int64
	Status         AccountStatus
	RegisteredAt   time.Time
	UnregisteredAt *time.Time
}

// Transaction это append-only запись аудита. После создания не изменяется и не удаляется.
type Transaction struct {
	ID              int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	AccountID       int64
	AccountNumber   string
	TransactionID   string
	Type            TransactionType
	Result          TransactionResult
	Amount          int64
	BalanceSnapshot int64
	TransactedAt    time.Time
}
