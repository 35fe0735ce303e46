package repoargs

import (
	"time"

	"github.com/mpetrenko/accountsvc/internal/domain"
)

type TransactionCreate struct {
	AccountID       int64
	AccountNumber   string
	TransactionID   string
	Type            domain.TransactionType
	Result          domain.TransactionResult
	Amount          int64
	BalanceSnapshot int64
	TransactedAt    time.Time
}
