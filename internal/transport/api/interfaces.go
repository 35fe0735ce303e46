package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/mpetrenko/accountsvc/internal/domain"
)

type AccountServicer interface {
	CreateAccount(ctx context.Context, userID int64, initialBalance int64) (*domain.Account, error)
	DeleteAccount(ctx context.Context, userID int64, accountNumber string) (*domain.Account, error)
	GetAccountsByUser(ctx context.Context, userID int64) ([]domain.Account, error)
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
}

type TransactionServicer interface {
	UseBalance(ctx context.Context, userID int64, accountNumber string, amount int64) (*domain.Transaction, error)
	SaveFailedUseTransaction(ctx context.Context, accountNumber string, amount int64) error
}
