package service

import (
	"context"

	"github.com/mpetrenko/accountsvc/internal/domain"
	"github.com/mpetrenko/accountsvc/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

type AccountRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	FindByNumber(ctx context.Context, number string) (*domain.Account, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Account, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	FindLatest(ctx context.Context) (*domain.Account, error)
	Create(ctx context.Context, args repoargs.AccountCreate) (*domain.Account, error)
	Update(ctx context.Context, args repoargs.AccountUpdate) (*domain.Account, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, args repoargs.TransactionCreate) (*domain.Transaction, error)
}
