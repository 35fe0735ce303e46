package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mpetrenko/accountsvc/internal/domain"
	"github.com/mpetrenko/accountsvc/internal/repository/repoargs"
	"github.com/mpetrenko/accountsvc/pkg/uow"
)

type TransactionService struct {
	uow         uow.UOW
	userRepo    UserRepository
	accountRepo AccountRepository
	transRepo   TransactionRepository
}

func NewTransactionService(u uow.UOW) (*TransactionService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	accountRepo, accountRepoErr := uow.GetRepositoryAs[AccountRepository](u, uow.RepositoryName(repoargs.AccountRepoName))
	if accountRepoErr != nil {
		return nil, accountRepoErr
	}
	transRepo, transRepoErr := uow.GetRepositoryAs[TransactionRepository](
		u, uow.RepositoryName(repoargs.TransactionRepoName))
	if transRepoErr != nil {
		return nil, transRepoErr
	}
	return &TransactionService{
		uow:         u,
		userRepo:    userRepo,
		accountRepo: accountRepo,
		transRepo:   transRepo,
	}, nil
}

// UseBalance списывает amount со счета и создает запись транзакции USE/SUCCESS.
// Списание и вставка записи выполняются в одной транзакции базы.
//
// Порядок проверок фиксирован: юзер, счет, владелец, статус, достаточность баланса.
// В balance_snapshot записывается баланс после списания.
//
// При бизнес-ошибке запись о неудачной попытке здесь НЕ создается: это обязанность
// вызывающей стороны через SaveFailedUseTransaction. Контракт двухшаговый, без
// внутренних ретраев.
func (s *TransactionService) UseBalance(
	ctx context.Context,
	userID int64,
	accountNumber string,
	amount int64,
) (*domain.Transaction, error) {
	user, userErr := s.findUser(ctx, userID)
	if userErr != nil {
		return nil, userErr
	}

	var trans *domain.Transaction
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		accountRepo, accountRepoErr := uow.GetAs[AccountRepository](tx, uow.RepositoryName(repoargs.AccountRepoName))
		if accountRepoErr != nil {
			return accountRepoErr //nolint:wrapcheck
		}
		transRepo, transRepoErr := uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if transRepoErr != nil {
			return transRepoErr //nolint:wrapcheck
		}

		account, findErr := accountRepo.FindByNumber(c, accountNumber)
		if findErr != nil {
			if errors.Is(findErr, domain.ErrRecordNotFound) {
				return domain.NewAccountError(domain.CodeAccountNotFound)
			}
			return findErr //nolint:wrapcheck
		}

		if valErr := validateUseBalance(user, account, amount); valErr != nil {
			return valErr
		}

		newBalance := account.Balance - amount
		if _, updateErr := accountRepo.Update(c, repoargs.AccountUpdate{
			ID:             account.ID,
			Balance:        newBalance,
			Status:         account.Status,
			UnregisteredAt: account.UnregisteredAt,
		}); updateErr != nil {
			return updateErr //nolint:wrapcheck
		}

		var createErr error
		trans, createErr = transRepo.Create(c, repoargs.TransactionCreate{
			AccountID:       account.ID,
			AccountNumber:   account.Number,
			TransactionID:   newTransactionID(),
			Type:            domain.TransactionTypeUse,
			Result:          domain.TransactionResultSuccess,
			Amount:          amount,
			BalanceSnapshot: newBalance,
			TransactedAt:    time.Now(),
		})
		return createErr //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("using balance: %w", txErr)
	}
	return trans, nil
}

// validateUseBalance проверяет условия списания. Клиент всегда получает ровно одну ошибку.
func validateUseBalance(user *domain.User, account *domain.Account, amount int64) error {
	if account.UserID != user.ID {
		return domain.NewAccountError(domain.CodeUserAccountUnMatched)
	}
	if account.Status != domain.AccountStatusInUse {
		return domain.NewAccountError(domain.CodeAccountAlreadyUnregistered)
	}
	if account.Balance < amount {
		return domain.NewAccountError(domain.CodeAmountExceedBalance)
	}
	return nil
}

// SaveFailedUseTransaction создает запись аудита USE/FAIL о неудачной попытке списания.
// Баланс счета не меняется, в balance_snapshot пишется текущий баланс.
func (s *TransactionService) SaveFailedUseTransaction(
	ctx context.Context,
	accountNumber string,
	amount int64,
) error {
	account, findErr := s.accountRepo.FindByNumber(ctx, accountNumber)
	if findErr != nil {
		if errors.Is(findErr, domain.ErrRecordNotFound) {
			return domain.NewAccountError(domain.CodeAccountNotFound)
		}
		return findErr //nolint:wrapcheck
	}

	if _, err := s.transRepo.Create(ctx, repoargs.TransactionCreate{
		AccountID:       account.ID,
		AccountNumber:   account.Number,
		TransactionID:   newTransactionID(),
		Type:            domain.TransactionTypeUse,
		Result:          domain.TransactionResultFail,
		Amount:          amount,
		BalanceSnapshot: account.Balance,
		TransactedAt:    time.Now(),
	}); err != nil {
		return fmt.Errorf("saving failed use transaction: %w", err)
	}
	return nil
}

func (s *TransactionService) findUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NewAccountError(domain.CodeUserNotFound)
		}
		return nil, err //nolint:wrapcheck
	}
	return user, nil
}

// newTransactionID генерирует внешний идентификатор транзакции: UUIDv4 без дефисов.
// Формат значения нигде не интерпретируется, важна только уникальность.
func newTransactionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
