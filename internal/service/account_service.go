package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mpetrenko/accountsvc/internal/domain"
	"github.com/mpetrenko/accountsvc/internal/repository/repoargs"
	"github.com/mpetrenko/accountsvc/pkg/uow"
)

const (
	// initialAccountNumber номер самого первого счета в системе. Дальше номера растут монотонно.
	initialAccountNumber = "1000000000"
	maxAccountsPerUser   = 10

	// createAccountAttempts кол-во повторов транзакции создания счета при конфликте номера.
	createAccountAttempts = 3
)

type AccountService struct {
	uow         uow.UOW
	userRepo    UserRepository
	accountRepo AccountRepository
}

func NewAccountService(u uow.UOW) (*AccountService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	accountRepo, accountRepoErr := uow.GetRepositoryAs[AccountRepository](u, uow.RepositoryName(repoargs.AccountRepoName))
	if accountRepoErr != nil {
		return nil, accountRepoErr
	}
	return &AccountService{
		uow:         u,
		userRepo:    userRepo,
		accountRepo: accountRepo,
	}, nil
}

// CreateAccount создает счет для существующего юзера. Лимит счетов, вычисление номера
// и вставка выполняются в одной транзакции.
//
// Номер счета выдается по принципу "прочитай максимальный, прибавь 1". Конкурентное создание
// может успеть занять тот же номер первым - тогда уникальный индекс на account_number вернет
// domain.ErrDuplicateKey и транзакция повторяется целиком, но не более createAccountAttempts раз.
func (s *AccountService) CreateAccount(
	ctx context.Context,
	userID int64,
	initialBalance int64,
) (*domain.Account, error) {
	user, userErr := s.findUser(ctx, userID)
	if userErr != nil {
		return nil, userErr
	}

	var account *domain.Account
	for attempt := 0; attempt < createAccountAttempts; attempt++ {
		txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
			repo, repoErr := uow.GetAs[AccountRepository](tx, uow.RepositoryName(repoargs.AccountRepoName))
			if repoErr != nil {
				return repoErr //nolint:wrapcheck
			}

			count, countErr := repo.CountByUserID(c, user.ID)
			if countErr != nil {
				return countErr //nolint:wrapcheck
			}
			// лимит проверяем до вычисления номера, чтобы не делать лишнюю работу
			// на заведомо обреченном запросе.
			if count >= maxAccountsPerUser {
				return domain.NewAccountError(domain.CodeMaxAccountPerUser10)
			}

			number, numberErr := s.nextAccountNumber(c, repo)
			if numberErr != nil {
				return numberErr
			}

			var createErr error
			account, createErr = repo.Create(c, repoargs.AccountCreate{
				UserID:       user.ID,
				Number:       number,
				Balance:      initialBalance,
				Status:       domain.AccountStatusInUse,
				RegisteredAt: time.Now(),
			})
			return createErr //nolint:wrapcheck
		})
		if txErr == nil {
			return account, nil
		}
		if errors.Is(txErr, domain.ErrDuplicateKey) {
			continue
		}
		return nil, fmt.Errorf("creating account: %w", txErr)
	}

	return nil, fmt.Errorf("creating account: no free account number after %d attempts", createAccountAttempts)
}

// nextAccountNumber вычисляет номер для нового счета: номер последнего созданного счета
// по всей системе плюс 1. Если счетов еще нет, возвращает initialAccountNumber.
func (s *AccountService) nextAccountNumber(ctx context.Context, repo AccountRepository) (string, error) {
	latest, err := repo.FindLatest(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return initialAccountNumber, nil
		}
		return "", err //nolint:wrapcheck
	}
	number, parseErr := strconv.ParseInt(latest.Number, 10, 64)
	if parseErr != nil {
		return "", fmt.Errorf("parsing account number %s: %w", latest.Number, parseErr)
	}
	return strconv.FormatInt(number+1, 10), nil
}

// DeleteAccount закрывает счет: статус UNREGISTERED, дата закрытия now. Переход одноразовый,
// обратного нет. Возвращает счет в состоянии после закрытия.
func (s *AccountService) DeleteAccount(
	ctx context.Context,
	userID int64,
	accountNumber string,
) (*domain.Account, error) {
	user, userErr := s.findUser(ctx, userID)
	if userErr != nil {
		return nil, userErr
	}

	var updated *domain.Account
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[AccountRepository](tx, uow.RepositoryName(repoargs.AccountRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}

		account, findErr := repo.FindByNumber(c, accountNumber)
		if findErr != nil {
			if errors.Is(findErr, domain.ErrRecordNotFound) {
				return domain.NewAccountError(domain.CodeAccountNotFound)
			}
			return findErr //nolint:wrapcheck
		}

		if valErr := validateDeleteAccount(user, account); valErr != nil {
			return valErr
		}

		now := time.Now()
		var updateErr error
		updated, updateErr = repo.Update(c, repoargs.AccountUpdate{
			ID:             account.ID,
			Balance:        account.Balance,
			Status:         domain.AccountStatusUnregistered,
			UnregisteredAt: &now,
		})
		return updateErr //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("deleting account: %w", txErr)
	}
	return updated, nil
}

// validateDeleteAccount проверяет условия закрытия счета. Порядок проверок фиксирован:
// владелец, статус, баланс - клиент всегда получает ровно одну ошибку.
func validateDeleteAccount(user *domain.User, account *domain.Account) error {
	if account.UserID != user.ID {
		return domain.NewAccountError(domain.CodeUserAccountUnMatched)
	}
	if account.Status == domain.AccountStatusUnregistered {
		return domain.NewAccountError(domain.CodeAccountAlreadyUnregistered)
	}
	if account.Balance > 0 {
		return domain.NewAccountError(domain.CodeBalanceOverZero)
	}
	return nil
}

// GetAccountsByUser возвращает счета юзера в натуральном порядке выдачи базы.
func (s *AccountService) GetAccountsByUser(ctx context.Context, userID int64) ([]domain.Account, error) {
	user, userErr := s.findUser(ctx, userID)
	if userErr != nil {
		return nil, userErr
	}
	accounts, err := s.accountRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return accounts, nil
}

// GetAccount возвращает счет по внутреннему числовому id.
func (s *AccountService) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NewAccountError(domain.CodeAccountNotFound)
		}
		return nil, err //nolint:wrapcheck
	}
	return account, nil
}

func (s *AccountService) findUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NewAccountError(domain.CodeUserNotFound)
		}
		return nil, err //nolint:wrapcheck
	}
	return user, nil
}
