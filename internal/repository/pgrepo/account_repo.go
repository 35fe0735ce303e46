package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/mpetrenko/accountsvc/internal/domain"
	"github.com/mpetrenko/accountsvc/internal/repository/repoargs"
	"github.com/mpetrenko/accountsvc/pkg/uow"
)

const accountColumns = `id, created_at, updated_at, user_id, account_number, balance, status, registered_at, unregistered_at`

const (
	findAccountByIDQuery = `
SELECT ` + accountColumns + `
FROM accounts
WHERE id = $1`

	findAccountByNumberQuery = `
SELECT ` + accountColumns + `
FROM accounts
WHERE account_number = $1`

	getAccountsByUserIDQuery = `
SELECT ` + accountColumns + `
FROM accounts
WHERE user_id = $1`

	countAccountsByUserIDQuery = `
SELECT count(*)
FROM accounts
WHERE user_id = $1`

	findLatestAccountQuery = `
SELECT ` + accountColumns + `
FROM accounts
ORDER BY id DESC
LIMIT 1`

	createAccountQuery = `
INSERT INTO accounts (user_id, account_number, balance, status, registered_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + accountColumns

	updateAccountQuery = `
UPDATE accounts
SET balance = $2, status = $3, unregistered_at = $4, updated_at = now()
WHERE id = $1
RETURNING ` + accountColumns
)

type AccountRepository struct {
	db uow.DBTX
}

func NewAccountRepository(db uow.DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

// FindByID ищет счет по внутреннему числовому id. Возвращает domain.ErrRecordNotFound
// если запись не найдена.
func (a *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := scanAccount(a.db.QueryRow(ctx, findAccountByIDQuery, id))
	if err != nil {
		return nil, convertErr(err, "finding account by id %d", id)
	}
	return account, nil
}

// FindByNumber ищет счет по номеру. Возвращает domain.ErrRecordNotFound если запись не найдена.
func (a *AccountRepository) FindByNumber(ctx context.Context, number string) (*domain.Account, error) {
	account, err := scanAccount(a.db.QueryRow(ctx, findAccountByNumberQuery, number))
	if err != nil {
		return nil, convertErr(err, "finding account by number %s", number)
	}
	return account, nil
}

// GetByUserID возвращает все счета юзера в натуральном порядке выдачи базы.
func (a *AccountRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Account, error) {
	rows, err := a.db.Query(ctx, getAccountsByUserIDQuery, userID)
	if err != nil {
		return nil, convertErr(err, "getting accounts by user id %d", userID)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning account for user id %d", userID)
		}
		accounts = append(accounts, *account)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting accounts by user id %d", userID)
	}
	return accounts, nil
}

// CountByUserID возвращает количество счетов юзера, включая закрытые.
func (a *AccountRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := a.db.QueryRow(ctx, countAccountsByUserIDQuery, userID).Scan(&count); err != nil {
		return 0, convertErr(err, "counting accounts by user id %d", userID)
	}
	return count, nil
}

// FindLatest возвращает последний созданный счет по всей системе (максимальный id).
// Возвращает domain.ErrRecordNotFound если счетов еще нет.
func (a *AccountRepository) FindLatest(ctx context.Context) (*domain.Account, error) {
	account, err := scanAccount(a.db.QueryRow(ctx, findLatestAccountQuery))
	if err != nil {
		return nil, convertErr(err, "finding latest account")
	}
	return account, nil
}

// Create создает счет. При конфликте номера счета возвращает domain.ErrDuplicateKey.
func (a *AccountRepository) Create(ctx context.Context, args repoargs.AccountCreate) (*domain.Account, error) {
	account, err := scanAccount(a.db.QueryRow(ctx, createAccountQuery,
		args.UserID, args.Number, args.Balance, args.Status, args.RegisteredAt))
	if err != nil {
		return nil, convertErr(err, "creating account %s", args.Number)
	}
	return account, nil
}

// Update обновляет баланс, статус и дату закрытия счета по месту.
func (a *AccountRepository) Update(ctx context.Context, args repoargs.AccountUpdate) (*domain.Account, error) {
	account, err := scanAccount(a.db.QueryRow(ctx, updateAccountQuery,
		args.ID, args.Balance, args.Status, args.UnregisteredAt))
	if err != nil {
		return nil, convertErr(err, "updating account id %d", args.ID)
	}
	return account, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.CreatedAt,
		&account.UpdatedAt,
		&account.UserID,
		&account.Number,
		&account.Balance,
		&account.Status,
		&account.RegisteredAt,
		&account.UnregisteredAt,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &account, nil
}
