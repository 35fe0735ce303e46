package pgrepo

import (
	"context"

	"github.com/mpetrenko/accountsvc/internal/domain"
	"github.com/mpetrenko/accountsvc/internal/repository/repoargs"
	"github.com/mpetrenko/accountsvc/pkg/uow"
)

const transactionColumns = `id, created_at, updated_at, account_id, account_number, transaction_id,
transaction_type, transaction_result, amount, balance_snapshot, transacted_at`

const createTransactionQuery = `
INSERT INTO transactions
	(account_id, account_number, transaction_id, transaction_type, transaction_result,
	 amount, balance_snapshot, transacted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + transactionColumns

type TransactionRepository struct {
	db uow.DBTX
}

func NewTransactionRepository(db uow.DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create создает запись транзакции. Записи не обновляются и не удаляются, таблица append-only.
// При коллизии внешнего transaction_id возвращает domain.ErrDuplicateKey.
func (t *TransactionRepository) Create(
	ctx context.Context,
	args repoargs.TransactionCreate,
) (*domain.Transaction, error) {
	var trans domain.Transaction
	err := t.db.QueryRow(ctx, createTransactionQuery,
		args.AccountID,
		args.AccountNumber,
		args.TransactionID,
		args.Type,
		args.Result,
		args.Amount,
		args.BalanceSnapshot,
		args.TransactedAt,
	).Scan(
		&trans.ID,
		&trans.CreatedAt,
		&trans.UpdatedAt,
		&trans.AccountID,
		&trans.AccountNumber,
		&trans.TransactionID,
		&trans.Type,
		&trans.Result,
		&trans.Amount,
		&trans.BalanceSnapshot,
		&trans.TransactedAt,
	)
	if err != nil {
		return nil, convertErr(err, "creating transaction %s", args.TransactionID)
	}
	return &trans, nil
}
