package service

import (
	"fmt"

	"github.com/mpetrenko/accountsvc/pkg/uow"
)

type AppServices struct {
	AccountService     *AccountService
	TransactionService *TransactionService
}

func Factory(unitOfWork uow.UOW) (*AppServices, error) {
	accountService, accountServiceErr := NewAccountService(unitOfWork)
	if accountServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", accountServiceErr.Error())
	}

	transactionService, transactionServiceErr := NewTransactionService(unitOfWork)
	if transactionServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", transactionServiceErr.Error())
	}

	return &AppServices{
		AccountService:     accountService,
		TransactionService: transactionService,
	}, nil
}
