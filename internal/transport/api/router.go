package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mpetrenko/accountsvc/internal/transport/api/middlewares"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	AccountRoute        = "/account"
	AccountByIDRoute    = "/account/:id"
	TransactionUseRoute = "/transaction/use"
)

type RouterArgs struct {
	Logger             *logrus.Logger
	AccountService     AccountServicer
	TransactionService TransactionServicer
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	accountsHandler := NewAccountsHandler(args.AccountService)
	transactionsHandler := NewTransactionsHandler(args.TransactionService)

	r.POST(AccountRoute, accountsHandler.Create)
	r.DELETE(AccountRoute, accountsHandler.Delete)
	r.GET(AccountRoute, accountsHandler.Index)
	r.GET(AccountByIDRoute, accountsHandler.Show)

	r.POST(TransactionUseRoute, transactionsHandler.UseBalance)

	return r
}
