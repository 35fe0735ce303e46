package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mpetrenko/accountsvc/internal/domain"
)

type TransactionsHandler struct {
	svs TransactionServicer
}

func NewTransactionsHandler(svs TransactionServicer) *TransactionsHandler {
	return &TransactionsHandler{
		svs: svs,
	}
}

type UseBalanceParams struct {
	UserID        int64  `binding:"required,min=1"   json:"userID"`
	AccountNumber string `binding:"required,numeric" json:"accountNumber"`
	Amount        int64  `binding:"required,gt=0"    json:"amount"`
}

type UseBalanceResponse struct {
	AccountNumber         string                   `json:"accountNumber"`
	TransactionResultType domain.TransactionResult `json:"transactionResultType"`
	TransactionID         string                   `json:"transactionID"`
	Amount                int64                    `json:"amount"`
	TransactedAt          time.Time                `json:"transactedAt"`
}

// UseBalance POST TransactionUseRoute. Списывает средства со счета.
//
// При бизнес-ошибке списания сперва фиксируется запись аудита о неудачной попытке
// и только потом ошибка отдается клиенту. Ошибка самой фиксации (например счет не найден)
// логируется и не затеняет исходную.
func (h *TransactionsHandler) UseBalance(c *gin.Context) {
	var params UseBalanceParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	trans, err := h.svs.UseBalance(reqCtx, params.UserID, params.AccountNumber, params.Amount)
	if err != nil {
		var accErr *domain.AccountError
		if errors.As(err, &accErr) {
			if saveErr := h.svs.SaveFailedUseTransaction(reqCtx, params.AccountNumber, params.Amount); saveErr != nil {
				_ = c.Error(saveErr).SetType(gin.ErrorTypePrivate)
			}
		}
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, &UseBalanceResponse{
		AccountNumber:         trans.AccountNumber,
		TransactionResultType: trans.Result,
		TransactionID:         trans.TransactionID,
		Amount:                trans.Amount,
		TransactedAt:          trans.TransactedAt,
	})
}
