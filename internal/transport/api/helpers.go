package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mpetrenko/accountsvc/internal/domain"
)

type ErrorResponse struct {
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// abortWithDomainError отдает бизнес-ошибку клиенту в виде {errorCode, errorMessage}.
// Инфраструктурные ошибки уходят в 500 и не раскрываются наружу.
func abortWithDomainError(c *gin.Context, err error) {
	var accErr *domain.AccountError
	if !errors.As(err, &accErr) {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.AbortWithStatusJSON(statusForCode(accErr.Code), &ErrorResponse{
		ErrorCode:    string(accErr.Code),
		ErrorMessage: accErr.Code.Description(),
	})
}

func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.CodeUserNotFound, domain.CodeAccountNotFound:
		return http.StatusNotFound
	case domain.CodeUserAccountUnMatched:
		return http.StatusForbidden
	case domain.CodeMaxAccountPerUser10,
		domain.CodeAccountAlreadyUnregistered,
		domain.CodeAmountExceedBalance,
		domain.CodeBalanceOverZero:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
