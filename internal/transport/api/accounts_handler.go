package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AccountsHandler struct {
	svs AccountServicer
}

func NewAccountsHandler(svs AccountServicer) *AccountsHandler {
	return &AccountsHandler{
		svs: svs,
	}
}

type CreateAccountParams struct {
	UserID         int64 `binding:"required,min=1" json:"userID"`
	InitialBalance int64 `binding:"min=0"          json:"initialBalance"`
}

type CreateAccountResponse struct {
	UserID        int64     `json:"userID"`
	AccountNumber string    `json:"accountNumber"`
	RegisteredAt  time.Time `json:"registeredAt"`
}

// Create POST AccountRoute. Создает счет для существующего юзера.
func (h *AccountsHandler) Create(c *gin.Context) {
	var params CreateAccountParams
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

	account, err := h.svs.CreateAccount(reqCtx, params.UserID, params.InitialBalance)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, &CreateAccountResponse{
		UserID:        account.UserID,
		AccountNumber: account.Number,
		RegisteredAt:  account.RegisteredAt,
	})
}

type DeleteAccountParams struct {
	UserID        int64  `binding:"required,min=1"    json:"userID"`
	AccountNumber string `binding:"required,numeric"  json:"accountNumber"`
}

type DeleteAccountResponse struct {
	UserID         int64      `json:"userID"`
	AccountNumber  string     `json:"accountNumber"`
	UnRegisteredAt *time.Time `json:"unRegisteredAt"`
}

// Delete DELETE AccountRoute. Закрывает счет: владельцу, без остатка, один раз.
func (h *AccountsHandler) Delete(c *gin.Context) {
	var params DeleteAccountParams
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

	account, err := h.svs.DeleteAccount(reqCtx, params.UserID, params.AccountNumber)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, &DeleteAccountResponse{
		UserID:         account.UserID,
		AccountNumber:  account.Number,
		UnRegisteredAt: account.UnregisteredAt,
	})
}

type AccountInfo struct {
	AccountNumber string `json:"accountNumber"`
	Balance       int64  `json:"balance"`
}

// Index GET AccountRoute. Возвращает счета юзера из query параметра user_id.
func (h *AccountsHandler) Index(c *gin.Context) {
	userID, parseErr := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if parseErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, parseErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	accounts, err := h.svs.GetAccountsByUser(reqCtx, userID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	response := make([]AccountInfo, len(accounts))
	for i, account := range accounts {
		response[i] = AccountInfo{
			AccountNumber: account.Number,
			Balance:       account.Balance,
		}
	}

	c.JSON(http.StatusOK, response)
}

type AccountResponse struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"userID"`
	AccountNumber  string     `json:"accountNumber"`
	Balance        int64      `json:"balance"`
	Status         string     `json:"status"`
	RegisteredAt   time.Time  `json:"registeredAt"`
	UnRegisteredAt *time.Time `json:"unRegisteredAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Show GET AccountByIDRoute. Возвращает запись счета по внутреннему числовому id.
func (h *AccountsHandler) Show(c *gin.Context) {
	id, parseErr := strconv.ParseInt(c.Param("id"), 10, 64)
	if parseErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, parseErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	account, err := h.svs.GetAccount(reqCtx, id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, &AccountResponse{
		ID:             account.ID,
		UserID:         account.UserID,
		AccountNumber:  account.Number,
		Balance:        account.Balance,
		Status:         string(account.Status),
		RegisteredAt:   account.RegisteredAt,
		UnRegisteredAt: account.UnregisteredAt,
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
	})
}
