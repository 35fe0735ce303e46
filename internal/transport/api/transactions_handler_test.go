package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/mpetrenko/accountsvc/internal/domain"
	"github.com/mpetrenko/accountsvc/internal/logger"
	"github.com/mpetrenko/accountsvc/internal/transport/api/mocks"
	"github.com/mpetrenko/accountsvc/internal/transport/api/testutils"
)

type TransactionsHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockTransactionService *mocks.MockTransactionServicer
}

func TestTransactionsHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionsHandlerTestSuite))
}

func (s *TransactionsHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockTransactionService = mocks.NewMockTransactionServicer(mockCtrl)

	s.router = New(RouterArgs{
		Logger:             logger.New(os.Stdout),
		TransactionService: s.mockTransactionService,
	})
}

func (s *TransactionsHandlerTestSuite) useBalanceRequest(payload string) *http.Response {
	return testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    TransactionUseRoute,
		Body:   bytes.NewReader([]byte(payload)),
	}, testutils.WithHeader("Content-Type", "application/json"))
}

func (s *TransactionsHandlerTestSuite) TestUseBalance() {
	transactedAt := time.Now()

	s.mockTransactionService.EXPECT().
		UseBalance(gomock.Any(), int64(12), "1000000012", int64(300)).
		Return(&domain.Transaction{
			ID:            1,
			AccountID:     3,
			AccountNumber: "1000000012",
			TransactionID: "f97ab48fd9d54b3c8e20f78a417c57de",
			Type:          domain.TransactionTypeUse,
			Result:        domain.TransactionResultSuccess,
			Amount:        300,
			TransactedAt:  transactedAt,
		}, nil)

	resp := s.useBalanceRequest(`{"userID":12,"accountNumber":"1000000012","amount":300}`)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body UseBalanceResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal("1000000012", body.AccountNumber)
	s.Equal(domain.TransactionResultSuccess, body.TransactionResultType)
	s.Equal("f97ab48fd9d54b3c8e20f78a417c57de", body.TransactionID)
	s.Equal(int64(300), body.Amount)
}

func (s *TransactionsHandlerTestSuite) TestUseBalance_AmountExceedBalance() {
	useErr := domain.NewAccountError(domain.CodeAmountExceedBalance)

	useCall := s.mockTransactionService.EXPECT().
		UseBalance(gomock.Any(), int64(12), "1000000012", int64(1500)).
		Return(nil, useErr)

	// перед ответом клиенту должна быть сохранена FAIL транзакция
	s.mockTransactionService.EXPECT().
		SaveFailedUseTransaction(gomock.Any(), "1000000012", int64(1500)).
		After(useCall).
		Return(nil)

	resp := s.useBalanceRequest(`{"userID":12,"accountNumber":"1000000012","amount":1500}`)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusBadRequest, resp.StatusCode)

	var body ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal(string(domain.CodeAmountExceedBalance), body.ErrorCode)
	s.Equal(domain.CodeAmountExceedBalance.Description(), body.ErrorMessage)
}

func (s *TransactionsHandlerTestSuite) TestUseBalance_UnMatchedUser() {
	s.mockTransactionService.EXPECT().
		UseBalance(gomock.Any(), int64(99), "1000000012", int64(300)).
		Return(nil, domain.NewAccountError(domain.CodeUserAccountUnMatched))

	s.mockTransactionService.EXPECT().
		SaveFailedUseTransaction(gomock.Any(), "1000000012", int64(300)).
		Return(nil)

	resp := s.useBalanceRequest(`{"userID":99,"accountNumber":"1000000012","amount":300}`)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusForbidden, resp.StatusCode)

	var body ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal(string(domain.CodeUserAccountUnMatched), body.ErrorCode)
}

func (s *TransactionsHandlerTestSuite) TestUseBalance_SaveFailedError() {
	s.mockTransactionService.EXPECT().
		UseBalance(gomock.Any(), int64(12), "1000000012", int64(1500)).
		Return(nil, domain.NewAccountError(domain.CodeAmountExceedBalance))

	// ошибка записи аудита не затеняет исходную ошибку списания
	s.mockTransactionService.EXPECT().
		SaveFailedUseTransaction(gomock.Any(), "1000000012", int64(1500)).
		Return(errors.New("storage unavailable"))

	resp := s.useBalanceRequest(`{"userID":12,"accountNumber":"1000000012","amount":1500}`)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusBadRequest, resp.StatusCode)

	var body ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal(string(domain.CodeAmountExceedBalance), body.ErrorCode)
}

func (s *TransactionsHandlerTestSuite) TestUseBalance_InfraError() {
	s.mockTransactionService.EXPECT().
		UseBalance(gomock.Any(), int64(12), "1000000012", int64(300)).
		Return(nil, errors.New("connection refused"))

	// для не бизнес-ошибок аудит не пишется
	s.mockTransactionService.EXPECT().
		SaveFailedUseTransaction(gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)

	resp := s.useBalanceRequest(`{"userID":12,"accountNumber":"1000000012","amount":300}`)
	defer resp.Body.Close()

	s.Equal(http.StatusInternalServerError, resp.StatusCode)
}

func (s *TransactionsHandlerTestSuite) TestUseBalance_InvalidPayload() {
	s.mockTransactionService.EXPECT().
		UseBalance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)

	cases := []struct {
		name       string
		payload    string
		wantStatus int
	}{
		{name: "zero amount", payload: `{"userID":12,"accountNumber":"1000000012","amount":0}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "negative amount", payload: `{"userID":12,"accountNumber":"1000000012","amount":-5}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "non numeric account", payload: `{"userID":12,"accountNumber":"abc","amount":300}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "missing user", payload: `{"accountNumber":"1000000012","amount":300}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "broken json", payload: `{"userID":`, wantStatus: http.StatusBadRequest},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			resp := s.useBalanceRequest(t.payload)
			defer resp.Body.Close()

			s.Equal(t.wantStatus, resp.StatusCode)
		})
	}
}
