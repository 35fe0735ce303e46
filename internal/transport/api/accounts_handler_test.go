package api

import (
	"bytes"
	"encoding/json"
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

type AccountsHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *mocks.MockAccountServicer
}

func TestAccountsHandlerSuite(t *testing.T) {
	suite.Run(t, new(AccountsHandlerTestSuite))
}

func (s *AccountsHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockAccountService = mocks.NewMockAccountServicer(mockCtrl)

	s.router = New(RouterArgs{
		Logger:         logger.New(os.Stdout),
		AccountService: s.mockAccountService,
	})
}

func (s *AccountsHandlerTestSuite) jsonRequest(method, url string, payload []byte) *http.Response {
	return testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: method,
		URL:    url,
		Body:   bytes.NewReader(payload),
	}, testutils.WithHeader("Content-Type", "application/json"))
}

func (s *AccountsHandlerTestSuite) TestCreate() {
	registeredAt := time.Now()

	s.mockAccountService.EXPECT().
		CreateAccount(gomock.Any(), int64(1), int64(100)).
		Return(&domain.Account{
			ID:           1,
			UserID:       1,
			Number:       "1000000000",
			Balance:      100,
			Status:       domain.AccountStatusInUse,
			RegisteredAt: registeredAt,
		}, nil)

	resp := s.jsonRequest(http.MethodPost, AccountRoute, []byte(`{"userID":1,"initialBalance":100}`))
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body CreateAccountResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal(int64(1), body.UserID)
	s.Equal("1000000000", body.AccountNumber)
}

func (s *AccountsHandlerTestSuite) TestCreate_UserNotFound() {
	s.mockAccountService.EXPECT().
		CreateAccount(gomock.Any(), int64(42), int64(100)).
		Return(nil, domain.NewAccountError(domain.CodeUserNotFound))

	resp := s.jsonRequest(http.MethodPost, AccountRoute, []byte(`{"userID":42,"initialBalance":100}`))
	defer resp.Body.Close()

	s.Require().Equal(http.StatusNotFound, resp.StatusCode)

	var body ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal(string(domain.CodeUserNotFound), body.ErrorCode)
	s.NotEmpty(body.ErrorMessage)
}

func (s *AccountsHandlerTestSuite) TestCreate_InvalidPayload() {
	// сервис не должен вызываться на невалидном запросе
	s.mockAccountService.EXPECT().CreateAccount(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	cases := []struct {
		name       string
		payload    string
		wantStatus int
	}{
		{name: "zero user id", payload: `{"userID":0,"initialBalance":100}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "negative balance", payload: `{"userID":1,"initialBalance":-5}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "broken json", payload: `{"userID":`, wantStatus: http.StatusBadRequest},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			resp := s.jsonRequest(http.MethodPost, AccountRoute, []byte(t.payload))
			defer resp.Body.Close()

			s.Equal(t.wantStatus, resp.StatusCode)
		})
	}
}

func (s *AccountsHandlerTestSuite) TestDelete() {
	unregisteredAt := time.Now()

	s.mockAccountService.EXPECT().
		DeleteAccount(gomock.Any(), int64(12), "1000000012").
		Return(&domain.Account{
			ID:             3,
			UserID:         12,
			Number:         "1000000012",
			Status:         domain.AccountStatusUnregistered,
			UnregisteredAt: &unregisteredAt,
		}, nil)

	resp := s.jsonRequest(http.MethodDelete, AccountRoute, []byte(`{"userID":12,"accountNumber":"1000000012"}`))
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body DeleteAccountResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal(int64(12), body.UserID)
	s.Equal("1000000012", body.AccountNumber)
	s.Require().NotNil(body.UnRegisteredAt)
}

func (s *AccountsHandlerTestSuite) TestDelete_BalanceOverZero() {
	s.mockAccountService.EXPECT().
		DeleteAccount(gomock.Any(), int64(12), "1000000012").
		Return(nil, domain.NewAccountError(domain.CodeBalanceOverZero))

	resp := s.jsonRequest(http.MethodDelete, AccountRoute, []byte(`{"userID":12,"accountNumber":"1000000012"}`))
	defer resp.Body.Close()

	s.Require().Equal(http.StatusBadRequest, resp.StatusCode)

	var body ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal(string(domain.CodeBalanceOverZero), body.ErrorCode)
}

func (s *AccountsHandlerTestSuite) TestIndex() {
	s.mockAccountService.EXPECT().
		GetAccountsByUser(gomock.Any(), int64(12)).
		Return([]domain.Account{
			{ID: 1, UserID: 12, Number: "1000000000", Balance: 100},
			{ID: 2, UserID: 12, Number: "1000000001", Balance: 200},
		}, nil)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    AccountRoute + "?user_id=12",
	})
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body []AccountInfo
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Require().Len(body, 2)
	s.Equal("1000000000", body[0].AccountNumber)
	s.Equal(int64(100), body[0].Balance)
}

func (s *AccountsHandlerTestSuite) TestIndex_InvalidUserID() {
	s.mockAccountService.EXPECT().GetAccountsByUser(gomock.Any(), gomock.Any()).Times(0)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    AccountRoute + "?user_id=abc",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *AccountsHandlerTestSuite) TestShow() {
	s.mockAccountService.EXPECT().
		GetAccount(gomock.Any(), int64(3)).
		Return(&domain.Account{
			ID:      3,
			UserID:  12,
			Number:  "1000000012",
			Balance: 100,
			Status:  domain.AccountStatusInUse,
		}, nil)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    "/account/3",
	})
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body AccountResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal(int64(3), body.ID)
	s.Equal("1000000012", body.AccountNumber)
	s.Equal(string(domain.AccountStatusInUse), body.Status)
}

func (s *AccountsHandlerTestSuite) TestShow_NotFound() {
	s.mockAccountService.EXPECT().
		GetAccount(gomock.Any(), int64(404)).
		Return(nil, domain.NewAccountError(domain.CodeAccountNotFound))

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    "/account/404",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusNotFound, resp.StatusCode)
}
