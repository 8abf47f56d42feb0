package batch_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"retail-bank/internal/batch"
	"retail-bank/internal/domain/account"
	"retail-bank/internal/domain/bank"
	"retail-bank/internal/domain/customer"
)

type MockBankService struct {
	mock.Mock
}

func (_m *MockBankService) OpenAccount(ctx context.Context, params bank.OpenAccountParams) (account.Snapshot, error) {
	ret := _m.Called(ctx, params)

	var r0 account.Snapshot
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(account.Snapshot)
	}
	return r0, ret.Error(1)
}

func (_m *MockBankService) OpenAccountForExisting(ctx context.Context, name, accountType string) (account.Snapshot, error) {
	ret := _m.Called(ctx, name, accountType)

	var r0 account.Snapshot
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(account.Snapshot)
	}
	return r0, ret.Error(1)
}

func (_m *MockBankService) Deposit(ctx context.Context, accountNumber int64, amount float64) (account.Snapshot, error) {
	ret := _m.Called(ctx, accountNumber, amount)

	var r0 account.Snapshot
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(account.Snapshot)
	}
	return r0, ret.Error(1)
}

func (_m *MockBankService) Withdraw(ctx context.Context, accountNumber int64, amount float64) (account.Snapshot, error) {
	ret := _m.Called(ctx, accountNumber, amount)

	var r0 account.Snapshot
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(account.Snapshot)
	}
	return r0, ret.Error(1)
}

func (_m *MockBankService) PostInterest(ctx context.Context, accountNumber int64) (account.Snapshot, error) {
	ret := _m.Called(ctx, accountNumber)

	var r0 account.Snapshot
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(account.Snapshot)
	}
	return r0, ret.Error(1)
}

func (_m *MockBankService) GetAccount(ctx context.Context, accountNumber int64) (account.Snapshot, error) {
	ret := _m.Called(ctx, accountNumber)

	var r0 account.Snapshot
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(account.Snapshot)
	}
	return r0, ret.Error(1)
}

func (_m *MockBankService) ListAccountNumbersByName(ctx context.Context, name string) ([]int64, error) {
	ret := _m.Called(ctx, name)

	var r0 []int64
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]int64)
	}
	return r0, ret.Error(1)
}

func (_m *MockBankService) DescribeAccount(ctx context.Context, accountNumber int64) (string, error) {
	ret := _m.Called(ctx, accountNumber)
	return ret.String(0), ret.Error(1)
}

func (_m *MockBankService) ListAccounts(ctx context.Context) ([]account.Snapshot, error) {
	ret := _m.Called(ctx)

	var r0 []account.Snapshot
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]account.Snapshot)
	}
	return r0, ret.Error(1)
}

func (_m *MockBankService) UpdateCustomerProfile(ctx context.Context, customerID int64, params bank.UpdateProfileParams) (customer.Customer, error) {
	ret := _m.Called(ctx, customerID, params)

	var r0 customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(customer.Customer)
	}
	return r0, ret.Error(1)
}

var _ bank.BankService = (*MockBankService)(nil)

func newSavingsAccount(accountNumber int64, openingDeposit float64) *account.Account {
	cust := customer.NewCustomer(accountNumber, "Test Customer", customer.TierAdult)
	acct := account.NewAccount(cust, accountNumber, account.KindSavings)
	if openingDeposit != 0 {
		acct.Deposit(openingDeposit)
	}
	return acct
}

func TestPostInterestJobRun(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("posts interest to every account", func(t *testing.T) {
		mockService := new(MockBankService)
		job := batch.NewPostInterestJob(mockService, logger)

		first := newSavingsAccount(1001, 1000)
		second := newSavingsAccount(1002, 500)
		listed := []account.Snapshot{first.Snapshot(), second.Snapshot()}

		first.AddInterest()
		second.AddInterest()

		mockService.On("ListAccounts", ctx).Return(listed, nil)
		mockService.On("PostInterest", ctx, int64(1001)).Return(first.Snapshot(), nil)
		mockService.On("PostInterest", ctx, int64(1002)).Return(second.Snapshot(), nil)

		err := job.Run(ctx)
		assert.NoError(t, err)
		assert.InDelta(t, 1030.0, first.Balance(), 1e-9)
		assert.InDelta(t, 515.0, second.Balance(), 1e-9)
		mockService.AssertExpectations(t)
	})

	t.Run("handles list error", func(t *testing.T) {
		mockService := new(MockBankService)
		job := batch.NewPostInterestJob(mockService, logger)

		mockService.On("ListAccounts", ctx).Return(nil, errors.New("listing failed"))

		err := job.Run(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list accounts")
		mockService.AssertExpectations(t)
	})

	t.Run("continues past per-account errors", func(t *testing.T) {
		mockService := new(MockBankService)
		job := batch.NewPostInterestJob(mockService, logger)

		first := newSavingsAccount(1001, 1000)
		second := newSavingsAccount(1002, 500)
		listed := []account.Snapshot{first.Snapshot(), second.Snapshot()}
		second.AddInterest()

		mockService.On("ListAccounts", ctx).Return(listed, nil)
		mockService.On("PostInterest", ctx, int64(1001)).Return(account.Snapshot{}, errors.New("posting failed"))
		mockService.On("PostInterest", ctx, int64(1002)).Return(second.Snapshot(), nil)

		err := job.Run(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "1 errors")
		mockService.AssertExpectations(t)
	})

	t.Run("handles no accounts", func(t *testing.T) {
		mockService := new(MockBankService)
		job := batch.NewPostInterestJob(mockService, logger)

		mockService.On("ListAccounts", ctx).Return([]account.Snapshot{}, nil)

		err := job.Run(ctx)
		assert.NoError(t, err)
		mockService.AssertNotCalled(t, "PostInterest")
		mockService.AssertExpectations(t)
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		mockService := new(MockBankService)
		job := batch.NewPostInterestJob(mockService, logger)

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		first := newSavingsAccount(1001, 1000)
		mockService.On("ListAccounts", cancelled).Return([]account.Snapshot{first.Snapshot()}, nil)

		err := job.Run(cancelled)
		assert.ErrorIs(t, err, context.Canceled)
		mockService.AssertNotCalled(t, "PostInterest")
	})
}
