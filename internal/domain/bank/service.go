package bank

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"retail-bank/internal/domain/account"
	"retail-bank/internal/domain/customer"
	"retail-bank/internal/event"
)

type OpenAccountParams struct {
	Name         string
	Address      string
	Telephone    string
	Age          int
	CustomerType string
	AccountType  string
}

// UpdateProfileParams carries optional profile edits; nil fields are
// left untouched. None of the fields is validated.
type UpdateProfileParams struct {
	Name         *string
	Address      *string
	Telephone    *string
	Age          *int
	CustomerType *string
}

// BankService exposes the bank's operations to external collaborators.
// Every method returns value snapshots composed under the bank lock,
// never live aggregate state.
type BankService interface {
	OpenAccount(ctx context.Context, params OpenAccountParams) (account.Snapshot, error)
	OpenAccountForExisting(ctx context.Context, name, accountType string) (account.Snapshot, error)
	Deposit(ctx context.Context, accountNumber int64, amount float64) (account.Snapshot, error)
	Withdraw(ctx context.Context, accountNumber int64, amount float64) (account.Snapshot, error)
	PostInterest(ctx context.Context, accountNumber int64) (account.Snapshot, error)
	GetAccount(ctx context.Context, accountNumber int64) (account.Snapshot, error)
	ListAccountNumbersByName(ctx context.Context, name string) ([]int64, error)
	DescribeAccount(ctx context.Context, accountNumber int64) (string, error)
	ListAccounts(ctx context.Context) ([]account.Snapshot, error)
	UpdateCustomerProfile(ctx context.Context, customerID int64, params UpdateProfileParams) (customer.Customer, error)
}

var _ BankService = (*bankService)(nil)

type bankService struct {
	bank   *Bank
	pub    event.Publisher
	logger *slog.Logger
}

func NewBankService(bank *Bank, pub event.Publisher, logger *slog.Logger) BankService {
	if bank == nil {
		panic("bank cannot be nil")
	}
	if pub == nil {
		pub = event.NewNoopPublisher()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewBankService, using default stderr handler")
	}

	return &bankService{
		bank:   bank,
		pub:    pub,
		logger: logger.With(slog.String("component", "bankService")),
	}
}

func (s *bankService) publishTransaction(ctx context.Context, snap account.Snapshot, tx account.Transaction) {
	ev := event.TransactionRecordedEvent{
		AccountNumber: snap.AccountNumber,
		CustomerID:    tx.CustomerID,
		Type:          string(tx.Type),
		Amount:        tx.Amount,
		Fees:          tx.Fees,
		Balance:       snap.Balance,
		Timestamp:     tx.RecordedAt,
	}
	if err := s.pub.PublishTransactionRecorded(ctx, ev); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish transaction event",
			slog.Int64("accountNumber", snap.AccountNumber), slog.Any("error", err))
	}
}

func (s *bankService) publishAccountOpened(ctx context.Context, snap account.Snapshot) {
	ev := event.AccountOpenedEvent{
		AccountNumber: snap.AccountNumber,
		CustomerID:    snap.Owner.CustomerID,
		CustomerName:  snap.Owner.Name,
		CustomerTier:  string(snap.Owner.Tier),
		AccountType:   string(snap.Kind),
		Timestamp:     time.Now(),
	}
	if err := s.pub.PublishAccountOpened(ctx, ev); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish account opened event",
			slog.Int64("accountNumber", snap.AccountNumber), slog.Any("error", err))
	}
}

func (s *bankService) OpenAccount(ctx context.Context, params OpenAccountParams) (account.Snapshot, error) {
	s.logger.InfoContext(ctx, "Attempting to open account for new customer",
		slog.String("customerType", params.CustomerType), slog.String("accountType", params.AccountType))

	snap, err := s.bank.OpenAccount(params.Name, params.Address, params.Telephone, params.Age,
		params.CustomerType, params.AccountType)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to open account", slog.Any("error", err))
		return account.Snapshot{}, err
	}

	s.logger.InfoContext(ctx, "Opened account for new customer",
		slog.Int64("accountNumber", snap.AccountNumber),
		slog.Int64("customerID", snap.Owner.CustomerID))
	s.publishAccountOpened(ctx, snap)
	return snap, nil
}

func (s *bankService) OpenAccountForExisting(ctx context.Context, name, accountType string) (account.Snapshot, error) {
	s.logger.InfoContext(ctx, "Attempting to open account for existing customer",
		slog.String("accountType", accountType))

	snap, err := s.bank.OpenAccountForExisting(name, accountType)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			s.logger.WarnContext(ctx, "Customer not found by name")
			return account.Snapshot{}, err
		}
		s.logger.WarnContext(ctx, "Failed to open account for existing customer", slog.Any("error", err))
		return account.Snapshot{}, err
	}

	s.logger.InfoContext(ctx, "Opened additional account",
		slog.Int64("accountNumber", snap.AccountNumber),
		slog.Int64("customerID", snap.Owner.CustomerID))
	s.publishAccountOpened(ctx, snap)
	return snap, nil
}

func (s *bankService) Deposit(ctx context.Context, accountNumber int64, amount float64) (account.Snapshot, error) {
	s.logger.InfoContext(ctx, "Attempting deposit", slog.Int64("accountNumber", accountNumber))

	tx, snap, err := s.bank.Deposit(accountNumber, amount)
	if err != nil {
		s.logger.WarnContext(ctx, "Deposit failed", slog.Int64("accountNumber", accountNumber), slog.Any("error", err))
		return account.Snapshot{}, err
	}

	s.logger.InfoContext(ctx, "Deposit recorded", slog.Int64("accountNumber", accountNumber))
	s.publishTransaction(ctx, snap, tx)
	return snap, nil
}

func (s *bankService) Withdraw(ctx context.Context, accountNumber int64, amount float64) (account.Snapshot, error) {
	s.logger.InfoContext(ctx, "Attempting withdrawal", slog.Int64("accountNumber", accountNumber))

	tx, snap, err := s.bank.Withdraw(accountNumber, amount)
	if err != nil {
		s.logger.WarnContext(ctx, "Withdrawal failed", slog.Int64("accountNumber", accountNumber), slog.Any("error", err))
		return account.Snapshot{}, err
	}

	s.logger.InfoContext(ctx, "Withdrawal recorded", slog.Int64("accountNumber", accountNumber))
	s.publishTransaction(ctx, snap, tx)
	return snap, nil
}

func (s *bankService) PostInterest(ctx context.Context, accountNumber int64) (account.Snapshot, error) {
	s.logger.InfoContext(ctx, "Attempting interest posting", slog.Int64("accountNumber", accountNumber))

	tx, snap, err := s.bank.PostInterest(accountNumber)
	if err != nil {
		s.logger.WarnContext(ctx, "Interest posting failed", slog.Int64("accountNumber", accountNumber), slog.Any("error", err))
		return account.Snapshot{}, err
	}

	s.logger.InfoContext(ctx, "Interest posted",
		slog.Int64("accountNumber", accountNumber), slog.Float64("interest", tx.Amount))
	s.publishTransaction(ctx, snap, tx)
	return snap, nil
}

func (s *bankService) GetAccount(ctx context.Context, accountNumber int64) (account.Snapshot, error) {
	snap, err := s.bank.Account(accountNumber)
	if err != nil {
		s.logger.WarnContext(ctx, "Account not found", slog.Int64("accountNumber", accountNumber))
		return account.Snapshot{}, err
	}
	return snap, nil
}

func (s *bankService) ListAccountNumbersByName(ctx context.Context, name string) ([]int64, error) {
	numbers := s.bank.AccountNumbersByName(name)
	s.logger.DebugContext(ctx, "Listed accounts by customer name", slog.Int("count", len(numbers)))
	return numbers, nil
}

func (s *bankService) DescribeAccount(ctx context.Context, accountNumber int64) (string, error) {
	snap, err := s.bank.Account(accountNumber)
	if err != nil {
		s.logger.WarnContext(ctx, "Account not found", slog.Int64("accountNumber", accountNumber))
		return "", err
	}
	return snap.Describe(), nil
}

func (s *bankService) ListAccounts(ctx context.Context) ([]account.Snapshot, error) {
	return s.bank.Accounts(), nil
}

func (s *bankService) UpdateCustomerProfile(ctx context.Context, customerID int64, params UpdateProfileParams) (customer.Customer, error) {
	s.logger.InfoContext(ctx, "Attempting customer profile update", slog.Int64("customerID", customerID))

	var tier customer.Tier
	if params.CustomerType != nil {
		parsed, err := customer.ParseTier(*params.CustomerType)
		if err != nil {
			return customer.Customer{}, err
		}
		tier = parsed
	}

	cust, err := s.bank.UpdateCustomer(customerID, func(cust *customer.Customer) {
		if params.CustomerType != nil {
			cust.Tier = tier
		}
		if params.Name != nil {
			cust.Name = *params.Name
		}
		if params.Address != nil {
			cust.Address = *params.Address
		}
		if params.Telephone != nil {
			cust.Telephone = *params.Telephone
		}
		if params.Age != nil {
			cust.Age = *params.Age
		}
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Customer not found", slog.Int64("customerID", customerID))
		return customer.Customer{}, err
	}

	s.logger.InfoContext(ctx, "Customer profile updated", slog.Int64("customerID", customerID))
	return cust, nil
}
