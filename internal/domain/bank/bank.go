package bank

import (
	"errors"
	"fmt"
	"sync"

	"retail-bank/internal/domain/account"
	"retail-bank/internal/domain/customer"
	"retail-bank/internal/pkg/apperrors"
)

var (
	ErrAccountNotFound = fmt.Errorf("%w: account", apperrors.ErrNotFound)

	ErrCustomerNotFound = fmt.Errorf("%w: customer", apperrors.ErrNotFound)
)

// idSeed is the counter seed for both customer and account numbers;
// counters increment before assignment, so the first issued ID is 1001.
const idSeed = 1000

// Bank aggregates every customer and account and assigns their IDs.
// One coarse mutex serializes all access: the domain itself is a
// single-session ledger, but the HTTP front-end and the interest batch
// job share one Bank instance. Live aggregate pointers never leave the
// lock; every operation returns value snapshots composed while the
// lock is held.
type Bank struct {
	mu             sync.Mutex
	customers      []*customer.Customer
	accounts       []*account.Account
	nextCustomerID int64
	nextAccountID  int64
}

func NewBank() *Bank {
	return &Bank{
		nextCustomerID: idSeed,
		nextAccountID:  idSeed,
	}
}

// OpenAccount registers a new customer of the given tier and opens an
// account of the given type bound to them. An unknown tier or account
// type fails before anything is registered.
func (b *Bank) OpenAccount(name, address, telephone string, age int, tierStr, kindStr string) (account.Snapshot, error) {
	tier, err := customer.ParseTier(tierStr)
	if err != nil {
		return account.Snapshot{}, err
	}
	kind, err := account.ParseKind(kindStr)
	if err != nil {
		return account.Snapshot{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextCustomerID++
	cust := customer.NewCustomer(b.nextCustomerID, name, tier)
	cust.Address = address
	cust.Telephone = telephone
	cust.Age = age
	b.customers = append(b.customers, cust)

	return b.openAccountLocked(cust, kind).Snapshot(), nil
}

// OpenAccountForExisting opens an additional account for the customer
// whose current name matches exactly. The first match in registration
// order wins when names collide.
func (b *Bank) OpenAccountForExisting(name, kindStr string) (account.Snapshot, error) {
	kind, err := account.ParseKind(kindStr)
	if err != nil {
		return account.Snapshot{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	cust := b.findCustomerLocked(name)
	if cust == nil {
		return account.Snapshot{}, ErrCustomerNotFound
	}
	return b.openAccountLocked(cust, kind).Snapshot(), nil
}

func (b *Bank) openAccountLocked(cust *customer.Customer, kind account.Kind) *account.Account {
	b.nextAccountID++
	acct := account.NewAccount(cust, b.nextAccountID, kind)
	b.accounts = append(b.accounts, acct)
	return acct
}

func (b *Bank) findCustomerLocked(name string) *customer.Customer {
	for _, c := range b.customers {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Deposit delegates to the account identified by accountNumber and
// returns the recorded transaction plus the post-deposit snapshot.
func (b *Bank) Deposit(accountNumber int64, amount float64) (account.Transaction, account.Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acct := b.findAccountLocked(accountNumber)
	if acct == nil {
		return account.Transaction{}, account.Snapshot{}, ErrAccountNotFound
	}
	tx := acct.Deposit(amount)
	return tx, acct.Snapshot(), nil
}

// Withdraw delegates to the account identified by accountNumber and
// returns the recorded transaction plus the post-withdrawal snapshot.
func (b *Bank) Withdraw(accountNumber int64, amount float64) (account.Transaction, account.Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acct := b.findAccountLocked(accountNumber)
	if acct == nil {
		return account.Transaction{}, account.Snapshot{}, ErrAccountNotFound
	}
	tx := acct.Withdraw(amount)
	return tx, acct.Snapshot(), nil
}

// PostInterest posts interest on the account identified by
// accountNumber and returns the recorded transaction plus the
// post-interest snapshot.
func (b *Bank) PostInterest(accountNumber int64) (account.Transaction, account.Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acct := b.findAccountLocked(accountNumber)
	if acct == nil {
		return account.Transaction{}, account.Snapshot{}, ErrAccountNotFound
	}
	tx := acct.AddInterest()
	return tx, acct.Snapshot(), nil
}

// Account looks up an account by number.
func (b *Bank) Account(accountNumber int64) (account.Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acct := b.findAccountLocked(accountNumber)
	if acct == nil {
		return account.Snapshot{}, ErrAccountNotFound
	}
	return acct.Snapshot(), nil
}

func (b *Bank) findAccountLocked(accountNumber int64) *account.Account {
	for _, a := range b.accounts {
		if a.AccountNumber() == accountNumber {
			return a
		}
	}
	return nil
}

// Customer looks up a customer by ID.
func (b *Bank) Customer(customerID int64) (customer.Customer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, c := range b.customers {
		if c.CustomerID == customerID {
			return *c, nil
		}
	}
	return customer.Customer{}, ErrCustomerNotFound
}

// UpdateCustomer applies an edit to the customer identified by
// customerID while holding the bank lock and returns the post-edit
// profile.
func (b *Bank) UpdateCustomer(customerID int64, update func(*customer.Customer)) (customer.Customer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, c := range b.customers {
		if c.CustomerID == customerID {
			update(c)
			return *c, nil
		}
	}
	return customer.Customer{}, ErrCustomerNotFound
}

// AccountNumbersByName returns, in account-registration order, the
// numbers of every account whose owner's current name matches exactly.
func (b *Bank) AccountNumbersByName(name string) []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	var numbers []int64
	for _, a := range b.accounts {
		if a.Owner().Name == name {
			numbers = append(numbers, a.AccountNumber())
		}
	}
	return numbers
}

// Accounts returns snapshots of all accounts in registration order.
func (b *Bank) Accounts() []account.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]account.Snapshot, len(b.accounts))
	for i, a := range b.accounts {
		out[i] = a.Snapshot()
	}
	return out
}

// IsNotFound reports whether err is one of the bank's lookup failures.
func IsNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
