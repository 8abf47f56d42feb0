package account

import (
	"fmt"
	"strings"
	"time"

	"retail-bank/internal/domain/customer"
	"retail-bank/internal/pkg/apperrors"
)

// Kind selects which of the owner's two interest rates an account earns.
type Kind string

const (
	KindChecking Kind = "checking"
	KindSavings  Kind = "savings"
)

// ParseKind converts an external account-type string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindChecking:
		return KindChecking, nil
	case KindSavings:
		return KindSavings, nil
	default:
		return "", fmt.Errorf("%w: unknown account type %q", apperrors.ErrInvalidArgument, s)
	}
}

// Label returns the human-readable account-type label used in statements.
func (k Kind) Label() string {
	if k == KindSavings {
		return "Savings"
	}
	return "Checking"
}

type TransactionType string

const (
	TransactionDeposit     TransactionType = "Deposit"
	TransactionWithdrawal  TransactionType = "Withdrawal"
	TransactionAddInterest TransactionType = "Add interest"
)

// Transaction is an immutable record of one balance-affecting event.
// Fees snapshots the owner's check charge and overdraft penalty at the
// moment the transaction was recorded; the penalty itself is never
// deducted from the balance.
type Transaction struct {
	CustomerID int64           `json:"customerId"`
	Type       TransactionType `json:"type"`
	Amount     float64         `json:"amount"`
	Fees       string          `json:"fees"`
	RecordedAt time.Time       `json:"recordedAt"`
}

// Account binds a balance and its ledger to an owning customer. The
// customer's lifetime is managed by the bank, not the account. The
// ledger is append-only; every balance-affecting operation records
// exactly one transaction.
type Account struct {
	accountNumber int64
	kind          Kind
	owner         *customer.Customer
	balance       float64
	ledger        []Transaction
}

// NewAccount creates an account with a zero balance bound to the owner.
func NewAccount(owner *customer.Customer, accountNumber int64, kind Kind) *Account {
	return &Account{
		accountNumber: accountNumber,
		kind:          kind,
		owner:         owner,
	}
}

func (a *Account) AccountNumber() int64 {
	return a.accountNumber
}

func (a *Account) Kind() Kind {
	return a.kind
}

func (a *Account) Owner() *customer.Customer {
	return a.owner
}

// SetOwner reassigns the owning customer. No bank operation exercises
// this; it exists for parity with the public contract.
func (a *Account) SetOwner(c *customer.Customer) {
	a.owner = c
}

func (a *Account) Balance() float64 {
	return a.balance
}

// SetBalance overwrites the balance without recording a transaction.
func (a *Account) SetBalance(balance float64) {
	a.balance = balance
}

// Transactions returns a copy of the ledger in recording order.
func (a *Account) Transactions() []Transaction {
	out := make([]Transaction, len(a.ledger))
	copy(out, a.ledger)
	return out
}

// Snapshot is a value copy of an account's observable state, safe to
// read after the bank lock guarding the live account is released.
type Snapshot struct {
	AccountNumber int64
	Kind          Kind
	Owner         customer.Customer
	Balance       float64
	Ledger        []Transaction
}

// Snapshot copies the account, its owner's profile, and the ledger.
// Callers must hold whatever lock guards the account.
func (a *Account) Snapshot() Snapshot {
	return Snapshot{
		AccountNumber: a.accountNumber,
		Kind:          a.kind,
		Owner:         *a.owner,
		Balance:       a.balance,
		Ledger:        a.Transactions(),
	}
}

// Deposit adds amount to the balance. The sign of amount is not
// validated: a negative deposit is accepted and decreases the balance.
func (a *Account) Deposit(amount float64) Transaction {
	a.balance += amount
	return a.record(TransactionDeposit, amount)
}

// Withdraw subtracts amount from the balance. Overdrafts are permitted;
// the overdraft penalty appears in the fee snapshot but is not charged.
func (a *Account) Withdraw(amount float64) Transaction {
	a.balance -= amount
	return a.record(TransactionWithdrawal, amount)
}

// AddInterest posts interest of balance times the owner's rate for this
// account kind. A negative balance yields a negative interest amount.
func (a *Account) AddInterest() Transaction {
	var rate float64
	if a.kind == KindSavings {
		rate = a.owner.SavingsInterestRate()
	} else {
		rate = a.owner.CheckingInterestRate()
	}
	interest := a.balance * rate
	a.balance += interest
	return a.record(TransactionAddInterest, interest)
}

func (a *Account) record(txType TransactionType, amount float64) Transaction {
	tx := Transaction{
		CustomerID: a.owner.CustomerID,
		Type:       txType,
		Amount:     amount,
		Fees:       a.feeSnapshot(),
		RecordedAt: time.Now(),
	}
	a.ledger = append(a.ledger, tx)
	return tx
}

func (a *Account) feeSnapshot() string {
	return fmt.Sprintf("Check Charge: %g Overdraft Fee: %g",
		a.owner.CheckCharge(), a.owner.OverdraftPenalty())
}

// Describe renders the account statement: the owner's profile, the
// balance and account number, the four tier constants, and the
// account-type label.
func (a *Account) Describe() string {
	return a.Snapshot().Describe()
}

// Describe renders the statement from the snapshot's copied state.
func (s Snapshot) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\n", s.Owner.Name)
	fmt.Fprintf(&sb, "Customer ID number: %d\n", s.Owner.CustomerID)
	fmt.Fprintf(&sb, "Address: %s\n", s.Owner.Address)
	fmt.Fprintf(&sb, "Phone number: %s\n", s.Owner.Telephone)
	fmt.Fprintf(&sb, "Age: %d\n", s.Owner.Age)
	fmt.Fprintf(&sb, "Customer type: %s\n", s.Owner.Tier)
	fmt.Fprintf(&sb, "Balance: %g\n", s.Balance)
	fmt.Fprintf(&sb, "Account ID: %d\n", s.AccountNumber)
	fmt.Fprintf(&sb, "Savings interest: %g\n", s.Owner.SavingsInterestRate())
	fmt.Fprintf(&sb, "Checking interest: %g\n", s.Owner.CheckingInterestRate())
	fmt.Fprintf(&sb, "Check charge: %g\n", s.Owner.CheckCharge())
	fmt.Fprintf(&sb, "Overdraft fee: %g\n", s.Owner.OverdraftPenalty())
	fmt.Fprintf(&sb, "Account type: %s\n", s.Kind.Label())
	return sb.String()
}
