package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"retail-bank/internal/domain/account"
	"retail-bank/internal/domain/customer"
)

type OpenAccountRequest struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	Telephone    string `json:"telephone"`
	Age          int    `json:"age"`
	CustomerType string `json:"customerType"`
	AccountType  string `json:"accountType"`
}

func (r *OpenAccountRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.TrimSpace(r.CustomerType) == "" {
		return fmt.Errorf("customerType cannot be empty")
	}
	if strings.TrimSpace(r.AccountType) == "" {
		return fmt.Errorf("accountType cannot be empty")
	}
	return nil
}

// OpenAdditionalAccountRequest opens another account for a customer
// already on the books, matched by exact name.
type OpenAdditionalAccountRequest struct {
	Name        string `json:"name"`
	AccountType string `json:"accountType"`
}

func (r *OpenAdditionalAccountRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.TrimSpace(r.AccountType) == "" {
		return fmt.Errorf("accountType cannot be empty")
	}
	return nil
}

// AmountRequest carries a deposit or withdrawal amount as a decimal
// string. Only the format is validated; the sign is not, so negative
// deposits pass through to the ledger.
type AmountRequest struct {
	Amount string `json:"amount"`
}

func (r *AmountRequest) Validate() error {
	if _, err := decimal.NewFromString(r.Amount); err != nil || r.Amount == "" {
		return fmt.Errorf("invalid amount: %w", err)
	}
	return nil
}

func (r *AmountRequest) Float64() float64 {
	d, _ := decimal.NewFromString(r.Amount)
	return d.InexactFloat64()
}

type UpdateCustomerRequest struct {
	Name         *string `json:"name,omitempty"`
	Address      *string `json:"address,omitempty"`
	Telephone    *string `json:"telephone,omitempty"`
	Age          *int    `json:"age,omitempty"`
	CustomerType *string `json:"customerType,omitempty"`
}

func (r *UpdateCustomerRequest) Validate() error {
	if r.Name == nil && r.Address == nil && r.Telephone == nil && r.Age == nil && r.CustomerType == nil {
		return fmt.Errorf("at least one field must be provided")
	}
	return nil
}

type TokenRequest struct {
	Username string `json:"username"`
}

type CustomerResponse struct {
	CustomerID   string `json:"customerId"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Telephone    string `json:"telephone"`
	Age          int    `json:"age"`
	CustomerType string `json:"customerType"`
}

func NewCustomerResponse(cust customer.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:   strconv.FormatInt(cust.CustomerID, 10),
		Name:         cust.Name,
		Address:      cust.Address,
		Telephone:    cust.Telephone,
		Age:          cust.Age,
		CustomerType: string(cust.Tier),
	}
}

type AccountResponse struct {
	AccountNumber string           `json:"accountNumber"`
	AccountType   string           `json:"accountType"`
	Balance       string           `json:"balance"`
	Customer      CustomerResponse `json:"customer"`
}

func NewAccountResponse(snap account.Snapshot) AccountResponse {
	return AccountResponse{
		AccountNumber: strconv.FormatInt(snap.AccountNumber, 10),
		AccountType:   string(snap.Kind),
		Balance:       decimal.NewFromFloat(snap.Balance).StringFixed(2),
		Customer:      NewCustomerResponse(snap.Owner),
	}
}

type TransactionResponse struct {
	CustomerID string    `json:"customerId"`
	Type       string    `json:"type"`
	Amount     string    `json:"amount"`
	Fees       string    `json:"fees"`
	RecordedAt time.Time `json:"recordedAt"`
}

func NewTransactionResponse(tx account.Transaction) TransactionResponse {
	return TransactionResponse{
		CustomerID: strconv.FormatInt(tx.CustomerID, 10),
		Type:       string(tx.Type),
		Amount:     decimal.NewFromFloat(tx.Amount).StringFixed(2),
		Fees:       tx.Fees,
		RecordedAt: tx.RecordedAt,
	}
}

type AccountNumbersResponse struct {
	Name           string   `json:"name"`
	AccountNumbers []string `json:"accountNumbers"`
}

func NewAccountNumbersResponse(name string, numbers []int64) AccountNumbersResponse {
	out := make([]string, len(numbers))
	for i, n := range numbers {
		out[i] = strconv.FormatInt(n, 10)
	}
	return AccountNumbersResponse{Name: name, AccountNumbers: out}
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
