package event

import "time"

type AccountOpenedEvent struct {
	AccountNumber int64     `json:"accountNumber"`
	CustomerID    int64     `json:"customerId"`
	CustomerName  string    `json:"customerName"`
	CustomerTier  string    `json:"customerTier"`
	AccountType   string    `json:"accountType"`
	Timestamp     time.Time `json:"timestamp"`
}

type TransactionRecordedEvent struct {
	AccountNumber int64     `json:"accountNumber"`
	CustomerID    int64     `json:"customerId"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	Fees          string    `json:"fees"`
	Balance       float64   `json:"balance"`
	Timestamp     time.Time `json:"timestamp"`
}
