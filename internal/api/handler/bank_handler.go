package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"retail-bank/internal/api/handler/dto"
	"retail-bank/internal/api/middleware"
	"retail-bank/internal/domain/account"
	"retail-bank/internal/domain/bank"
	"retail-bank/internal/pkg/apperrors"
)

type BankHandler struct {
	service bank.BankService
	logger  *slog.Logger
}

func NewBankHandler(s bank.BankService, l *slog.Logger) *BankHandler {
	if s == nil {
		panic("bank service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &BankHandler{
		service: s,
		logger:  l.With("component", "BankHandler"),
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	status, message, field := http.StatusInternalServerError, "An unexpected error occurred.", ""
	var validationError *apperrors.ValidationError
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	case errors.As(err, &appErr):
		message = appErr.Error()
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

func getAccountNumberFromURL(r *http.Request) (int64, error) {
	numStr := chi.URLParam(r, "accountNumber")
	if numStr == "" {
		return 0, fmt.Errorf("%w: accountNumber not found in URL path", apperrors.ErrInvalidArgument)
	}
	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid accountNumber format in URL path: %s", apperrors.ErrInvalidArgument, numStr)
	}
	return num, nil
}

func getCustomerIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "customerID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: customerID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid customerID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// OpenAccount handles POST /accounts: registers a new customer of the
// requested tier and opens their first account.
func (h *BankHandler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received open account request")

	var req dto.OpenAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	acct, err := h.service.OpenAccount(r.Context(), bank.OpenAccountParams{
		Name:         req.Name,
		Address:      req.Address,
		Telephone:    req.Telephone,
		Age:          req.Age,
		CustomerType: req.CustomerType,
		AccountType:  req.AccountType,
	})
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to open account", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewAccountResponse(acct)
	h.logger.InfoContext(r.Context(), "Account opened", slog.String("accountNumber", resp.AccountNumber))
	respondJSON(w, http.StatusCreated, resp)
}

// OpenAdditionalAccount handles POST /accounts/existing: opens another
// account for an already registered customer, matched by name.
func (h *BankHandler) OpenAdditionalAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenAdditionalAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	acct, err := h.service.OpenAccountForExisting(r.Context(), req.Name, req.AccountType)
	if err != nil {
		level := slog.LevelWarn
		if !bank.IsNotFound(err) && !errors.Is(err, apperrors.ErrInvalidArgument) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to open additional account", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewAccountResponse(acct))
}

// ListAccountsByName handles GET /accounts?owner={name} and returns
// the account numbers owned by the matching customer name.
func (h *BankHandler) ListAccountsByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("owner")
	if name == "" {
		respondError(w, fmt.Errorf("%w: owner query parameter is required", apperrors.ErrInvalidArgument))
		return
	}

	numbers, err := h.service.ListAccountNumbersByName(r.Context(), name)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewAccountNumbersResponse(name, numbers))
}

// GetAccount handles GET /accounts/{accountNumber}.
func (h *BankHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountNumber, err := getAccountNumberFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	acct, err := h.service.GetAccount(r.Context(), accountNumber)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewAccountResponse(acct))
}

// GetStatement handles GET /accounts/{accountNumber}/statement and
// responds with the plain-text account description.
func (h *BankHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
	accountNumber, err := getAccountNumberFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	statement, err := h.service.DescribeAccount(r.Context(), accountNumber)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(statement))
}

// ListTransactions handles GET /accounts/{accountNumber}/transactions.
func (h *BankHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	accountNumber, err := getAccountNumberFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	snap, err := h.service.GetAccount(r.Context(), accountNumber)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]dto.TransactionResponse, len(snap.Ledger))
	for i, tx := range snap.Ledger {
		resp[i] = dto.NewTransactionResponse(tx)
	}
	respondJSON(w, http.StatusOK, resp)
}

// Deposit handles POST /accounts/{accountNumber}/deposits.
func (h *BankHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.handleAmountOperation(w, r, "Deposit", h.service.Deposit)
}

// Withdraw handles POST /accounts/{accountNumber}/withdrawals.
func (h *BankHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.handleAmountOperation(w, r, "Withdrawal", h.service.Withdraw)
}

func (h *BankHandler) handleAmountOperation(w http.ResponseWriter, r *http.Request, txType string,
	op func(ctx context.Context, accountNumber int64, amount float64) (account.Snapshot, error)) {
	accountNumber, err := getAccountNumberFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.AmountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	snap, err := op(r.Context(), accountNumber, req.Float64())
	if err != nil {
		level := slog.LevelWarn
		if !bank.IsNotFound(err) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to record transaction",
			slog.String("type", txType), slog.Any("error", err))
		respondError(w, err)
		return
	}

	middleware.TransactionsTotal.WithLabelValues(txType).Inc()
	respondJSON(w, http.StatusOK, dto.NewAccountResponse(snap))
}

// PostInterest handles POST /accounts/{accountNumber}/interest.
func (h *BankHandler) PostInterest(w http.ResponseWriter, r *http.Request) {
	accountNumber, err := getAccountNumberFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	acct, err := h.service.PostInterest(r.Context(), accountNumber)
	if err != nil {
		respondError(w, err)
		return
	}

	middleware.TransactionsTotal.WithLabelValues("Add interest").Inc()
	respondJSON(w, http.StatusOK, dto.NewAccountResponse(acct))
}

// UpdateCustomer handles PUT /customers/{customerID}: edits the profile
// fields supplied in the payload.
func (h *BankHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.UpdateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	cust, err := h.service.UpdateCustomerProfile(r.Context(), customerID, bank.UpdateProfileParams{
		Name:         req.Name,
		Address:      req.Address,
		Telephone:    req.Telephone,
		Age:          req.Age,
		CustomerType: req.CustomerType,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(cust))
}
