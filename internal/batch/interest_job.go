package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"retail-bank/internal/api/middleware"
	"retail-bank/internal/domain/bank"
)

// PostInterestJob posts one interest period to every open account. It
// is scheduled from main via cron and can also be run ad hoc.
type PostInterestJob struct {
	bankService bank.BankService
	logger      *slog.Logger
}

func NewPostInterestJob(bankSvc bank.BankService, logger *slog.Logger) *PostInterestJob {
	if bankSvc == nil || logger == nil {
		panic("PostInterestJob dependencies cannot be nil")
	}
	return &PostInterestJob{
		bankService: bankSvc,
		logger:      logger.With("job", "PostInterest"),
	}
}

func (j *PostInterestJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting scheduled interest posting job.")

	accounts, err := j.bankService.ListAccounts(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list accounts, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to list accounts: %w", err)
	}
	j.logger.InfoContext(ctx, "Fetched open accounts.", slog.Int("count", len(accounts)))

	if len(accounts) == 0 {
		j.logger.InfoContext(ctx, "No open accounts to process.")
		j.logger.InfoContext(ctx, "Interest posting job finished.", slog.Duration("duration", time.Since(startTime)))
		return nil
	}

	var processedCount, errorCount int
	var totalInterest float64

	for _, acct := range accounts {
		if ctx.Err() != nil {
			j.logger.WarnContext(ctx, "Context cancelled, stopping interest posting early.",
				slog.Int("accounts_processed", processedCount))
			return ctx.Err()
		}

		accountNumber := acct.AccountNumber
		logCtx := j.logger.With(slog.Int64("accountNumber", accountNumber))

		updated, postErr := j.bankService.PostInterest(ctx, accountNumber)
		if postErr != nil {
			logCtx.ErrorContext(ctx, "Failed to post interest", slog.Any("error", postErr))
			errorCount++
			continue
		}

		middleware.TransactionsTotal.WithLabelValues("Add interest").Inc()
		if n := len(updated.Ledger); n > 0 {
			totalInterest += updated.Ledger[n-1].Amount
		}
		processedCount++
	}

	duration := time.Since(startTime)
	summaryLog := j.logger.With(
		slog.Duration("duration", duration),
		slog.Int("total_accounts", len(accounts)),
		slog.Int("accounts_processed", processedCount),
		slog.Float64("total_interest_posted", totalInterest),
		slog.Int("errors_encountered", errorCount),
	)
	if errorCount > 0 {
		summaryLog.WarnContext(ctx, "Interest posting job finished with errors.")
		return fmt.Errorf("job completed with %d errors", errorCount)
	}
	summaryLog.InfoContext(ctx, "Interest posting job finished successfully.")
	return nil
}
