package event

import "context"

// Publisher notifies external collaborators about bank activity.
// Publish failures never fail the triggering operation; callers log
// and continue.
type Publisher interface {
	PublishAccountOpened(ctx context.Context, event AccountOpenedEvent) error
	PublishTransactionRecorded(ctx context.Context, event TransactionRecordedEvent) error
}

// NoopPublisher is used when no message broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (*NoopPublisher) PublishAccountOpened(context.Context, AccountOpenedEvent) error {
	return nil
}

func (*NoopPublisher) PublishTransactionRecorded(context.Context, TransactionRecordedEvent) error {
	return nil
}
