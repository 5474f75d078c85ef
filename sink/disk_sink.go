package sink

import (
	"context"
	"fmt"
	"log/slog"
	"qkd-ledger/domain/event"
	"qkd-ledger/repositories"
)

// DiskSink persists every appended block.
type DiskSink struct {
	repository repositories.ITransactionRepository
	log        *slog.Logger
}

func NewDiskSink(repository repositories.ITransactionRepository, log *slog.Logger) DiskSink {
	return DiskSink{repository: repository, log: log}
}

func (d DiskSink) Name() string { return "disk" }

func (d DiskSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.TransactionAppended:
		if err := d.repository.StoreTransaction(evt.Index, evt.Transaction); err != nil {
			return fmt.Errorf("store block %d: %w", evt.Index, err)
		}
		return nil
	default:
		d.log.Debug(fmt.Sprintf("Not implemented event : %T", evt))
		return nil
	}
}
