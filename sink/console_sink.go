package sink

import (
	"context"
	"log/slog"
	"qkd-ledger/domain/event"
)

// ConsoleSink logs every appended block with all of its fields.
type ConsoleSink struct {
	log *slog.Logger
}

func NewConsoleSink(log *slog.Logger) ConsoleSink {
	return ConsoleSink{log: log}
}

func (s ConsoleSink) Name() string { return "console" }

func (s ConsoleSink) Consume(ctx context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.TransactionAppended:
		tx := evt.Transaction
		s.log.InfoContext(ctx, "Transaction added to blockchain",
			"block", evt.Index,
			"sender", tx.SenderID.NodeName(),
			"receiver", tx.ReceiverID.NodeName(),
			"message", tx.Message,
			"hash", tx.MessageHash,
			"signature", tx.Signature,
			"verification", tx.Verification,
			"timestamp", tx.Timestamp,
		)
	case event.SecretEstablished:
		s.log.InfoContext(ctx, "Quantum channel established between Node 1 and Node 2",
			"length", evt.Length)
	}
	return nil
}
