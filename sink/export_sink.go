package sink

import (
	"context"
	"fmt"
	"log/slog"
	"qkd-ledger/domain"
	"qkd-ledger/domain/event"
	"strings"

	"github.com/google/renameio/v2"
)

// FormatLog renders one human-readable entry per block, labelled with its
// chain index: sender, receiver, message, hash, signature, verification, timestamp.
func FormatLog(chain []domain.Block) string {
	var b strings.Builder
	for _, block := range chain {
		tx := block.Transaction
		fmt.Fprintf(&b, "Transaction %d:\n", block.Index)
		fmt.Fprintf(&b, "  Sender: %s\n", tx.SenderID.NodeName())
		fmt.Fprintf(&b, "  Receiver: %s\n", tx.ReceiverID.NodeName())
		fmt.Fprintf(&b, "  Message: %s\n", tx.Message)
		fmt.Fprintf(&b, "  Hash: %s\n", tx.MessageHash)
		fmt.Fprintf(&b, "  Signature: %s\n", tx.Signature)
		fmt.Fprintf(&b, "  Verification: %s\n", tx.Verification)
		fmt.Fprintf(&b, "  Timestamp: %s\n\n", tx.Timestamp)
	}
	return b.String()
}

// ExportSink rewrites the whole log file after each append.
// The file is replaced atomically so readers never see a partial export.
type ExportSink struct {
	path string
	log  *slog.Logger
}

func NewExportSink(path string, log *slog.Logger) ExportSink {
	return ExportSink{path: path, log: log}
}

func (s ExportSink) Name() string { return "export" }

func (s ExportSink) Consume(_ context.Context, e event.DomainEvent) error {
	evt, ok := e.(event.TransactionAppended)
	if !ok {
		return nil
	}
	if err := renameio.WriteFile(s.path, []byte(FormatLog(evt.Chain)), 0o644); err != nil {
		return fmt.Errorf("export log to %s: %w", s.path, err)
	}
	s.log.Debug("Ledger log exported", "path", s.path, "blocks", len(evt.Chain))
	return nil
}
