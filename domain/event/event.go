package event

import (
	"qkd-ledger/domain"
	"time"
)

type DomainEvent interface {
	OccurredAt() time.Time
}

// TransactionAppended is emitted once a transaction is stored in the ledger.
// Chain is the ordered history at that moment, the appended transaction included.
// It shares storage with the ledger and is read-only.
type TransactionAppended struct {
	Index       int
	Transaction domain.Transaction
	Chain       []domain.Block
}

func (t TransactionAppended) OccurredAt() time.Time {
	return t.Transaction.CreatedAt
}

func (t TransactionAppended) Record() domain.TransactionRecord {
	return domain.ToRecord(t.Index, t.Transaction)
}

// SecretEstablished is emitted when an agreement replaces the shared secret.
// It never carries the secret itself.
type SecretEstablished struct {
	Generated int
	Sifted    int
	Length    int
	At        time.Time
}

func (s SecretEstablished) OccurredAt() time.Time {
	return s.At
}
