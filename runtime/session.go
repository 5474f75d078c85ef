// Package runtime owns the live session state and moves events to collaborators.
// It orchestrates the system without containing hashing or sifting rules.
package runtime

import (
	"fmt"
	"log/slog"
	"qkd-ledger/contract"
	"qkd-ledger/domain"
	"qkd-ledger/domain/event"
	"qkd-ledger/errors"
	"qkd-ledger/ledger"
	"qkd-ledger/quantum"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
)

// epoch records which secret signed the chain from a given index onwards.
type epoch struct {
	from   int
	secret domain.SharedSecret
}

// Session is the context shared by both nodes: the current secret and the ledger.
// One lock guards both, so a rekey never interleaves with a submission.
type Session struct {
	mu        sync.RWMutex
	log       *slog.Logger
	simulator *quantum.Simulator
	factory   *ledger.Factory
	ledger    *ledger.Ledger
	publisher contract.EventPublisher
	now       ledger.Clock

	secret   domain.SharedSecret
	epochs   []epoch
	restored int
	last     time.Time
}

func NewSession(log *slog.Logger, simulator *quantum.Simulator, publisher contract.EventPublisher, now ledger.Clock) *Session {
	if now == nil {
		now = time.Now
	}
	s := &Session{
		log:       log,
		simulator: simulator,
		ledger:    ledger.NewLedger(),
		publisher: publisher,
		now:       now,
	}
	s.factory = ledger.NewFactory(s.clock)
	return s
}

// clock never goes backwards, keeping timestamps ordered like the chain.
// Must be called with mu held.
func (s *Session) clock() time.Time {
	now := s.now()
	if now.Before(s.last) {
		return s.last
	}
	s.last = now
	return now
}

// EstablishSharedSecret runs a fresh agreement over n positions and replaces
// the secret used by every later transaction.
func (s *Session) EstablishSharedSecret(n int) domain.SharedSecret {
	s.mu.Lock()
	defer s.mu.Unlock()

	agreement := s.simulator.RunAgreement(n)
	s.secret = agreement.Secret

	from := s.ledger.Height() + 1
	if last := len(s.epochs) - 1; last >= 0 && s.epochs[last].from == from {
		s.epochs[last].secret = agreement.Secret
	} else {
		s.epochs = append(s.epochs, epoch{from: from, secret: agreement.Secret})
	}

	s.log.Info("Shared secret established between nodes",
		"generated", agreement.Generated, "sifted", agreement.Sifted, "length", agreement.Secret.Len())
	s.log.Debug("Shared secret", "secret", agreement.Secret.String())

	s.publish(event.SecretEstablished{
		Generated: agreement.Generated,
		Sifted:    agreement.Sifted,
		Length:    agreement.Secret.Len(),
		At:        s.now(),
	})
	return agreement.Secret
}

func (s *Session) SharedSecret() domain.SharedSecret {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.secret
}

// SubmitMessage signs message with the current secret, appends it and
// notifies collaborators. The append is complete whatever happens to the notification.
func (s *Session) SubmitMessage(sender, receiver domain.NodeID, message string) domain.TransactionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.factory.Create(sender, receiver, message, s.secret)
	index := s.ledger.Append(tx)
	s.log.Debug(fmt.Sprintf("%s sent to %s", sender.NodeName(), receiver.NodeName()), "block", index)

	// View shares the ledger storage, so publishing stays O(1) per append
	s.publish(event.TransactionAppended{
		Index:       index,
		Transaction: tx,
		Chain:       s.ledger.View(),
	})
	return domain.ToRecord(index, tx)
}

func (s *Session) ListTransactions() []domain.TransactionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Map(s.ledger.Blocks(), func(block domain.Block, _ int) domain.TransactionRecord {
		return block.Record()
	})
}

// Chain returns the ordered blocks for exporters.
func (s *Session) Chain() []domain.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Blocks()
}

func (s *Session) Transaction(index int) (domain.TransactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.ledger.At(index)
	if !ok {
		return domain.TransactionRecord{}, fmt.Errorf("block %d: %w", index, errors.ErrTransactionNotFound)
	}
	return domain.ToRecord(index, tx), nil
}

// Audit re-derives the signature of the block at index with the secret that
// was in effect when it was created. Blocks restored from a previous process
// were signed with a secret this process never held.
func (s *Session) Audit(index int) (domain.Audit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.ledger.At(index)
	if !ok {
		return domain.Audit{}, fmt.Errorf("block %d: %w", index, errors.ErrTransactionNotFound)
	}
	audit := domain.Audit{Index: index, Verification: tx.Verification}
	secret, known := s.secretAt(index)
	if known {
		audit.KeyKnown = true
		audit.Authentic = ledger.VerifySignature(tx, secret)
	}
	return audit, nil
}

func (s *Session) secretAt(index int) (domain.SharedSecret, bool) {
	if index <= s.restored {
		return "", false
	}
	i := sort.Search(len(s.epochs), func(i int) bool { return s.epochs[i].from > index })
	if i == 0 {
		// Signed before any agreement ran, with the empty secret
		return "", true
	}
	return s.epochs[i-1].secret, true
}

// Restore reloads persisted history without notifying collaborators.
// Blocks keep their stored index and new appends continue after the highest
// one, so a block on disk is never overwritten. It is meant to run once at
// startup, before the first submission.
func (s *Session) Restore(blocks []domain.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.ledger.Height()
	if err := s.ledger.Load(blocks); err != nil {
		return fmt.Errorf("restore ledger: %w", err)
	}
	for _, block := range blocks {
		if block.Index != previous+1 {
			s.log.Warn("Stored chain has missing blocks", "from", previous+1, "to", block.Index-1)
		}
		previous = block.Index
		if block.Transaction.CreatedAt.After(s.last) {
			s.last = block.Transaction.CreatedAt
		}
	}
	s.restored = s.ledger.Height()
	for i := range s.epochs {
		s.epochs[i].from = max(s.epochs[i].from, s.restored+1)
	}
	s.log.Info(fmt.Sprintf("%d transactions restored", len(blocks)), "height", s.restored)
	return nil
}

// Len is the number of blocks held, Height the index of the last one.
func (s *Session) Len() int {
	return s.ledger.Len()
}

func (s *Session) Height() int {
	return s.ledger.Height()
}

func (s *Session) publish(evt event.DomainEvent) {
	if s.publisher != nil {
		s.publisher.Publish(evt)
	}
}
