package runtime

import (
	"fmt"
	"log/slog"
	"qkd-ledger/domain"
	"qkd-ledger/domain/event"
	"qkd-ledger/errors"
	"qkd-ledger/ledger"
	"qkd-ledger/mocks"
	"qkd-ledger/quantum"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// matchingSource makes every basis agree and every bit equal to one.
type matchingSource struct{}

func (matchingSource) IntN(int) int { return 1 }

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.DomainEvent
}

func (p *recordingPublisher) Publish(e event.DomainEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func newTestSession(publisher *recordingPublisher, now ledger.Clock) *Session {
	return NewSession(slog.Default(), quantum.NewSimulator(matchingSource{}, 16), publisher, now)
}

func TestSession_EstablishSharedSecret(t *testing.T) {
	req := require.New(t)
	publisher := &recordingPublisher{}
	session := newTestSession(publisher, nil)

	// Given no agreement ran yet, the secret is empty
	req.Empty(session.SharedSecret())

	secret := session.EstablishSharedSecret(16)

	req.Equal(domain.SharedSecret("1111111111111111"), secret)
	req.Equal(secret, session.SharedSecret())
	req.Len(publisher.events, 1)
	established, ok := publisher.events[0].(event.SecretEstablished)
	req.True(ok)
	req.Equal(16, established.Length)
	req.Equal(16, established.Sifted)
}

func TestSession_SubmitMessage_SignsWithCurrentSecret(t *testing.T) {
	req := require.New(t)
	publisher := &recordingPublisher{}
	session := newTestSession(publisher, nil)
	secret := session.EstablishSharedSecret(4)

	record := session.SubmitMessage(domain.FirstNode, domain.SecondNode, "hello")

	req.Equal(1, record.Index)
	req.Equal("Node 1", record.Sender)
	req.Equal("Node 2", record.Receiver)
	req.Equal(ledger.Hash("hello"), record.Hash)
	req.Equal(ledger.Sign(ledger.Hash("hello"), secret), record.Signature)
	req.Equal(domain.Verified, record.Verification)

	// And collaborators get the transaction with the chain snapshot
	appended, ok := publisher.events[1].(event.TransactionAppended)
	req.True(ok)
	req.Equal(1, appended.Index)
	req.Len(appended.Chain, 1)
	req.Equal(domain.Block{Index: 1, Transaction: appended.Transaction}, appended.Chain[0])
}

func TestSession_ThreeSubmissions_InOrder(t *testing.T) {
	req := require.New(t)
	session := newTestSession(&recordingPublisher{}, nil)
	session.EstablishSharedSecret(16)

	for i := 1; i <= 3; i++ {
		session.SubmitMessage(domain.FirstNode, domain.SecondNode, fmt.Sprintf("message %d", i))
	}

	records := session.ListTransactions()
	req.Len(records, 3)
	chain := session.Chain()
	for i, record := range records {
		req.Equal(i+1, record.Index)
		req.Equal(fmt.Sprintf("message %d", i+1), record.Message)
		if i > 0 {
			req.False(chain[i].Transaction.CreatedAt.Before(chain[i-1].Transaction.CreatedAt))
			req.GreaterOrEqual(record.Timestamp, records[i-1].Timestamp)
		}
	}
}

func TestSession_ClockNeverGoesBackwards(t *testing.T) {
	req := require.New(t)
	start := time.Date(2026, 10, 16, 12, 0, 0, 0, time.Local)
	ticks := []time.Time{start, start.Add(-time.Hour), start.Add(time.Second)}
	var i int
	now := func() time.Time {
		tick := ticks[min(i, len(ticks)-1)]
		i++
		return tick
	}
	session := newTestSession(&recordingPublisher{}, now)

	session.SubmitMessage(domain.FirstNode, domain.SecondNode, "a")
	session.SubmitMessage(domain.FirstNode, domain.SecondNode, "b")
	session.SubmitMessage(domain.FirstNode, domain.SecondNode, "c")

	chain := session.Chain()
	req.Equal(start, chain[0].Transaction.CreatedAt)
	req.Equal(start, chain[1].Transaction.CreatedAt)
	req.Equal(start.Add(time.Second), chain[2].Transaction.CreatedAt)
}

func TestSession_Rekey_AuditUsesEpochSecret(t *testing.T) {
	req := require.New(t)
	session := newTestSession(&recordingPublisher{}, nil)

	// Given a block signed before any agreement, with the empty secret
	session.SubmitMessage(domain.FirstNode, domain.SecondNode, "before")
	// And a block after a 4-bit agreement
	session.EstablishSharedSecret(4)
	session.SubmitMessage(domain.SecondNode, domain.FirstNode, "first epoch")
	// And a block after a rekey over 8 bits
	session.EstablishSharedSecret(8)
	session.SubmitMessage(domain.FirstNode, domain.SecondNode, "second epoch")

	for index := 1; index <= 3; index++ {
		audit, err := session.Audit(index)
		req.NoError(err)
		req.True(audit.KeyKnown, index)
		req.True(audit.Authentic, index)
		req.Equal(domain.Verified, audit.Verification)
	}

	// The second block was signed with the 4-bit secret, not the current one
	record, err := session.Transaction(2)
	req.NoError(err)
	req.Equal(ledger.Sign(record.Hash, "1111"), record.Signature)
}

func TestSession_Audit_NotFound(t *testing.T) {
	req := require.New(t)
	session := newTestSession(&recordingPublisher{}, nil)

	_, err := session.Audit(1)
	req.ErrorIs(err, errors.ErrTransactionNotFound)
	_, err = session.Transaction(0)
	req.ErrorIs(err, errors.ErrTransactionNotFound)
}

func TestSession_Restore(t *testing.T) {
	req := require.New(t)
	publisher := &recordingPublisher{}
	session := newTestSession(publisher, nil)
	factory := ledger.NewFactory(nil)
	history := []domain.Block{
		{Index: 1, Transaction: factory.Create(1, 2, "old one", "0101")},
		{Index: 2, Transaction: factory.Create(2, 1, "old two", "0101")},
	}

	// Given an agreement ran before the history was reloaded
	session.EstablishSharedSecret(16)
	req.NoError(session.Restore(history))
	record := session.SubmitMessage(domain.FirstNode, domain.SecondNode, "new")

	// Then numbering continues after the restored blocks
	req.Equal(3, record.Index)
	req.Equal(history, session.Chain()[:2])

	// And restored blocks cannot be audited with a secret we never held
	audit, err := session.Audit(1)
	req.NoError(err)
	req.False(audit.KeyKnown)
	audit, err = session.Audit(3)
	req.NoError(err)
	req.True(audit.Authentic)

	// And restoring published nothing
	req.Len(publisher.events, 2)
}

func TestSession_Restore_GappedHistory(t *testing.T) {
	req := require.New(t)
	session := newTestSession(&recordingPublisher{}, nil)
	factory := ledger.NewFactory(nil)

	// Given a store where block 2 was lost
	req.NoError(session.Restore([]domain.Block{
		{Index: 1, Transaction: factory.Create(1, 2, "one", "")},
		{Index: 3, Transaction: factory.Create(1, 2, "three", "")},
	}))
	session.EstablishSharedSecret(16)

	// When a new message is submitted
	record := session.SubmitMessage(domain.FirstNode, domain.SecondNode, "four")

	// Then it is keyed after the highest stored index, block 3 is untouched
	req.Equal(4, record.Index)
	three, err := session.Transaction(3)
	req.NoError(err)
	req.Equal("three", three.Message)
	_, err = session.Transaction(2)
	req.ErrorIs(err, errors.ErrTransactionNotFound)
	req.Equal([]int{1, 3, 4}, lo.Map(session.ListTransactions(), func(r domain.TransactionRecord, _ int) int {
		return r.Index
	}))
	req.Equal(3, session.Len())
	req.Equal(4, session.Height())

	// And the new block is auditable while restored ones are not
	audit, err := session.Audit(4)
	req.NoError(err)
	req.True(audit.Authentic)
	audit, err = session.Audit(3)
	req.NoError(err)
	req.False(audit.KeyKnown)
}

func TestSession_Restore_RejectsOutOfOrder(t *testing.T) {
	session := newTestSession(&recordingPublisher{}, nil)
	err := session.Restore([]domain.Block{{Index: 2}, {Index: 2}})
	require.Error(t, err)
}

func TestSession_Publishes_ThroughPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	publisher := mocks.NewMockEventPublisher(ctrl)
	session := NewSession(slog.Default(), quantum.NewSimulator(matchingSource{}, 16), publisher, nil)

	gomock.InOrder(
		publisher.EXPECT().Publish(gomock.AssignableToTypeOf(event.SecretEstablished{})).Times(1),
		publisher.EXPECT().Publish(gomock.AssignableToTypeOf(event.TransactionAppended{})).Times(1),
	)

	session.EstablishSharedSecret(16)
	session.SubmitMessage(domain.FirstNode, domain.SecondNode, "hi")
}

func TestSession_ConcurrentSubmitAndRekey(t *testing.T) {
	req := require.New(t)
	session := newTestSession(&recordingPublisher{}, nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			session.SubmitMessage(domain.FirstNode, domain.SecondNode, "x")
		}()
		go func() {
			defer wg.Done()
			session.EstablishSharedSecret(16)
			_ = session.ListTransactions()
		}()
	}
	wg.Wait()

	req.Equal(20, session.Len())
	for index := 1; index <= 20; index++ {
		audit, err := session.Audit(index)
		req.NoError(err)
		req.True(audit.Authentic)
	}
}
