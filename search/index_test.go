package search

import (
	"context"
	"log/slog"
	"qkd-ledger/domain"
	"qkd-ledger/domain/event"
	"qkd-ledger/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func feed(t *testing.T, index *Index, messages ...string) {
	t.Helper()
	for i, message := range messages {
		evt := event.TransactionAppended{
			Index:       i + 1,
			Transaction: domain.Transaction{SenderID: domain.FirstNode, ReceiverID: domain.SecondNode, Message: message},
		}
		require.NoError(t, index.Consume(context.Background(), evt))
	}
}

func TestIndex_Search_InMemory(t *testing.T) {
	req := require.New(t)
	index, err := Open("", slog.Default())
	req.NoError(err)
	defer index.Close()

	feed(t, index, "quantum keys are fun", "see you tomorrow", "the quantum channel is up")

	indices, err := index.Search(context.Background(), "quantum", 10)
	req.NoError(err)
	req.Equal([]int{1, 3}, indices)

	indices, err = index.Search(context.Background(), "nothing-matches", 10)
	req.NoError(err)
	req.Empty(indices)
}

func TestIndex_Search_OnDisk(t *testing.T) {
	req := require.New(t)
	index, err := Open(t.TempDir(), slog.Default())
	req.NoError(err)
	defer index.Close()

	feed(t, index, "hello bob", "hello alice")

	indices, err := index.Search(context.Background(), "alice", 10)
	req.NoError(err)
	req.Equal([]int{2}, indices)
}

func TestIndex_Search_EmptyQuery(t *testing.T) {
	req := require.New(t)
	index, err := Open("", slog.Default())
	req.NoError(err)
	defer index.Close()

	_, err = index.Search(context.Background(), "   ", 10)
	req.ErrorIs(err, errors.ErrEmptyQuery)
}

func TestIndex_IgnoresOtherEvents(t *testing.T) {
	req := require.New(t)
	index, err := Open("", slog.Default())
	req.NoError(err)
	defer index.Close()

	req.NoError(index.Consume(context.Background(), event.SecretEstablished{Length: 3}))
}
