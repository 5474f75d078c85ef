package ledger

import (
	"fmt"
	"qkd-ledger/domain"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLedger_Append_PreservesOrder(t *testing.T) {
	req := require.New(t)
	ledger := NewLedger()
	factory := NewFactory(nil)

	var appended []domain.Transaction
	for i := 0; i < 5; i++ {
		tx := factory.Create(1, 2, fmt.Sprintf("message %d", i), "01")
		index := ledger.Append(tx)
		req.Equal(i+1, index)
		appended = append(appended, tx)
	}

	snapshot := ledger.Snapshot()
	req.Len(snapshot, 5)
	req.Equal(appended, snapshot)
	req.Equal(5, ledger.Len())
}

func TestLedger_Snapshot_IsACopy(t *testing.T) {
	req := require.New(t)
	ledger := NewLedger()
	ledger.Append(domain.Transaction{Message: "original"})

	// When a collaborator alters its snapshot
	snapshot := ledger.Snapshot()
	snapshot[0].Message = "rewritten"
	_ = append(snapshot, domain.Transaction{Message: "injected"})

	// Then history is untouched
	req.Equal("original", ledger.Snapshot()[0].Message)
	req.Equal(1, ledger.Len())
}

func TestLedger_Empty(t *testing.T) {
	req := require.New(t)
	ledger := NewLedger()
	req.Empty(ledger.Snapshot())
	req.NotNil(ledger.Snapshot())
	_, ok := ledger.At(1)
	req.False(ok)
}

func TestLedger_At(t *testing.T) {
	req := require.New(t)
	ledger := NewLedger()
	ledger.Append(domain.Transaction{Message: "first"})
	ledger.Append(domain.Transaction{Message: "second"})

	tx, ok := ledger.At(2)
	req.True(ok)
	req.Equal("second", tx.Message)

	_, ok = ledger.At(0)
	req.False(ok)
	_, ok = ledger.At(3)
	req.False(ok)
}

func TestLedger_ConcurrentAppend(t *testing.T) {
	req := require.New(t)
	ledger := NewLedger()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ledger.Append(domain.Transaction{})
			_ = ledger.Snapshot()
		}()
	}
	wg.Wait()
	req.Equal(50, ledger.Len())
}

func TestLedger_Load_KeepsStoredIndices(t *testing.T) {
	req := require.New(t)
	ledger := NewLedger()

	// Given a stored chain where block 2 was never written
	req.NoError(ledger.Load([]domain.Block{
		{Index: 1, Transaction: domain.Transaction{Message: "one"}},
		{Index: 3, Transaction: domain.Transaction{Message: "three"}},
	}))

	// When a new transaction is appended
	index := ledger.Append(domain.Transaction{Message: "four"})

	// Then it follows the highest stored index
	req.Equal(4, index)
	req.Equal(3, ledger.Len())
	req.Equal(4, ledger.Height())
	tx, ok := ledger.At(3)
	req.True(ok)
	req.Equal("three", tx.Message)
	_, ok = ledger.At(2)
	req.False(ok)
	req.Equal([]int{1, 3, 4}, []int{ledger.Blocks()[0].Index, ledger.Blocks()[1].Index, ledger.Blocks()[2].Index})
}

func TestLedger_Load_RejectsOutOfOrder(t *testing.T) {
	req := require.New(t)
	ledger := NewLedger()
	ledger.Append(domain.Transaction{Message: "first"})

	req.Error(ledger.Load([]domain.Block{{Index: 1}}))
	req.Error(ledger.Load([]domain.Block{{Index: 3}, {Index: 2}}))
	req.Equal(1, ledger.Len())
}

func TestLedger_View_IsFrozen(t *testing.T) {
	req := require.New(t)
	ledger := NewLedger()
	ledger.Append(domain.Transaction{Message: "first"})

	view := ledger.View()
	ledger.Append(domain.Transaction{Message: "second"})

	// Later appends stay out of an earlier view
	req.Len(view, 1)
	// And growing the view never writes into the ledger
	_ = append(view, domain.Block{Index: 2, Transaction: domain.Transaction{Message: "injected"}})
	tx, ok := ledger.At(2)
	req.True(ok)
	req.Equal("second", tx.Message)
}
