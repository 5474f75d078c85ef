package ledger

import (
	"fmt"
	"qkd-ledger/domain"
	"sort"
	"sync"
)

// Ledger is an append-only ordered record of transactions.
// Blocks keep increasing indices. A chain restored from disk may have gaps.
type Ledger struct {
	mu     sync.RWMutex
	blocks []domain.Block
}

func NewLedger() *Ledger {
	return &Ledger{blocks: make([]domain.Block, 0)}
}

// Append stores tx after the last block and returns its 1-based index.
// On a ledger without gaps this is also the new length.
func (l *Ledger) Append(tx domain.Transaction) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	index := l.height() + 1
	l.blocks = append(l.blocks, domain.Block{Index: index, Transaction: tx})
	return index
}

// Load appends blocks that already carry their index, such as blocks read
// back from disk. Indices must keep increasing, gaps are kept as they are.
func (l *Ledger) Load(blocks []domain.Block) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	height := l.height()
	for _, block := range blocks {
		if block.Index <= height {
			return fmt.Errorf("block %d does not follow block %d", block.Index, height)
		}
		height = block.Index
	}
	l.blocks = append(l.blocks, blocks...)
	return nil
}

// Snapshot returns a copy of the transactions in chain order.
func (l *Ledger) Snapshot() []domain.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Transaction, len(l.blocks))
	for i, block := range l.blocks {
		out[i] = block.Transaction
	}
	return out
}

// Blocks returns a copy of the chain with its indices.
func (l *Ledger) Blocks() []domain.Block {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Block, len(l.blocks))
	copy(out, l.blocks)
	return out
}

// View returns the chain as it is now without copying it. Blocks below the
// current length are never written again and the capacity is capped, so later
// appends stay invisible. Callers must not modify the returned blocks.
func (l *Ledger) View() []domain.Block {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := len(l.blocks)
	return l.blocks[:n:n]
}

// Len is the number of blocks held.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.blocks)
}

// Height is the index of the last block, 0 when empty.
func (l *Ledger) Height() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.height()
}

func (l *Ledger) height() int {
	if len(l.blocks) == 0 {
		return 0
	}
	return l.blocks[len(l.blocks)-1].Index
}

// At returns the transaction at the 1-based index.
func (l *Ledger) At(index int) (domain.Transaction, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i := sort.Search(len(l.blocks), func(i int) bool { return l.blocks[i].Index >= index })
	if i == len(l.blocks) || l.blocks[i].Index != index {
		return domain.Transaction{}, false
	}
	return l.blocks[i].Transaction, true
}
