//go:generate go run go.uber.org/mock/mockgen -source=transaction.go -destination=../mocks/mock_transaction_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"qkd-ledger/domain"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const transactionPrefix = "tx:"

type ITransactionRepository interface {
	StoreTransaction(index int, tx domain.Transaction) error
	GetTransaction(index int) (domain.Transaction, error)
	LoadAll() ([]domain.Block, error)
	Count() (int, error)
}

type TransactionRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewTransactionRepository(db *badger.DB, log *slog.Logger) TransactionRepository {
	return TransactionRepository{db: db, log: log}
}

// transactionKey is "tx:{index_padded}". The 19-digit zero padding keeps
// lexicographical order equal to chain order.
func transactionKey(index int) []byte {
	return []byte(fmt.Sprintf("%s%019d", transactionPrefix, index))
}

// StoreTransaction persists the block at index. Storing the same index twice
// overwrites it, so a replayed notification does not duplicate history.
func (r TransactionRepository) StoreTransaction(index int, tx domain.Transaction) error {
	value, err := fromTransaction(tx)
	if err != nil {
		return err
	}
	bytes, err := proto.Marshal(value)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(transactionKey(index), bytes)
	})
}

func (r TransactionRepository) GetTransaction(index int) (domain.Transaction, error) {
	var tx domain.Transaction
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(transactionKey(index))
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			tx, err = Decode(value)
			return err
		})
	})
	return tx, err
}

// LoadAll returns the persisted chain in block order, each block with the
// index it was stored under.
func (r TransactionRepository) LoadAll() ([]domain.Block, error) {
	var blocks []domain.Block
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(transactionPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			index, err := ParseIndex(string(item.Key()))
			if err != nil {
				return err
			}
			err = item.Value(func(value []byte) error {
				tx, err := Decode(value)
				if err != nil {
					return fmt.Errorf("block %d: %w", index, err)
				}
				blocks = append(blocks, domain.Block{Index: index, Transaction: tx})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.log.Debug(fmt.Sprintf("%d transactions loaded from disk", len(blocks)))
	return blocks, nil
}

// ParseIndex reads the block index back from a stored key.
func ParseIndex(key string) (int, error) {
	raw, found := strings.CutPrefix(key, transactionPrefix)
	if !found {
		return 0, fmt.Errorf("unexpected key %q", key)
	}
	index, err := strconv.Atoi(raw)
	if err != nil || index < 1 {
		return 0, fmt.Errorf("invalid block index in key %q", key)
	}
	return index, nil
}

func (r TransactionRepository) Count() (int, error) {
	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()
		prefix := []byte(transactionPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Decode reads one stored block value.
func Decode(value []byte) (domain.Transaction, error) {
	var stored structpb.Struct
	if err := proto.Unmarshal(value, &stored); err != nil {
		return domain.Transaction{}, err
	}
	return toTransaction(&stored)
}

func fromTransaction(tx domain.Transaction) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":           tx.ID.String(),
		"sender":       float64(tx.SenderID),
		"receiver":     float64(tx.ReceiverID),
		"message":      tx.Message,
		"hash":         tx.MessageHash,
		"signature":    tx.Signature,
		"verification": string(tx.Verification),
		"timestamp":    tx.Timestamp,
		"created_at":   tx.CreatedAt.Format(time.RFC3339Nano),
	})
}

func toTransaction(stored *structpb.Struct) (domain.Transaction, error) {
	fields := stored.GetFields()
	id, err := uuid.Parse(fields["id"].GetStringValue())
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid transaction id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"].GetStringValue())
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid creation time: %w", err)
	}
	return domain.Transaction{
		ID:           id,
		SenderID:     domain.NodeID(fields["sender"].GetNumberValue()),
		ReceiverID:   domain.NodeID(fields["receiver"].GetNumberValue()),
		Message:      fields["message"].GetStringValue(),
		MessageHash:  fields["hash"].GetStringValue(),
		Signature:    fields["signature"].GetStringValue(),
		Verification: domain.Verification(fields["verification"].GetStringValue()),
		Timestamp:    fields["timestamp"].GetStringValue(),
		CreatedAt:    createdAt,
	}, nil
}
