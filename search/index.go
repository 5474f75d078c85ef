// Package search keeps a full-text index of ledger messages.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"qkd-ledger/domain/event"
	"qkd-ledger/errors"
	"sort"
	"strconv"
	"strings"

	"github.com/blugelabs/bluge"
)

const (
	fieldMessage = "message"
	fieldSender  = "sender"
	fieldIndex   = "index"
)

// Index is fed by appended blocks and answers message queries with block indices.
type Index struct {
	writer *bluge.Writer
	log    *slog.Logger
}

// Open opens an index stored under path, or an in-memory one when path is empty.
func Open(path string, log *slog.Logger) (*Index, error) {
	config := bluge.InMemoryOnlyConfig()
	if path != "" {
		config = bluge.DefaultConfig(path)
	}
	writer, err := bluge.OpenWriter(config)
	if err != nil {
		return nil, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	return &Index{writer: writer, log: log}, nil
}

func (i *Index) Name() string { return "search" }

func (i *Index) Consume(_ context.Context, e event.DomainEvent) error {
	evt, ok := e.(event.TransactionAppended)
	if !ok {
		return nil
	}
	doc := bluge.NewDocument(strconv.Itoa(evt.Index)).
		AddField(bluge.NewTextField(fieldMessage, evt.Transaction.Message)).
		AddField(bluge.NewKeywordField(fieldSender, evt.Transaction.SenderID.NodeName()).StoreValue()).
		AddField(bluge.NewNumericField(fieldIndex, float64(evt.Index)).StoreValue().Sortable())
	if err := i.writer.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("index block %d: %w", evt.Index, err)
	}
	return nil
}

// Search returns the indices of blocks whose message matches query, in chain order.
func (i *Index) Search(ctx context.Context, query string, limit int) ([]int, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.ErrEmptyQuery
	}
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	request := bluge.NewTopNSearch(limit, bluge.NewMatchQuery(query).SetField(fieldMessage))
	matches, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	var indices []int
	match, err := matches.Next()
	for err == nil && match != nil {
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				index, convErr := strconv.Atoi(string(value))
				if convErr == nil {
					indices = append(indices, index)
				}
				return false
			}
			return true
		})
		if visitErr != nil {
			return nil, visitErr
		}
		match, err = matches.Next()
	}
	if err != nil {
		return nil, err
	}
	sort.Ints(indices)
	return indices, nil
}

func (i *Index) Close() error {
	return i.writer.Close()
}
