//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"qkd-ledger/contract"
	"qkd-ledger/domain"
	"qkd-ledger/errors"
	"qkd-ledger/runtime"
	"qkd-ledger/sink"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

type IChatService interface {
	Status() domain.Status
	SendMessage(cmd domain.SendMessageCommand) (domain.TransactionRecord, error)
	Messages() []domain.TransactionRecord
	Transactions() []domain.TransactionRecord
	Transaction(index int) (domain.TransactionRecord, error)
	Audit(index int) (domain.Audit, error)
	Rekey(bits int) (int, error)
	Graph() string
	Log() string
	Search(ctx context.Context, query string) ([]domain.TransactionRecord, error)
	JoinPeer(peerID string, sink contract.EventSink)
	LeavePeer(peerID string)
}

type PeerRegistrar interface {
	RegisterPeer(peerID string, sink contract.EventSink)
	UnregisterPeer(peerID string)
}

type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]int, error)
}

type ChatService struct {
	log              *slog.Logger
	session          *runtime.Session
	peers            PeerRegistrar
	searcher         Searcher
	defaultBits      int
	maxBits          int
	maxMessageLength int
	searchLimit      int
}

func NewChatService(log *slog.Logger, session *runtime.Session, peers PeerRegistrar, searcher Searcher,
	defaultBits, maxBits, maxMessageLength, searchLimit int) *ChatService {
	return &ChatService{
		log:              log,
		session:          session,
		peers:            peers,
		searcher:         searcher,
		defaultBits:      defaultBits,
		maxBits:          maxBits,
		maxMessageLength: maxMessageLength,
		searchLimit:      searchLimit,
	}
}

func (s *ChatService) Status() domain.Status {
	return domain.Status{
		Status:       "Quantum Blockchain Backend Running",
		SecretLength: s.session.SharedSecret().Len(),
		Transactions: s.session.Len(),
	}
}

// SendMessage validates the command, picks the receiver as the sender's peer
// and appends the signed message.
func (s *ChatService) SendMessage(cmd domain.SendMessageCommand) (domain.TransactionRecord, error) {
	if err := validate.Struct(cmd); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return domain.TransactionRecord{}, fmt.Errorf("%w: %q", errors.ErrInvalidSender, cmd.Sender)
		}
		return domain.TransactionRecord{}, err
	}
	if err := validate.Var(cmd.Message, fmt.Sprintf("max=%d", s.maxMessageLength)); err != nil {
		return domain.TransactionRecord{}, fmt.Errorf("%w: longer than %d characters", errors.ErrInvalidMessage, s.maxMessageLength)
	}

	sender := domain.FirstNode
	if cmd.Sender != "" {
		sender, _ = domain.ParseNodeName(cmd.Sender)
	}
	return s.session.SubmitMessage(sender, sender.Peer(), cmd.Message), nil
}

// Messages is the chat history without hashes and signatures.
func (s *ChatService) Messages() []domain.TransactionRecord {
	return lo.Map(s.session.ListTransactions(), func(r domain.TransactionRecord, _ int) domain.TransactionRecord {
		return r.ToMessage()
	})
}

func (s *ChatService) Transactions() []domain.TransactionRecord {
	return s.session.ListTransactions()
}

func (s *ChatService) Transaction(index int) (domain.TransactionRecord, error) {
	return s.session.Transaction(index)
}

func (s *ChatService) Audit(index int) (domain.Audit, error) {
	return s.session.Audit(index)
}

// Rekey runs a new agreement over bits positions, or the configured default
// when bits is not positive. The agreement runs under the session lock, so
// bits is capped. Only the length of the new secret leaves the service.
func (s *ChatService) Rekey(bits int) (int, error) {
	if bits <= 0 {
		bits = s.defaultBits
	}
	if bits > s.maxBits {
		return 0, fmt.Errorf("%w: %d is above %d", errors.ErrInvalidBits, bits, s.maxBits)
	}
	return s.session.EstablishSharedSecret(bits).Len(), nil
}

// Graph is the DOT rendering of the chain, empty while nothing was appended.
func (s *ChatService) Graph() string {
	chain := s.session.Chain()
	if len(chain) == 0 {
		return ""
	}
	return sink.RenderGraph(chain)
}

func (s *ChatService) Log() string {
	return sink.FormatLog(s.session.Chain())
}

// Search returns the full records of the blocks whose message matches query.
func (s *ChatService) Search(ctx context.Context, query string) ([]domain.TransactionRecord, error) {
	indices, err := s.searcher.Search(ctx, query, s.searchLimit)
	if err != nil {
		return nil, err
	}
	records := make([]domain.TransactionRecord, 0, len(indices))
	for _, index := range indices {
		record, err := s.session.Transaction(index)
		if err != nil {
			// Indexed by a previous run but not restored
			s.log.Debug("Search hit outside the ledger", "index", index)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *ChatService) JoinPeer(peerID string, sink contract.EventSink) {
	s.peers.RegisterPeer(peerID, sink)
}

func (s *ChatService) LeavePeer(peerID string) {
	s.peers.UnregisterPeer(peerID)
}
