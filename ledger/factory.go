// Package ledger hashes, signs and records chat messages.
// Signing here is a keyed hash over the shared secret: it binds a message to the
// secret in effect when it was created, it is not a public key signature.
package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"qkd-ledger/domain"
	"time"

	"github.com/google/uuid"
)

// Hash returns the hex SHA-256 digest of message.
func Hash(message string) string {
	sum := sha256.Sum256([]byte(message))
	return hex.EncodeToString(sum[:])
}

// Sign returns the hex SHA-256 digest of messageHash followed by the secret.
func Sign(messageHash string, secret domain.SharedSecret) string {
	return Hash(messageHash + secret.String())
}

// verify is the check attached at creation. It only detects a signature that
// was never produced; tampering is caught by VerifySignature.
func verify(signature string) domain.Verification {
	if signature == "" {
		return domain.Invalid
	}
	return domain.Verified
}

// VerifySignature re-derives the hash and signature of tx under secret.
func VerifySignature(tx domain.Transaction, secret domain.SharedSecret) bool {
	messageHash := Hash(tx.Message)
	return messageHash == tx.MessageHash && Sign(messageHash, secret) == tx.Signature
}

type Clock func() time.Time

type Factory struct {
	now Clock
}

func NewFactory(now Clock) *Factory {
	if now == nil {
		now = time.Now
	}
	return &Factory{now: now}
}

// Create builds a transaction bound to secret. Any message, the empty one
// included, is valid.
func (f *Factory) Create(sender, receiver domain.NodeID, message string, secret domain.SharedSecret) domain.Transaction {
	createdAt := f.now()
	messageHash := Hash(message)
	signature := Sign(messageHash, secret)
	return domain.Transaction{
		ID:           uuid.New(),
		SenderID:     sender,
		ReceiverID:   receiver,
		Message:      message,
		MessageHash:  messageHash,
		Signature:    signature,
		Verification: verify(signature),
		Timestamp:    createdAt.Local().Format(domain.TimestampLayout),
		CreatedAt:    createdAt,
	}
}
