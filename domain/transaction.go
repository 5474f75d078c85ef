package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the seconds precision local date-time used on every block.
const TimestampLayout = "2006-01-02 15:04:05"

type NodeID int

const (
	FirstNode  NodeID = 1
	SecondNode NodeID = 2
)

const nodeNamePrefix = "Node "

func (n NodeID) NodeName() string {
	return fmt.Sprintf("%s%d", nodeNamePrefix, n)
}

// Peer returns the other end of the two-node channel.
func (n NodeID) Peer() NodeID {
	if n == FirstNode {
		return SecondNode
	}
	return FirstNode
}

// ParseNodeName turns "Node 1" or "Node 2" into a NodeID.
func ParseNodeName(name string) (NodeID, bool) {
	raw, found := strings.CutPrefix(strings.TrimSpace(name), nodeNamePrefix)
	if !found {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	switch NodeID(id) {
	case FirstNode, SecondNode:
		return NodeID(id), true
	default:
		return 0, false
	}
}

type Verification string

const (
	Verified Verification = "Verified"
	Invalid  Verification = "Invalid"
)

// Transaction is one signed, timestamped message.
// All derived fields are computed once at construction and never change.
type Transaction struct {
	ID           uuid.UUID
	SenderID     NodeID
	ReceiverID   NodeID
	Message      string
	MessageHash  string
	Signature    string
	Verification Verification
	Timestamp    string
	CreatedAt    time.Time
}
