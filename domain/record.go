package domain

// Block is a transaction at its 1-based chain index. Indices only grow but a
// store restored after lost writes may skip some.
type Block struct {
	Index       int
	Transaction Transaction
}

// Record projects the block for transports.
func (b Block) Record() TransactionRecord {
	return ToRecord(b.Index, b.Transaction)
}

// TransactionRecord is the projection of a Transaction handed to transports.
type TransactionRecord struct {
	Index        int          `json:"index"`
	Sender       string       `json:"sender"`
	Receiver     string       `json:"receiver"`
	Message      string       `json:"message"`
	Timestamp    string       `json:"timestamp"`
	Verification Verification `json:"verification"`
	Hash         string       `json:"hash,omitempty"`
	Signature    string       `json:"signature,omitempty"`
}

// ToRecord projects the transaction stored at the given 1-based chain index.
func ToRecord(index int, tx Transaction) TransactionRecord {
	return TransactionRecord{
		Index:        index,
		Sender:       tx.SenderID.NodeName(),
		Receiver:     tx.ReceiverID.NodeName(),
		Message:      tx.Message,
		Timestamp:    tx.Timestamp,
		Verification: tx.Verification,
		Hash:         tx.MessageHash,
		Signature:    tx.Signature,
	}
}

// ToMessage drops the hash and signature, keeping what chat clients display.
func (r TransactionRecord) ToMessage() TransactionRecord {
	r.Hash = ""
	r.Signature = ""
	return r
}

// Audit is the strict check of one transaction. KeyKnown is false when the
// block was signed with a secret the running process never held.
type Audit struct {
	Index        int          `json:"index"`
	Verification Verification `json:"verification"`
	KeyKnown     bool         `json:"key_known"`
	Authentic    bool         `json:"authentic"`
}

// SendMessageCommand is an inbound chat message before validation.
// An empty Sender means Node 1.
type SendMessageCommand struct {
	Sender  string `json:"sender" validate:"omitempty,oneof='Node 1' 'Node 2'"`
	Message string `json:"message"`
}

// Status summarises the session for the status route.
type Status struct {
	Status       string `json:"status"`
	SecretLength int    `json:"secret_length"`
	Transactions int    `json:"transactions"`
}
