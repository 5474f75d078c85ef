package main

import (
	"fmt"
	"qkd-ledger/repositories"

	"github.com/mama165/sdk-go/database"
)

// TransactionMapper renders stored blocks in the Badger debug inspector.
func TransactionMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)

	tx, err := repositories.Decode(val)
	if err != nil {
		row.Detail = "Error: unmarshal failed"
		return row
	}

	row.Type = "BLOCK"
	row.Detail = fmt.Sprintf("%s -> %s [%s] %s", tx.SenderID.NodeName(), tx.ReceiverID.NodeName(),
		tx.Verification, tx.Message)
	return row
}
