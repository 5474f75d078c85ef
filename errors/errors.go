package errors

import "fmt"

var (
	ErrWorkerPanic         = fmt.Errorf("worker panic")
	ErrTransactionNotFound = fmt.Errorf("transaction not found")
	ErrInvalidSender       = fmt.Errorf("sender must be Node 1 or Node 2")
	ErrInvalidMessage      = fmt.Errorf("invalid message")
	ErrInvalidBits         = fmt.Errorf("bit count out of range")
	ErrEmptyQuery          = fmt.Errorf("search query is empty")
)
