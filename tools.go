//go:build tools
// +build tools

// Package tools pins the generators invoked by `go generate`, so the mocks
// under mocks/ can be regenerated from a fresh checkout.
package qkd_ledger

import (
	_ "go.uber.org/mock/mockgen"
)
