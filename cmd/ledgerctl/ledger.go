package main

import (
	"fmt"
	"io"
	"log/slog"
	"qkd-ledger/domain"
	"qkd-ledger/ledger"
	"qkd-ledger/repositories"
	"qkd-ledger/sink"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

const (
	secretKey = "secret"
	formatKey = "format"
)

func dumpCommand(config *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print every stored block",
		RunE: func(c *cobra.Command, _ []string) error {
			chain, err := loadChain(config.BadgerFilepath)
			if err != nil {
				return err
			}
			return dump(c.OutOrStdout(), chain)
		},
	}
}

func verifyCommand(config *Config) *cobra.Command {
	c := &cobra.Command{
		Use:   "verify",
		Short: "Re-derive every stored signature with the given secret",
		RunE: func(c *cobra.Command, _ []string) error {
			secret, err := c.Flags().GetString(secretKey)
			if err != nil {
				return err
			}
			chain, err := loadChain(config.BadgerFilepath)
			if err != nil {
				return err
			}
			failed := verify(c.OutOrStdout(), chain, domain.SharedSecret(secret), config.Colours)
			if failed > 0 {
				return fmt.Errorf("%d of %d blocks do not match the secret", failed, len(chain))
			}
			return nil
		},
	}
	c.Flags().String(secretKey, "", "Shared secret the blocks were signed with")
	return c
}

func exportCommand(config *Config) *cobra.Command {
	c := &cobra.Command{
		Use:   "export",
		Short: "Print the stored chain as a text log or a Graphviz graph",
		RunE: func(c *cobra.Command, _ []string) error {
			format, err := c.Flags().GetString(formatKey)
			if err != nil {
				return err
			}
			chain, err := loadChain(config.BadgerFilepath)
			if err != nil {
				return err
			}
			return export(c.OutOrStdout(), chain, format)
		},
	}
	c.Flags().String(formatKey, "log", "Output format, log or dot")
	return c
}

// loadChain opens the store read-only so a running server keeps its lock.
func loadChain(path string) ([]domain.Block, error) {
	db, err := badger.Open(badger.DefaultOptions(path).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer db.Close()
	return repositories.NewTransactionRepository(db, slog.New(slog.DiscardHandler)).LoadAll()
}

func dump(w io.Writer, chain []domain.Block) error {
	table := newTable(w, "Block", "Timestamp", "Sender", "Receiver", "Verification", "Message")
	for _, block := range chain {
		tx := block.Transaction
		table.Append([]string{
			strconv.Itoa(block.Index),
			tx.Timestamp,
			tx.SenderID.NodeName(),
			tx.ReceiverID.NodeName(),
			string(tx.Verification),
			tx.Message,
		})
	}
	table.Render()
	_, err := fmt.Fprintf(w, "%d blocks\n", len(chain))
	return err
}

// verify prints one verdict per block and returns how many failed.
func verify(w io.Writer, chain []domain.Block, secret domain.SharedSecret, colours bool) int {
	table := newTable(w, "Block", "Flag", "Signature")
	failed := 0
	for _, block := range chain {
		tx := block.Transaction
		verdict := "MATCH"
		if !ledger.VerifySignature(tx, secret) {
			verdict = "MISMATCH"
			failed++
		}
		if colours {
			if verdict == "MATCH" {
				verdict = color.Green.Render(verdict)
			} else {
				verdict = color.Red.Render(verdict)
			}
		}
		table.Append([]string{strconv.Itoa(block.Index), string(tx.Verification), verdict})
	}
	table.Render()
	return failed
}

func export(w io.Writer, chain []domain.Block, format string) error {
	var out string
	switch format {
	case "log":
		out = sink.FormatLog(chain)
	case "dot":
		out = sink.RenderGraph(chain)
	default:
		return fmt.Errorf("unknown --%s %q, expected log or dot", formatKey, format)
	}
	_, err := io.WriteString(w, out)
	return err
}
