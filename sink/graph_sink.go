package sink

import (
	"context"
	"fmt"
	"log/slog"
	"qkd-ledger/domain"
	"qkd-ledger/domain/event"

	"github.com/emicklei/dot"
	"github.com/google/renameio/v2"
)

// RenderGraph draws the chain as a Graphviz digraph, one node per block and
// an edge from each block to the next one held. Rasterising it is left to graphviz.
func RenderGraph(chain []domain.Block) string {
	g := dot.NewGraph(dot.Directed)
	g.Attr("label", "Blockchain Transaction Flow")
	g.Attr("rankdir", "LR")

	var previous *dot.Node
	for _, block := range chain {
		tx := block.Transaction
		node := g.Node(fmt.Sprintf("block%d", block.Index)).
			Label(fmt.Sprintf("Block %d\n%s\n%d->%d", block.Index, tx.Timestamp, tx.SenderID, tx.ReceiverID)).
			Attr("shape", "box").
			Attr("style", "filled").
			Attr("fillcolor", "#bae6fd")
		if previous != nil {
			g.Edge(*previous, node)
		}
		previous = &node
	}
	return g.String()
}

// GraphSink rewrites the DOT file of the chain after each append.
type GraphSink struct {
	path string
	log  *slog.Logger
}

func NewGraphSink(path string, log *slog.Logger) GraphSink {
	return GraphSink{path: path, log: log}
}

func (s GraphSink) Name() string { return "graph" }

func (s GraphSink) Consume(_ context.Context, e event.DomainEvent) error {
	evt, ok := e.(event.TransactionAppended)
	if !ok || len(evt.Chain) == 0 {
		return nil
	}
	if err := renameio.WriteFile(s.path, []byte(RenderGraph(evt.Chain)), 0o644); err != nil {
		return fmt.Errorf("write graph to %s: %w", s.path, err)
	}
	s.log.Debug("Blockchain visualization updated", "path", s.path)
	return nil
}
