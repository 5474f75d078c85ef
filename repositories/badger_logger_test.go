package repositories

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBadgerLogger(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	logger := NewBadgerLogger(slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelInfo})))

	logger.Infof("Replaying file id: %d\n", 3)
	logger.Warningf("value log %s", "truncated")
	logger.Debugf("hidden below info")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	req.Len(lines, 2)
	req.Contains(lines[0], "level=INFO")
	req.Contains(lines[0], `msg="Replaying file id: 3"`)
	req.Contains(lines[0], "component=badger")
	req.Contains(lines[1], "level=WARN")
}
