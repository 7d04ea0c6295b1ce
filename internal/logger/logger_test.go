package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.DebugLevel)
	previous := log
	log = zap.New(core)
	t.Cleanup(func() {
		log = previous
	})
	return logs
}

func fieldCount(entry observer.LoggedEntry, key string) int {
	n := 0
	for _, f := range entry.Context {
		if f.Key == key {
			n++
		}
	}
	return n
}

func TestWithFields_NestedScopesKeepOneFieldPerKey(t *testing.T) {
	logs := observe(t)

	ctx := WithFields(context.Background(), zap.String("tx_hash", "TXA"), zap.String("family", "mrkt"))
	ctx = WithFields(ctx, zap.String("tx_hash", "TXA"), zap.String("mode", "scanner"))
	InfoCtx(ctx, "Replayed transaction", zap.Int("handled", 1))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, 1, fieldCount(entries[0], "tx_hash"))
	assert.Equal(t, "TXA", fields["tx_hash"])
	assert.Equal(t, "mrkt", fields["family"])
	assert.Equal(t, "scanner", fields["mode"])
	assert.Equal(t, int64(1), fields["handled"])
}

func TestWithFields_InnerValueWins(t *testing.T) {
	logs := observe(t)

	outer := WithFields(context.Background(), zap.String("family", "cw721"))
	inner := WithFields(outer, zap.String("family", "mrkt"))
	InfoCtx(inner, "inner")
	InfoCtx(outer, "outer")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, 1, fieldCount(entries[0], "family"))
	assert.Equal(t, "mrkt", entries[0].ContextMap()["family"])
	assert.Equal(t, "cw721", entries[1].ContextMap()["family"])
}
