package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs_HashesUserIDs(t *testing.T) {
	out := sanitizeKVs([]any{"user_id", "u-123", "skill_id", "math-add-1"})
	require.Len(t, out, 4)
	assert.True(t, strings.HasPrefix(out[1].(string), "hash:"))
	assert.Len(t, out[1].(string), len("hash:")+12)
	assert.Equal(t, "math-add-1", out[3])
}

func TestSanitizeKVs_OddLength(t *testing.T) {
	out := sanitizeKVs([]any{"qualifier_id", "q1", "dangling"})
	assert.Equal(t, []any{"qualifier_id", "q1", "dangling"}, out)
}

func TestHashValue_Stable(t *testing.T) {
	assert.Equal(t, hashValue("abc"), hashValue("abc"))
	assert.NotEqual(t, hashValue("abc"), hashValue("abd"))
	assert.Equal(t, "", hashValue(""))
}

func TestWith_CarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("component", "tournament").Warn("rejected", "final_user_id", "u1")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "tournament", fields["component"])
	assert.True(t, strings.HasPrefix(fields["final_user_id"].(string), "hash:"))
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("ignored", "k", "v")
	l.Sync()
}
