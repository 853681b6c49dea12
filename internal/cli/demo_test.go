package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoRecords(t *testing.T) {
	records := demoRecords()
	require.Len(t, records, demoRecordCount+3)

	first, ok := records[0].(string)
	require.True(t, ok)
	assert.Greater(t, len(first), demoRecordBytes)
	assert.True(t, strings.HasSuffix(first, "-0"))

	oversized, ok := records[demoRecordCount].(string)
	require.True(t, ok)
	assert.Len(t, oversized, demoOversizedBytes)

	assert.Equal(t, "", records[demoRecordCount+1])

	emoji, ok := records[demoRecordCount+2].(string)
	require.True(t, ok)
	// 4 encoded bytes per emoji rune.
	assert.Len(t, emoji, demoEmojiCount*4)
}

func TestDemoCommand(t *testing.T) {
	stdout, _, err := runCommand(t, "demo")
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "Batch Processing Demo")
	assert.Contains(t, out, "Created 753 test records")
	assert.Contains(t, out, "BATCH RESULTS")
	// 750 medium records + empty + emoji batched, one oversized discarded.
	assert.Contains(t, out, "Records discarded: 1")
	assert.Contains(t, out, "Records processed: 753")
}
