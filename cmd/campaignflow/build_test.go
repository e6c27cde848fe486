package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastChart(out string) string {
	i := strings.LastIndex(out, "graph TD\n")
	if i < 0 {
		return ""
	}
	return out[i:]
}

func TestRunSession(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"a", "2", // Send Message
		"w", "3", "09:30",
		"p",
		"d 2", "y",
		"q",
	}, "\n") + "\n")
	var out bytes.Buffer

	require.NoError(t, runSession(context.Background(), in, &out))

	assert.Contains(t, out.String(), `n2["Send Message"]`)
	assert.Contains(t, out.String(), `n4{{"3 Days at 09:30"}}`)

	last := lastChart(out.String())
	assert.NotContains(t, last, `n2[`)
	assert.Contains(t, last, `n4{{"3 Days at 09:30"}}`)
	assert.NotContains(t, last, "e1-2")
	assert.NotContains(t, last, "e2-3")
}

func TestRunSession_Errors(t *testing.T) {
	in := strings.NewReader("d 1\nc 1\nc 2 1\nx e9-9\nbogus\n")
	var out bytes.Buffer

	require.NoError(t, runSession(context.Background(), in, &out), "end of input ends the session")

	assert.Contains(t, out.String(), "protected node")
	assert.Contains(t, out.String(), "c expects 2 node id(s)")
	assert.Contains(t, out.String(), "unknown node")
	assert.Contains(t, out.String(), "unknown edge")
	assert.Equal(t, 2, strings.Count(out.String(), "commands:"), "unknown commands print the help")
}

func TestRunSession_CancelAndClose(t *testing.T) {
	in := strings.NewReader("a\nq\ne\na\n")
	var out bytes.Buffer

	require.NoError(t, runSession(context.Background(), in, &out))

	assert.Contains(t, out.String(), "cancelled")
	assert.Contains(t, out.String(), `n2((("End")))`)
	assert.Contains(t, out.String(), "flow is closed")
}
