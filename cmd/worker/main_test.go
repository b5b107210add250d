package main

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWorker(args ...string) (schedule string, called bool, out string, err error) {
	root := newRootCmd(func(_ context.Context, w io.Writer, s string) error {
		called = true
		schedule = s
		_, _ = io.WriteString(w, "1-a.png\n")
		return nil
	})
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return schedule, called, buf.String(), err
}

func TestAuditOnce(t *testing.T) {
	schedule, called, out, err := runWorker("audit")
	require.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, schedule)
	assert.Equal(t, "1-a.png\n", out)
}

func TestAuditSchedule(t *testing.T) {
	schedule, called, _, err := runWorker("audit", "--schedule", "0 0 3 * * *")
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "0 0 3 * * *", schedule)
}

func TestUnknownCommand(t *testing.T) {
	_, called, _, err := runWorker("analyze")
	assert.Error(t, err)
	assert.False(t, called)
}

func TestAuditRejectsArgs(t *testing.T) {
	_, called, _, err := runWorker("audit", "extra")
	assert.Error(t, err)
	assert.False(t, called)
}
