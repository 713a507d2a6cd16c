package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from CommandStatus
		to   CommandStatus
		want bool
	}{
		{name: "pending to queued", from: StatusPending, to: StatusQueued, want: true},
		{name: "pending to cancelled", from: StatusPending, to: StatusCancelled, want: true},
		{name: "pending to failed on queue error", from: StatusPending, to: StatusFailed, want: true},
		{name: "pending to executing skips queue", from: StatusPending, to: StatusExecuting, want: false},
		{name: "queued self loop", from: StatusQueued, to: StatusQueued, want: true},
		{name: "queued to executing", from: StatusQueued, to: StatusExecuting, want: true},
		{name: "queued to cancelled", from: StatusQueued, to: StatusCancelled, want: true},
		{name: "queued to completed skips executing", from: StatusQueued, to: StatusCompleted, want: false},
		{name: "executing to completed", from: StatusExecuting, to: StatusCompleted, want: true},
		{name: "executing to failed", from: StatusExecuting, to: StatusFailed, want: true},
		{name: "executing to cancelled rejected", from: StatusExecuting, to: StatusCancelled, want: false},
		{name: "completed is terminal", from: StatusCompleted, to: StatusQueued, want: false},
		{name: "failed is terminal", from: StatusFailed, to: StatusExecuting, want: false},
		{name: "cancelled is terminal", from: StatusCancelled, to: StatusQueued, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestCommandStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusQueued.IsTerminal())
	assert.False(t, StatusExecuting.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestParseCommandStatus(t *testing.T) {
	status, ok := ParseCommandStatus("completed")
	assert.True(t, ok)
	assert.Equal(t, StatusCompleted, status)

	_, ok = ParseCommandStatus("processing")
	assert.False(t, ok)

	_, ok = ParseCommandStatus("")
	assert.False(t, ok)
}
