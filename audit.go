package goLedger

import (
	"io"

	internalaudit "github.com/MrEthical07/goLedger/internal/audit"
)

// AuditEvent is re-exported for callers that only import goLedger.
type AuditEvent = internalaudit.Event

// AuditSink is re-exported for callers that only import goLedger.
type AuditSink = internalaudit.Sink

// NoOpSink is re-exported for callers that only import goLedger.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is re-exported for callers that only import goLedger.
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is re-exported for callers that only import goLedger.
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink describes the new channel sink operation and its observable behavior.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink describes the new JSON writer sink operation and its observable behavior.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
