package goSession

import (
	"io"

	internalaudit "github.com/Kade-Lor/goSession/internal/audit"
)

// AuditEvent is the public audit event model. Resolve rejections carry the
// precise internal cause in Cause even though the error returned to the
// caller is the uniform [ErrSessionInvalid].
type AuditEvent = internalaudit.Event

// AuditSink receives audit events from the engine's async dispatcher.
// Implementations must be safe for concurrent use.
type AuditSink = internalaudit.Sink

// NoOpSink discards audit events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink buffers audit events on a channel for test and pipeline use.
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink writes audit events as JSON lines.
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink describes the newchannelsink operation and its observable behavior.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink describes the newjsonwritersink operation and its observable behavior.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
