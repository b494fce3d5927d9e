//go:build !windows

package terminal

// TopicPrefix prefixes every session output topic.
const TopicPrefix = "terminal-data-"

// Topic returns the event topic carrying output for sessionID.
func Topic(sessionID string) string {
	return TopicPrefix + sessionID
}

// Sink receives decoded output chunks. Emit is called from relay goroutines
// and must not block for long.
type Sink interface {
	Emit(topic, payload string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(topic, payload string)

// Emit calls f(topic, payload).
func (f SinkFunc) Emit(topic, payload string) {
	f(topic, payload)
}
