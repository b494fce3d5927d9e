// Package events fans session output out to listeners.
//
// A Hub maps topics to subscribers. Each subscriber owns a bounded channel;
// Emit never blocks, so a slow listener loses chunks instead of stalling the
// relay that produced them. Dropped chunks are counted in metrics.
//
// Example Usage:
//
//	hub := events.NewHub(256, logger)
//	sub := hub.Subscribe(terminal.Topic(id))
//	defer sub.Close()
//	for ev := range sub.Events() {
//		fmt.Print(ev.Payload)
//	}
package events
