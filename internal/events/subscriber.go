package events

// Subscriber receives messages from the event bus.
type Subscriber interface {
	// Subscribe delivers messages whose subject matches topic, which may use
	// NATS wildcards. cancel unsubscribes and closes the channel.
	Subscribe(topic string) (msgs <-chan Message, cancel func(), err error)
	// Dropped is the number of messages discarded because a channel was full.
	Dropped() uint64
	Close() error
}
