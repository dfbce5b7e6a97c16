package kafka

// Message is an outgoing record. Topic is set by the producer.
type Message struct {
	Headers map[string][]byte
	Key     []byte
	Value   []byte
}
