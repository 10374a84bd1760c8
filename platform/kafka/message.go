package kafka

import "time"

// Message is a consumed record detached from the client library.
type Message struct {
	Key   []byte
	Value []byte

	Topic     string
	Partition int32
	Offset    int64

	Headers        map[string][]byte
	Timestamp      time.Time
	BlockTimestamp time.Time
}

// Header returns the named header as a string, or "" when absent.
func (m Message) Header(key string) string {
	return string(m.Headers[key])
}
