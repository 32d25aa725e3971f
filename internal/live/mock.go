package live

import "sync"

// Mock records published messages instead of writing to sockets.
type Mock struct {
	mu       sync.Mutex
	Messages []Message
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Publish(category, msgType string, payload any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, Message{Type: msgType, Category: category, Payload: payload})
}

// Published returns the recorded messages of the given type.
func (m *Mock) Published(msgType string) []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Message
	for _, msg := range m.Messages {
		if msg.Type == msgType {
			out = append(out, msg)
		}
	}
	return out
}
