package ws

import "sync"

// Writer is the write side of a websocket connection.
type Writer interface {
	WriteJSON(v any) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// SyncWriter serializes writes to a connection that is written both by its own read loop and by
// game broadcasts.
type SyncWriter struct {
	mu sync.Mutex
	w  Writer
}

func NewSyncWriter(w Writer) *SyncWriter {
	return &SyncWriter{w: w}
}

func (s *SyncWriter) WriteJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.WriteJSON(v)
}

func (s *SyncWriter) WriteMessage(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.WriteMessage(messageType, data)
}

func (s *SyncWriter) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Close()
}
