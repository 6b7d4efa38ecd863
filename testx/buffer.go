package testx

import (
	"bytes"
	"sync"
)

// ConcurrentBuffer is an io.Writer safe for use as a log sink shared between
// the code under test and the assertions reading it back.
type ConcurrentBuffer struct {
	mu sync.RWMutex
	b  bytes.Buffer
}

func NewConcurrentBuffer() *ConcurrentBuffer {
	return &ConcurrentBuffer{}
}

func (c *ConcurrentBuffer) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.b.Write(p)
}

// String returns the contents accumulated so far.
func (c *ConcurrentBuffer) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.b.String()
}

// Bytes returns a copy of the contents accumulated so far.
func (c *ConcurrentBuffer) Bytes() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]byte(nil), c.b.Bytes()...)
}
