package testutil

import "sync"

// MemoryClipboard records clipboard writes
type MemoryClipboard struct {
	mu     sync.Mutex
	writes []string
	Err    error
}

func NewMemoryClipboard() *MemoryClipboard {
	return &MemoryClipboard{}
}

// WriteAll implements clipboard.Writer
func (c *MemoryClipboard) WriteAll(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.writes = append(c.writes, text)
	return nil
}

// Writes returns all successful writes
func (c *MemoryClipboard) Writes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.writes...)
}

// Contents returns the last written text
func (c *MemoryClipboard) Contents() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.writes) == 0 {
		return ""
	}
	return c.writes[len(c.writes)-1]
}
