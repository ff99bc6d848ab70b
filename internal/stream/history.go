package stream

import (
	"strings"
	"sync"
)

// History keeps the most recent lines of the live log. It is written by the
// stream goroutine and read by the UI.
type History struct {
	mu           sync.RWMutex
	lines        []string
	capacity     int
	head         int
	count        int
	totalWritten int
}

const DefaultHistoryLines = 5000

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryLines
	}
	return &History{
		lines:    make([]string, capacity),
		capacity: capacity,
	}
}

func (h *History) Append(line string) {
	h.mu.Lock()
	h.lines[h.head] = line
	h.head = (h.head + 1) % h.capacity
	if h.count < h.capacity {
		h.count++
	}
	h.totalWritten++
	h.mu.Unlock()
}

// AppendMessage appends each line of a stream message. A message whose data
// spanned several lines becomes several history lines.
func (h *History) AppendMessage(msg string) {
	for _, line := range strings.Split(msg, "\n") {
		h.Append(line)
	}
}

// Lines returns the retained lines, oldest first.
func (h *History) Lines() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.count == 0 {
		return nil
	}

	result := make([]string, h.count)
	if h.count < h.capacity {
		copy(result, h.lines[:h.count])
	} else {
		n := copy(result, h.lines[h.head:])
		copy(result[n:], h.lines[:h.head])
	}
	return result
}

// Tail returns at most the n newest lines, oldest first.
func (h *History) Tail(n int) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if n <= 0 || h.count == 0 {
		return nil
	}
	if n > h.count {
		n = h.count
	}

	result := make([]string, n)
	start := (h.head - n + h.capacity) % h.capacity
	if start+n <= h.capacity {
		copy(result, h.lines[start:start+n])
	} else {
		first := h.capacity - start
		copy(result, h.lines[start:])
		copy(result[first:], h.lines[:n-first])
	}
	return result
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

func (h *History) Cap() int { return h.capacity }

// TotalWritten counts every line ever appended, including dropped ones. The
// UI compares it between renders to tell whether anything arrived.
func (h *History) TotalWritten() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalWritten
}

func (h *History) Reset() {
	h.mu.Lock()
	h.head = 0
	h.count = 0
	h.totalWritten = 0
	h.mu.Unlock()
}
