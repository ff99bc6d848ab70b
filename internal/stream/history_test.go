package stream

import (
	"fmt"
	"sync"
	"testing"
)

func TestHistoryAppend(t *testing.T) {
	h := NewHistory(10)

	h.Append("line 1")
	h.Append("line 2")
	h.Append("line 3")

	lines := h.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, want := range []string{"line 1", "line 2", "line 3"} {
		if lines[i] != want {
			t.Errorf("line %d: expected %q, got %q", i, want, lines[i])
		}
	}
}

func TestHistoryDropsOldest(t *testing.T) {
	h := NewHistory(3)
	for _, l := range []string{"a", "b", "c", "d", "e"} {
		h.Append(l)
	}

	lines := h.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (capacity), got %d", len(lines))
	}
	if lines[0] != "c" || lines[1] != "d" || lines[2] != "e" {
		t.Errorf("expected [c d e], got %v", lines)
	}
	if h.TotalWritten() != 5 {
		t.Errorf("expected 5 total written, got %d", h.TotalWritten())
	}
}

func TestHistoryTail(t *testing.T) {
	h := NewHistory(4)
	for i := 0; i < 6; i++ {
		h.Append(fmt.Sprintf("line %d", i))
	}

	tail := h.Tail(3)
	if len(tail) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(tail))
	}
	if tail[0] != "line 3" || tail[2] != "line 5" {
		t.Errorf("unexpected tail %v", tail)
	}
	if got := h.Tail(100); len(got) != 4 {
		t.Errorf("expected tail capped at 4, got %d", len(got))
	}
	if got := h.Tail(0); got != nil {
		t.Errorf("expected nil for Tail(0), got %v", got)
	}
}

func TestHistoryDefaultCapacity(t *testing.T) {
	if got := NewHistory(0).Cap(); got != DefaultHistoryLines {
		t.Errorf("expected default capacity %d, got %d", DefaultHistoryLines, got)
	}
}

func TestHistoryReset(t *testing.T) {
	h := NewHistory(5)
	h.Append("x")
	h.Reset()
	if h.Len() != 0 || h.Lines() != nil {
		t.Error("expected empty history after reset")
	}
}

func TestHistoryConcurrentAccess(t *testing.T) {
	h := NewHistory(100)
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				h.Append(fmt.Sprintf("%d-%d", n, j))
			}
		}(i)
	}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = h.Tail(10)
				_ = h.Len()
			}
		}()
	}
	wg.Wait()

	if h.Len() != 100 {
		t.Errorf("expected full buffer, got %d", h.Len())
	}
	if h.TotalWritten() != 800 {
		t.Errorf("expected 800 written, got %d", h.TotalWritten())
	}
}

func TestHistoryAppendMessageSplitsLines(t *testing.T) {
	h := NewHistory(10)
	h.AppendMessage("first\nsecond")
	h.AppendMessage("third")

	lines := h.Lines()
	if len(lines) != 3 || lines[0] != "first" || lines[1] != "second" || lines[2] != "third" {
		t.Errorf("unexpected lines %q", lines)
	}
}
