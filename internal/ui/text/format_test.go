package text

import (
	"testing"
	"time"
)

func TestRelativeTime(t *testing.T) {
	old := time.Now().Add(-48 * time.Hour)
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"seconds", time.Now().Add(-30 * time.Second), "<1m ago"},
		{"future", time.Now().Add(time.Minute), "<1m ago"},
		{"minutes", time.Now().Add(-5 * time.Minute), "5m ago"},
		{"hours", time.Now().Add(-3 * time.Hour), "3h ago"},
		{"old", old, old.Format("Jan 02 15:04")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelativeTime(tt.in); got != tt.want {
				t.Errorf("RelativeTime: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlural(t *testing.T) {
	if got := Plural(1, "session"); got != "1 session" {
		t.Errorf("got %q", got)
	}
	if got := Plural(0, "session"); got != "0 sessions" {
		t.Errorf("got %q", got)
	}
	if got := Plural(12, "line"); got != "12 lines" {
		t.Errorf("got %q", got)
	}
}

func TestCheckbox(t *testing.T) {
	if Checkbox(true) != "[x]" || Checkbox(false) != "[ ]" {
		t.Error("unexpected checkbox rendering")
	}
}

func TestPlain(t *testing.T) {
	in := "\x1b[31mred\x1b[0m\tcol\r\n<b>raw</b>"
	want := "red    col\n<b>raw</b>"
	if got := Plain(in); got != want {
		t.Errorf("Plain: got %q, want %q", got, want)
	}
}
