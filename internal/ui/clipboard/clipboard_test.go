package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func stubNative(t *testing.T, err error) *[]string {
	t.Helper()
	var got []string
	prevNative, prevOut, prevTmux := nativeWrite, osc52Out, inTmux
	nativeWrite = func(s string) error {
		got = append(got, s)
		return err
	}
	t.Cleanup(func() { nativeWrite, osc52Out, inTmux = prevNative, prevOut, prevTmux })
	return &got
}

func TestWriteUsesNativeClipboard(t *testing.T) {
	calls := stubNative(t, nil)
	var buf bytes.Buffer
	osc52Out = &buf

	if err := Write("http://hub:4444/ui/#/session/abc"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if len(*calls) != 1 || (*calls)[0] != "http://hub:4444/ui/#/session/abc" {
		t.Errorf("unexpected native calls %q", *calls)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no OSC52 output, got %q", buf.String())
	}
}

func TestWriteFallsBackToOSC52(t *testing.T) {
	stubNative(t, errors.New("no clipboard utility"))
	var buf bytes.Buffer
	osc52Out = &buf
	inTmux = func() bool { return false }

	if err := Write("link"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	want := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte("link")) + "\x07"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestOSC52Encoding(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"simple", "hello"},
		{"session link", "/ui/#/session/4f1c"},
		{"multiline", "line1\nline2"},
		{"unicode", "こんにちは"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeOSC52(&buf, tt.input, false); err != nil {
				t.Fatalf("writeOSC52: %v", err)
			}
			want := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(tt.input)) + "\x07"
			if buf.String() != want {
				t.Errorf("got %q, want %q", buf.String(), want)
			}
		})
	}
}

func TestOSC52Tmux(t *testing.T) {
	got := osc52("x", true)
	if !strings.HasPrefix(got, "\x1bPtmux;\x1b\x1b]52;c;") {
		t.Errorf("expected tmux passthrough prefix, got %q", got)
	}
	if !strings.HasSuffix(got, "\x07\x1b\\") {
		t.Errorf("expected DCS terminator, got %q", got)
	}
}
