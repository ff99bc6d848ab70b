// Package clipboard copies text for the operator, typically a Selenium
// session link.
package clipboard

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

var (
	nativeWrite           = clipboard.WriteAll
	osc52Out    io.Writer = os.Stderr
	inTmux                = func() bool { return os.Getenv("TMUX") != "" }
)

// Write copies text with the native clipboard tool (pbcopy, xclip,
// wl-copy, ...) and falls back to an OSC 52 escape for SSH sessions.
func Write(text string) error {
	if err := nativeWrite(text); err == nil {
		return nil
	}
	return writeOSC52(osc52Out, text, inTmux())
}

func osc52(text string, tmux bool) string {
	seq := fmt.Sprintf("\x1b]52;c;%s\x07", base64.StdEncoding.EncodeToString([]byte(text)))
	if tmux {
		// tmux passthrough: wrap in DCS and double every ESC inside.
		return "\x1bPtmux;" + strings.ReplaceAll(seq, "\x1b", "\x1b\x1b") + "\x1b\\"
	}
	return seq
}

func writeOSC52(w io.Writer, text string, tmux bool) error {
	_, err := io.WriteString(w, osc52(text, tmux))
	return err
}
