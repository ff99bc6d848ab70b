package stream

import "regexp"

var (
	uidRe    = regexp.MustCompile(`UID: \S+`)
	threadRe = regexp.MustCompile(`\[Thread-\d+\]`)
)

// Markers decorate the two token kinds found in worker log lines. A nil
// func leaves that kind unchanged.
type Markers struct {
	UID    func(string) string
	Thread func(string) string
}

// Highlight wraps every "UID: <token>" and then every "[Thread-N]" in line
// with the matching marker. The passes run in that order, so a thread tag
// inside a UID token is wrapped twice. All other text is returned as is.
func Highlight(line string, m Markers) string {
	if m.UID != nil {
		line = uidRe.ReplaceAllStringFunc(line, m.UID)
	}
	if m.Thread != nil {
		line = threadRe.ReplaceAllStringFunc(line, m.Thread)
	}
	return line
}

// Brackets returns markers that wrap tokens in fixed open/close strings.
func Brackets(uidOpen, uidClose, threadOpen, threadClose string) Markers {
	return Markers{
		UID:    func(s string) string { return uidOpen + s + uidClose },
		Thread: func(s string) string { return threadOpen + s + threadClose },
	}
}
