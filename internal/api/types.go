package api

import "fmt"

// StatusSuccess is the only status value the backend uses to signal success.
const StatusSuccess = "success"

// Session lifecycle values reported by /status.
const (
	SessionQueued   = "Queued"
	SessionRunning  = "Running"
	SessionFinished = "Finished"
	SessionError    = "Error"
)

// Result is the {status, message} envelope every POST action returns.
type Result struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// OK reports whether the backend accepted the action.
func (r Result) OK() bool { return r.Status == StatusSuccess }

// RunRequest is the body of /run and /force_run.
type RunRequest struct {
	UIDs    []string `json:"uids"`
	Coupons []string `json:"coupons"`
}

// Session is one backend automation session as reported by /status.
type Session struct {
	Status      string
	DisplayName string
	LogPreview  string
	SessionID   string
}

// SessionEntry pairs a session with its key. Entries keep the order the
// backend sent them in.
type SessionEntry struct {
	Key string
	Session
}

// LogListing is the response of /api/logs.
type LogListing struct {
	Logs       []string `json:"logs"`
	CouponLogs []string `json:"coupon_logs"`
}

// LogContent is the response of /api/log-content.
type LogContent struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// StatusError is returned when a GET endpoint answers with a non-2xx code.
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned %d", e.Endpoint, e.Code)
	}
	return fmt.Sprintf("%s returned %d: %s", e.Endpoint, e.Code, e.Body)
}
