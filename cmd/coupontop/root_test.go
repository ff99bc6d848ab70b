package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justinpbarnett/coupontop/internal/api"
	"github.com/justinpbarnett/coupontop/internal/catalog"
	"github.com/justinpbarnett/coupontop/internal/stream"
)

const (
	testUIDs    = "111 #main\n222 #alt\n"
	testCoupons = "SPRING24\nSUMMER24\n"
)

// syncBuffer is written from the stream goroutine while tests read it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type request struct {
	Path string
	Body map[string]any
}

// backend records every POST and answers GETs from canned bodies.
type backend struct {
	t      *testing.T
	mu     sync.Mutex
	posts  []request
	result api.Result
	get    map[string]string
	srv    *httptest.Server
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{
		t:      t,
		result: api.Result{Status: api.StatusSuccess, Message: "ok"},
		get:    make(map[string]string),
	}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var body map[string]any
		assert.NoError(b.t, json.NewDecoder(r.Body).Decode(&body))
		b.mu.Lock()
		b.posts = append(b.posts, request{Path: r.URL.Path, Body: body})
		res := b.result
		b.mu.Unlock()
		if !res.OK() {
			w.WriteHeader(http.StatusBadRequest)
		}
		_ = json.NewEncoder(w).Encode(res)
		return
	}
	body, ok := b.get[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	_, _ = io.WriteString(w, body)
}

func (b *backend) requests() []request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]request(nil), b.posts...)
}

type testState struct {
	*globalState
	stdout *syncBuffer
	stderr *syncBuffer
	server string
}

func newTestState(t *testing.T, b *backend, stdin string) *testState {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "coupontop.yaml")
	doc := "hub:\n  url: http://hub:4444\nstream:\n  reconnect_delay: 50ms\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(doc), 0o644))

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "data/uids.txt", []byte(testUIDs), 0o644))
	require.NoError(t, afero.WriteFile(fs, "data/coupons.txt", []byte(testCoupons), 0o644))

	ts := &testState{stdout: &syncBuffer{}, stderr: &syncBuffer{}, server: b.srv.URL}
	ts.globalState = &globalState{
		ctx:    context.Background(),
		fs:     fs,
		stdin:  strings.NewReader(stdin),
		stdout: ts.stdout,
		stderr: ts.stderr,
	}
	ts.flags.configPath = cfgPath
	return ts
}

// run executes args against the test backend and returns the exit code.
func (ts *testState) run(args ...string) int {
	return ts.execute(append([]string{"--server", ts.server, "--config", ts.flags.configPath}, args...))
}

func (ts *testState) localFile(t *testing.T, path string) string {
	t.Helper()
	data, err := afero.ReadFile(ts.fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestRunSendsResolvedUIDs(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.result.Message = "Process started for 1 UIDs."
	ts := newTestState(t, b, "")

	require.Equal(t, 0, ts.run("run", "--uid", "111", "--uid", "222_alt", "--coupon", "SPRING24"), ts.stderr.String())

	reqs := b.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, api.PathRun, reqs[0].Path)
	assert.Equal(t, []any{"111_main", "222_alt"}, reqs[0].Body["uids"])
	assert.Equal(t, []any{"SPRING24"}, reqs[0].Body["coupons"])
	assert.Contains(t, ts.stdout.String(), "Process started for 1 UIDs.")
}

func TestForceRunAllUIDsWarnsWithoutCoupons(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	ts := newTestState(t, b, "")

	require.Equal(t, 0, ts.run("force-run", "--all-uids"), ts.stderr.String())

	reqs := b.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, api.PathForceRun, reqs[0].Path)
	assert.Equal(t, []any{"111_main", "222_alt"}, reqs[0].Body["uids"])
	assert.Equal(t, []any{}, reqs[0].Body["coupons"])
	assert.Contains(t, ts.stdout.String(), "Force run started without coupons.")
}

func TestRunValidationSendsNothing(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	ts := newTestState(t, b, "")

	assert.Equal(t, 1, ts.run("run", "--uid", "111"))
	assert.Empty(t, b.requests())
	assert.Contains(t, ts.stderr.String(), "Please select at least one Coupon")
}

func TestRunConflictingFlags(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	ts := newTestState(t, b, "")

	assert.Equal(t, 1, ts.run("run", "--uid", "111", "--all-uids", "--all-coupons"))
	assert.Empty(t, b.requests())
}

func TestRunRejectedExitsNonZero(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.result = api.Result{Status: "error", Message: "A process is already running."}
	ts := newTestState(t, b, "")

	assert.Equal(t, 1, ts.run("run", "--all-uids", "--all-coupons"))
	assert.Contains(t, ts.stderr.String(), "A process is already running.")
}

func TestSaveFromStdinMirrorsLocalCopy(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.result.Message = "UIDs saved."
	content := "333 #new\n"
	ts := newTestState(t, b, content)

	require.Equal(t, 0, ts.run("save", "uids", "-"), ts.stderr.String())

	reqs := b.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, api.PathSaveUIDs, reqs[0].Path)
	assert.Equal(t, content, reqs[0].Body["content"])
	assert.Equal(t, content, ts.localFile(t, "data/uids.txt"))
	assert.Contains(t, ts.stdout.String(), "UIDs saved.")
}

func TestSaveFromFile(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	ts := newTestState(t, b, "")
	require.NoError(t, afero.WriteFile(ts.fs, "new-coupons.txt", []byte("AUTUMN24\n"), 0o644))

	require.Equal(t, 0, ts.run("save", "coupon", "new-coupons.txt"), ts.stderr.String())

	reqs := b.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, api.PathSaveCoupons, reqs[0].Path)
	assert.Equal(t, "AUTUMN24\n", ts.localFile(t, "data/coupons.txt"))
}

func TestSaveUnknownList(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	ts := newTestState(t, b, "")

	assert.Equal(t, 1, ts.run("save", "accounts", "-"))
	assert.Empty(t, b.requests())
}

func TestDeleteAsksFirst(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		answer string
		sent   bool
	}{
		{"declined", "n\n", false},
		{"no input", "", false},
		{"accepted", "y\n", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := newBackend(t)
			ts := newTestState(t, b, tt.answer)

			require.Equal(t, 0, ts.run("delete", "uid", "111"), ts.stderr.String())
			assert.Contains(t, ts.stdout.String(), `Are you sure you want to delete the UID "111"?`)

			reqs := b.requests()
			if !tt.sent {
				assert.Empty(t, reqs)
				assert.Contains(t, ts.stdout.String(), "Cancelled.")
				assert.Equal(t, testUIDs, ts.localFile(t, "data/uids.txt"))
				return
			}
			require.Len(t, reqs, 1)
			assert.Equal(t, api.PathDeleteUID, reqs[0].Path)
			assert.Equal(t, "111", reqs[0].Body["uid"])
			assert.Equal(t, "222 #alt\n", ts.localFile(t, "data/uids.txt"))
		})
	}
}

func TestDeleteCouponWithYes(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	ts := newTestState(t, b, "")

	require.Equal(t, 0, ts.run("delete", "coupons", "SPRING24", "--yes"), ts.stderr.String())

	reqs := b.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "SPRING24", reqs[0].Body["coupon_name"])
	assert.NotContains(t, ts.stdout.String(), "Are you sure")

	cat, err := catalog.Load(ts.fs, "data/uids.txt", "data/coupons.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"SUMMER24"}, cat.Coupons)
}

const statusBody = `{
	"111_main": {"status":"Running","display_name":"111 (main)","log_preview":"redeeming SPRING24","session_id":"abc"},
	"222_alt": {"status":"Finished","display_name":"222 (alt)","log_preview":"done","session_id":null}
}`

func TestStatusHidesFinishedSessions(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.get[api.PathStatus] = statusBody
	ts := newTestState(t, b, "")

	require.Equal(t, 0, ts.run("status"), ts.stderr.String())

	out := ts.stdout.String()
	assert.Contains(t, out, "[Running] 111 (main)")
	assert.Contains(t, out, "redeeming SPRING24")
	assert.Contains(t, out, "http://hub:4444/ui/#/session/abc")
	assert.NotContains(t, out, "222 (alt)")
	assert.Contains(t, out, "1 finished session hidden")
}

func TestStatusAll(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.get[api.PathStatus] = statusBody
	ts := newTestState(t, b, "")

	require.Equal(t, 0, ts.run("status", "--all"), ts.stderr.String())

	out := ts.stdout.String()
	assert.Contains(t, out, "[Finished] 222 (alt)")
	assert.Less(t, strings.Index(out, "111 (main)"), strings.Index(out, "222 (alt)"))
	assert.NotContains(t, out, "hidden")
}

func TestStatusEmpty(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.get[api.PathStatus] = `{}`
	ts := newTestState(t, b, "")

	require.Equal(t, 0, ts.run("status"), ts.stderr.String())
	assert.Contains(t, ts.stdout.String(), "No active sessions.")
}

func TestStatusServerError(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	ts := newTestState(t, b, "")

	assert.Equal(t, 1, ts.run("status"))
	assert.Contains(t, ts.stderr.String(), "Error fetching status.")
}

func TestLogsListAndShow(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.get[api.PathLogs] = `{"logs":["app.log","app.log.1"],"coupon_logs":[]}`
	b.get[api.PathLogContent] = `{"filename":"app.log","content":"line one\n\u001b[31mline two\u001b[0m"}`
	ts := newTestState(t, b, "")

	require.Equal(t, 0, ts.run("logs", "list"), ts.stderr.String())
	out := ts.stdout.String()
	assert.Contains(t, out, "Application Logs (log)\n  app.log\n  app.log.1\n")
	assert.Contains(t, out, "Coupon Logs (coupon)\n  No logs found.\n")

	ts.stdout.buf.Reset()
	require.Equal(t, 0, ts.run("logs", "show", "log", "app.log"), ts.stderr.String())
	assert.Equal(t, "line one\nline two\n", ts.stdout.String())

	assert.Equal(t, 1, ts.run("logs", "show", "archive", "app.log"))
}

func TestTailHighlightsUntilCancelled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, "data: [Thread-2] UID: 111_main redeemed\ndata: second\n\n")
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	b := newBackend(t)
	ts := newTestState(t, b, "")
	ts.server = srv.URL
	ctx, cancel := context.WithCancel(context.Background())
	ts.ctx = ctx

	done := make(chan int, 1)
	go func() { done <- ts.run("tail") }()

	require.Eventually(t, func() bool {
		return strings.Contains(ts.stdout.String(), "second")
	}, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case code := <-done:
		assert.Equal(t, 0, code)
	case <-time.After(5 * time.Second):
		t.Fatal("tail did not stop after cancel")
	}
	assert.Contains(t, ts.stdout.String(), "[Thread-2] UID: 111_main redeemed\nsecond\n")
}

func TestVersionDevBuild(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	ts := newTestState(t, b, "")

	require.Equal(t, 0, ts.run("version"))
	assert.Contains(t, ts.stdout.String(), "coupontop version dev")
	assert.Contains(t, ts.stdout.String(), "Development build")

	assert.Equal(t, 1, ts.run("version", "--update"))
}

func TestInvalidLogLevel(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	ts := newTestState(t, b, "")

	assert.Equal(t, 1, ts.run("--log-level", "chatty", "status"))
	assert.Contains(t, ts.stderr.String(), "chatty")
}

func TestResolveUIDs(t *testing.T) {
	t.Parallel()
	cat := &catalog.Catalog{UIDs: catalog.ParseUIDs(testUIDs)}

	got := resolveUIDs(cat, []string{"111", "222_alt", "999"})
	assert.Equal(t, []string{"111_main", "222_alt", "999"}, got)
}

func TestTailMarkersColorTokens(t *testing.T) {
	t.Parallel()
	gs := &globalState{isTTY: true}
	m := (&cmdTail{gs: gs}).markers()

	line := stream.Highlight("[Thread-3] UID: 111_main ok", m)
	assert.Contains(t, line, "\x1b[")
	assert.Contains(t, line, "UID: 111_main")
	assert.True(t, strings.HasSuffix(line, " ok"))

	gs.flags.noColor = true
	m = (&cmdTail{gs: gs}).markers()
	assert.Equal(t, "[Thread-3] UID: 111_main ok", stream.Highlight("[Thread-3] UID: 111_main ok", m))
}
