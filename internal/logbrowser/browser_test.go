package logbrowser

import (
	"errors"
	"reflect"
	"testing"

	"github.com/justinpbarnett/coupontop/internal/api"
)

func TestNewBrowserIsLoading(t *testing.T) {
	t.Parallel()
	b := New()
	for _, c := range Categories {
		if p := b.Panel(c); p.Placeholder != MsgLoading {
			t.Errorf("%s: expected loading placeholder, got %q", c, p.Placeholder)
		}
	}
	if _, _, ok := b.Active(); ok {
		t.Error("expected no active entry")
	}
}

func TestApplyListing(t *testing.T) {
	t.Parallel()
	b := New()
	b.ApplyListing(api.LogListing{Logs: []string{"app.log.2", "app.log.1"}})

	logs := b.Panel(CategoryLog)
	if !reflect.DeepEqual(logs.Files, []string{"app.log.2", "app.log.1"}) {
		t.Errorf("expected server order kept, got %v", logs.Files)
	}
	if logs.Placeholder != "" {
		t.Errorf("unexpected placeholder %q", logs.Placeholder)
	}
	if p := b.Panel(CategoryCoupon); p.Placeholder != "No logs found." || len(p.Files) != 0 {
		t.Errorf("expected empty coupon panel, got %+v", p)
	}
}

func TestApplyListingError(t *testing.T) {
	t.Parallel()
	b := New()
	b.ApplyListingError(errors.New("refused"))
	for _, c := range Categories {
		if p := b.Panel(c); p.Placeholder != "Error loading logs." {
			t.Errorf("%s: expected error placeholder, got %q", c, p.Placeholder)
		}
	}
}

func TestSelectIsExclusiveAcrossCategories(t *testing.T) {
	t.Parallel()
	b := New()
	b.ApplyListing(api.LogListing{Logs: []string{"app.log"}, CouponLogs: []string{"app.log"}})

	req := b.Select(CategoryLog, "app.log")
	if req.Category != CategoryLog || req.File != "app.log" || req.Token == 0 {
		t.Errorf("unexpected request %+v", req)
	}
	b.Select(CategoryCoupon, "app.log")

	if b.IsActive(CategoryLog, "app.log") {
		t.Error("expected log entry deactivated")
	}
	if !b.IsActive(CategoryCoupon, "app.log") {
		t.Error("expected coupon entry active")
	}
}

func TestContentTokens(t *testing.T) {
	t.Parallel()
	b := New()

	first := b.Select(CategoryLog, "a.log")
	second := b.Select(CategoryLog, "b.log")
	if second.Token <= first.Token {
		t.Fatalf("expected increasing tokens, got %d then %d", first.Token, second.Token)
	}

	if b.ApplyContent(first.Token, api.LogContent{Filename: "a.log", Content: "old"}) {
		t.Error("expected stale content dropped")
	}
	if b.Body != MsgLoading {
		t.Errorf("expected loading body, got %q", b.Body)
	}

	if !b.ApplyContent(second.Token, api.LogContent{Filename: "b.log", Content: "<b>raw</b>"}) {
		t.Error("expected current content applied")
	}
	if b.Filename != "b.log" || b.Body != "<b>raw</b>" {
		t.Errorf("expected verbatim content, got %q / %q", b.Filename, b.Body)
	}

	if b.ApplyContentError(first.Token, errors.New("late")) {
		t.Error("expected stale error dropped")
	}
	third := b.Select(CategoryCoupon, "c.log")
	b.ApplyContentError(third.Token, errors.New("boom"))
	if b.Body != "Error loading log file." {
		t.Errorf("expected content error, got %q", b.Body)
	}
}
