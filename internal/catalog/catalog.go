// Package catalog reads the operator's UID and coupon lists.
//
// The backend keeps them as two text files. uids.txt holds one
// "uid #comment" entry per line and coupons.txt holds one code per line.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// UID is one line of uids.txt. ID is the key the backend expects in a run
// request and uses as the session key.
type UID struct {
	UID     string
	Comment string
	ID      string
}

// Label is the display form used by the backend for session titles.
func (u UID) Label() string {
	return fmt.Sprintf("%s (%s)", u.UID, u.Comment)
}

type Catalog struct {
	UIDs       []UID
	Coupons    []string
	UIDsRaw    string
	CouponsRaw string
}

// UIDIDs returns the run keys in file order.
func (c *Catalog) UIDIDs() []string {
	ids := make([]string, len(c.UIDs))
	for i, u := range c.UIDs {
		ids[i] = u.ID
	}
	return ids
}

// FindUID returns the entry with the given run key.
func (c *Catalog) FindUID(id string) (UID, bool) {
	for _, u := range c.UIDs {
		if u.ID == id {
			return u, true
		}
	}
	return UID{}, false
}

// Load reads both files from fs. A missing file is an empty list.
func Load(fs afero.Fs, uidsPath, couponsPath string) (*Catalog, error) {
	uidsRaw, err := readOptional(fs, uidsPath)
	if err != nil {
		return nil, err
	}
	couponsRaw, err := readOptional(fs, couponsPath)
	if err != nil {
		return nil, err
	}
	return &Catalog{
		UIDs:       ParseUIDs(uidsRaw),
		Coupons:    ParseCoupons(couponsRaw),
		UIDsRaw:    uidsRaw,
		CouponsRaw: couponsRaw,
	}, nil
}

// ParseUIDs parses uids.txt content. Lines without a '#' are skipped.
func ParseUIDs(raw string) []UID {
	var out []UID
	for _, line := range splitLines(raw) {
		uid, comment, ok := strings.Cut(line, "#")
		if !ok {
			continue
		}
		uid = strings.TrimSpace(uid)
		comment = strings.TrimSpace(comment)
		out = append(out, UID{UID: uid, Comment: comment, ID: uid + "_" + comment})
	}
	return out
}

// ParseCoupons parses coupons.txt content.
func ParseCoupons(raw string) []string {
	return splitLines(raw)
}

// splitLines returns the trimmed non-blank lines of raw.
func splitLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func readOptional(fs afero.Fs, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// WriteRaw replaces path with content through a temp file in the same
// directory, so readers never see a half-written list.
func WriteRaw(fs afero.Fs, path, content string) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}

// WithoutUID drops every line whose trimmed text starts with uid. The
// result is one trimmed line per entry, newline terminated.
func WithoutUID(raw, uid string) (string, bool) {
	var kept []string
	removed := false
	for _, line := range splitLines(raw) {
		if strings.HasPrefix(line, uid) {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	return joinLines(kept), removed
}

// WithoutCoupon drops the first line equal to name.
func WithoutCoupon(raw, name string) (string, bool) {
	lines := splitLines(raw)
	for i, line := range lines {
		if line == name {
			return joinLines(append(lines[:i:i], lines[i+1:]...)), true
		}
	}
	return joinLines(lines), false
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
