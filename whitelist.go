package roster

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goliatone/go-errors"
)

// Whitelist is the file backed registration gate. The file is the source
// of truth and is re-read on every check, so out-of-band edits take
// effect immediately. One email per line, case folded; blank lines and
// lines starting with # are ignored.
type Whitelist struct {
	path   string
	mu     sync.Mutex
	logger Logger
}

// NewWhitelist creates a gate over the given file path. The file does not
// need to exist; a missing file is an empty list.
func NewWhitelist(path string) *Whitelist {
	return &Whitelist{
		path:   path,
		logger: defLogger{},
	}
}

func (w *Whitelist) WithLogger(logger Logger) *Whitelist {
	if logger != nil {
		w.logger = logger
	}
	return w
}

// IsAllowed reports whether the email is on the list. Read failures
// degrade to not-allowed rather than failing the registration path.
func (w *Whitelist) IsAllowed(email string) bool {
	emails, err := w.load()
	if err != nil {
		w.logger.Error("Whitelist read failed, treating as empty", "path", w.path, "error", err)
		return false
	}

	_, ok := emails[NormalizeEmail(email)]
	return ok
}

// Entries returns the current list, sorted by file order.
func (w *Whitelist) Entries() ([]string, error) {
	lines, err := w.loadLines()
	if err != nil {
		return nil, err
	}

	entries := make([]string, 0, len(lines))
	for _, line := range lines {
		if email := entryFromLine(line); email != "" {
			entries = append(entries, email)
		}
	}

	return entries, nil
}

// Add appends the email if absent. Returns false when it was already
// listed. Creates the file on first use.
func (w *Whitelist) Add(email string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	email = NormalizeEmail(email)
	if email == "" {
		return false, errors.New("email must not be empty", errors.CategoryBadInput)
	}

	emails, err := w.load()
	if err != nil {
		return false, err
	}

	if _, ok := emails[email]; ok {
		return false, nil
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, errors.Wrap(err, errors.CategoryOperation, "failed to open whitelist for append")
	}
	defer f.Close()

	if _, err := f.WriteString(email + "\n"); err != nil {
		return false, errors.Wrap(err, errors.CategoryOperation, "failed to append whitelist entry")
	}

	return true, nil
}

// Remove drops the email if present, rewriting the file through a temp
// file and rename so readers never observe a partial list. Returns false
// when the email was not listed. Comments and blank lines survive.
func (w *Whitelist) Remove(email string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	email = NormalizeEmail(email)

	lines, err := w.loadLines()
	if err != nil {
		return false, err
	}

	found := false
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if entryFromLine(line) == email {
			found = true
			continue
		}
		kept = append(kept, line)
	}

	if !found {
		return false, nil
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(w.path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(w.path), ".whitelist-*")
	if err != nil {
		return false, errors.Wrap(err, errors.CategoryOperation, "failed to create whitelist temp file")
	}

	// CreateTemp uses 0600; keep the list readable for out-of-band edits
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return false, errors.Wrap(err, errors.CategoryOperation, "failed to set whitelist file mode")
	}

	for _, line := range kept {
		if _, err := tmp.WriteString(line + "\n"); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return false, errors.Wrap(err, errors.CategoryOperation, "failed to write whitelist temp file")
		}
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return false, errors.Wrap(err, errors.CategoryOperation, "failed to close whitelist temp file")
	}

	if err := os.Rename(tmp.Name(), w.path); err != nil {
		os.Remove(tmp.Name())
		return false, errors.Wrap(err, errors.CategoryOperation, "failed to replace whitelist file")
	}

	return true, nil
}

func (w *Whitelist) load() (map[string]struct{}, error) {
	lines, err := w.loadLines()
	if err != nil {
		return nil, err
	}

	emails := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if email := entryFromLine(line); email != "" {
			emails[email] = struct{}{}
		}
	}

	return emails, nil
}

func (w *Whitelist) loadLines() ([]string, error) {
	f, err := os.Open(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to read whitelist file")
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to scan whitelist file")
	}

	return lines, nil
}

// entryFromLine returns the normalized email on a line, or "" for blanks
// and comments.
func entryFromLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return ""
	}
	return strings.ToLower(trimmed)
}
