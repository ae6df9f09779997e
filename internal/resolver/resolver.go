// Package resolver turns raw request paths into files under a serving root.
package resolver

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/f4ah6o/staticd-go/internal/mime"
)

var (
	// ErrForbidden is returned for traversal attempts, disallowed characters,
	// paths escaping the root and directories.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when nothing exists at the resolved path.
	ErrNotFound = errors.New("not found")
)

// blocked substrings are rejected in both the raw and the decoded path.
var blocked = []string{"../", "?", "'", `"`}

// File is a successfully resolved, regular file.
type File struct {
	// Name is the requested name after stripping and defaulting. It drives
	// content type detection.
	Name string
	// Path is the canonical filesystem path.
	Path string
	// Size is a snapshot of the byte length taken during resolution. Callers
	// that open the file should stat the open handle, as the file may change
	// in between.
	Size int64
	// ContentType is the mime type derived from Name.
	ContentType string
}

// Resolver resolves request paths against a fixed root directory.
type Resolver struct {
	root       string
	defaultDoc string
}

// New returns a Resolver rooted at root. The root is made absolute and its
// symlinks are evaluated once so containment checks compare canonical paths.
func New(root, defaultDoc string) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}
	canon, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}
	info, err := os.Stat(canon)
	if err != nil {
		return nil, fmt.Errorf("stat root %q: %w", canon, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %q is not a directory", canon)
	}
	if defaultDoc == "" {
		return nil, errors.New("default document must not be empty")
	}
	return &Resolver{root: canon, defaultDoc: defaultDoc}, nil
}

// Root returns the canonical serving root.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve maps a raw request path to a file.
//
// It strips exactly one leading slash, percent-decodes the rest, substitutes
// the default document for an empty path and rejects anything that contains
// a blocked substring or canonicalizes to a location outside the root. A name
// that is not valid percent-encoding is looked up as written. The exact
// decoded name is tried first and its NFC form only when that does not
// exist, so files stored in either normalization stay reachable. The
// filesystem is consulted on every call.
func (r *Resolver) Resolve(raw string) (*File, error) {
	name := strings.TrimPrefix(raw, "/")
	if isBlocked(name) {
		return nil, ErrForbidden
	}

	decoded, err := url.PathUnescape(name)
	if err != nil {
		decoded = name
	}
	if isBlocked(decoded) || strings.ContainsRune(decoded, 0) {
		return nil, ErrForbidden
	}
	if decoded == "" {
		decoded = r.defaultDoc
	}

	f, err := r.lookup(decoded)
	if errors.Is(err, ErrNotFound) {
		if nfc := norm.NFC.String(decoded); nfc != decoded {
			return r.lookup(nfc)
		}
	}
	return f, err
}

func (r *Resolver) lookup(name string) (*File, error) {
	candidate := filepath.Join(r.root, filepath.FromSlash(name))
	if !r.contains(candidate) {
		return nil, ErrForbidden
	}

	canon, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("resolve %q: %w", name, err)
	}
	if !r.contains(canon) {
		return nil, ErrForbidden
	}

	info, err := os.Stat(canon)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("stat %q: %w", name, err)
	}
	if info.IsDir() {
		return nil, ErrForbidden
	}

	return &File{
		Name:        name,
		Path:        canon,
		Size:        info.Size(),
		ContentType: mime.TypeOf(name),
	}, nil
}

// contains reports whether p is the root or lies lexically beneath it.
func (r *Resolver) contains(p string) bool {
	rel, err := filepath.Rel(r.root, p)
	if err != nil {
		return false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return !filepath.IsAbs(rel)
}

func isBlocked(p string) bool {
	for _, s := range blocked {
		if strings.Contains(p, s) {
			return true
		}
	}
	return false
}
