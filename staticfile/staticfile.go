// Package staticfile serves files below a root directory over HTTP.
//
// The handler is deliberately small: it maps a request path to a file with a
// strict per-segment discipline, answers misses and directories with a plain
// 404, and streams file contents in large chunks. It consumes a request path
// and a root directory and produces a byte stream or a not-found signal,
// nothing more.
package staticfile

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is the not-found signal produced by [Handler.Resolve] for any
// path that does not map to a servable file, including paths that are
// rejected before touching the filesystem.
var ErrNotFound = errors.New("staticfile: not found")

// copyBufferSize is the chunk size used when streaming file contents.
// Response writers can have noticeable per-call overhead, so chunks are
// large.
const copyBufferSize = 256 * 1024

// A Handler serves the files below a single root directory. It implements
// [http.Handler].
type Handler struct {
	root string
}

// NewHandler returns a Handler serving the files below dir. The directory
// does not have to exist yet; requests against a missing root simply
// produce 404s.
func NewHandler(dir string) (*Handler, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &Handler{root: root}, nil
}

// Resolve maps a slash-separated request path to the absolute file path it
// denotes below the root. It returns [ErrNotFound] when the path is
// rejected, escapes the root, or denotes a directory or a missing file.
//
// Each path segment is URL-unescaped and then validated on its own: a
// segment with gratuitous whitespace, an embedded slash, or equal to ".."
// or "." rejects the whole path. There is no index-file or redirect
// handling; a path denoting a directory is a miss.
func (h *Handler) Resolve(urlPath string) (string, error) {
	file := h.root
	for _, segment := range strings.Split(urlPath, "/") {
		segment, err := url.PathUnescape(segment)
		if err != nil {
			return "", ErrNotFound
		}
		if segment != strings.TrimSpace(segment) {
			return "", ErrNotFound
		}
		if strings.Contains(segment, "/") || segment == ".." || segment == "." {
			return "", ErrNotFound
		}
		if segment != "" {
			file = filepath.Join(file, segment)
		}
	}

	// Join cleans the path; keep a containment check anyway so nothing
	// outside the root is ever served.
	if file != h.root && !strings.HasPrefix(file, h.root+string(filepath.Separator)) {
		return "", ErrNotFound
	}

	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		return "", ErrNotFound
	}
	return file, nil
}

// ServeHTTP answers GET and HEAD requests for files below the root. The
// Content-Type is guessed from the file extension, falling back to
// application/octet-stream.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	file, err := h.Resolve(r.URL.EscapedPath())
	if err != nil {
		http.NotFound(w, r)
		return
	}

	f, err := os.Open(file)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	mediaType := mime.TypeByExtension(filepath.Ext(file))
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", mediaType)

	if r.Method == http.MethodHead {
		return
	}
	io.CopyBuffer(w, f, make([]byte, copyBufferSize))
}
