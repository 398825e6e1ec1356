// CLASSIFICATION: COMMUNITY
// Filename: serve.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package static maps request paths onto files below a fixed root directory.
package static

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// IndexFile is served when the request path is empty.
const IndexFile = "index.html"

// ErrOutsideRoot is returned by Resolve when a path escapes the static root.
var ErrOutsideRoot = errors.New("path escapes static root")

// Options tune FileHandler.
type Options struct {
	// AllowTraversal serves the joined path even when ".." segments lead
	// outside the root.
	AllowTraversal bool
	Logger         logrus.FieldLogger
}

// Resolve maps a URL path onto a file below root.
func Resolve(root, reqPath string, allowTraversal bool) (string, error) {
	p := strings.TrimPrefix(reqPath, "/")
	if p == "" {
		p = IndexFile
	}
	full := filepath.Join(root, filepath.FromSlash(p))
	if allowTraversal {
		return full, nil
	}
	rel, err := filepath.Rel(filepath.Clean(root), full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return full, nil
}

// openFile is swapped in tests to reach the server error branch.
var openFile = os.Open

// FileHandler returns an HTTP handler that serves files from root. Every
// request is resolved against the filesystem; nothing is cached.
func FileHandler(root string, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, err := Resolve(root, r.URL.Path, opts.AllowTraversal)
		if err != nil {
			log.WithField("path", r.URL.Path).Warn("rejected path outside static root")
			notFound(w)
			return
		}

		// Any stat failure means there is no file to serve, whatever the
		// errno. Only regular files are opened; a FIFO would block in open(2).
		info, err := os.Stat(name)
		if err != nil || !info.Mode().IsRegular() {
			notFound(w)
			return
		}

		f, err := openFile(name)
		if err != nil {
			serverError(w, log, name, err)
			return
		}
		defer f.Close()

		h := w.Header()
		h.Set("Content-Type", ContentType(name))
		h.Set("Content-Length", strconv.FormatInt(info.Size(), 10))
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, f); err != nil {
			log.WithError(err).WithField("file", name).Warn("short write")
		}
	})
}

func notFound(w http.ResponseWriter) {
	http.Error(w, "File not found", http.StatusNotFound)
}

func serverError(w http.ResponseWriter, log logrus.FieldLogger, name string, err error) {
	log.WithError(err).WithField("file", name).Error("serve static file")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
