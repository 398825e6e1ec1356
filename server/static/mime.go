// CLASSIFICATION: COMMUNITY
// Filename: mime.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package static

import (
	"mime"
	"path/filepath"
	"strings"
)

// DefaultContentType is used for files with no known extension.
const DefaultContentType = "application/octet-stream"

// Web asset types are pinned so responses do not depend on the host's
// mime.types.
var builtinTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".htm":  "text/html; charset=utf-8",
	".js":   "application/javascript",
	".mjs":  "application/javascript",
	".css":  "text/css; charset=utf-8",
	".json": "application/json",
}

// ContentType infers the Content-Type header from the file extension.
func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return DefaultContentType
	}
	if t, ok := builtinTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return DefaultContentType
}
