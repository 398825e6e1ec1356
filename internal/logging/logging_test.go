// CLASSIFICATION: COMMUNITY
// Filename: logging_test.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	l.Debug("hello")
	assert.Contains(t, buf.String(), "hello")

	assert.Equal(t, logrus.InfoLevel, New(&buf, false).GetLevel())
}

func TestOpenAccessLogAppendsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.log")
	require.NoError(t, os.WriteFile(path, []byte("{\"msg\":\"old\"}\n"), 0o644))

	l, closer, err := OpenAccessLog(path)
	require.NoError(t, err)
	l.WithField("path", "/app.js").Info("request")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &rec))
	assert.Equal(t, "/app.js", rec["path"])
	assert.Equal(t, "request", rec["msg"])
}

func TestOpenAccessLogBadPath(t *testing.T) {
	_, _, err := OpenAccessLog(filepath.Join(t.TempDir(), "missing", "access.log"))
	assert.Error(t, err)
}
