// CLASSIFICATION: COMMUNITY
// Filename: watch.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package watch reports changes below the static root. It is informational
// only; the file handler never reads anything the watcher produces.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher logs filesystem events under a directory tree.
type Watcher struct {
	root string
	fw   *fsnotify.Watcher
	log  logrus.FieldLogger
}

// New watches root and every directory below it.
func New(root string, log logrus.FieldLogger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new watcher: %w", err)
	}
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(p)
		}
		return nil
	})
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", root, err)
	}
	return &Watcher{root: root, fw: fw, log: log}, nil
}

// Run logs events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("static watcher error")
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	name := ev.Name
	if rel, err := filepath.Rel(w.root, ev.Name); err == nil {
		name = filepath.ToSlash(rel)
	}
	w.log.WithFields(logrus.Fields{"file": name, "op": ev.Op.String()}).Info("static asset changed")

	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			if err := w.fw.Add(ev.Name); err != nil {
				w.log.WithError(err).WithField("dir", name).Warn("watch new directory")
			}
		}
	}
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
