// Package resolver finds the most recently modified file in a folder.
package resolver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"filename-copier/internal/logger"
)

type Resolver struct {
	logger logger.Logger
}

func New(log logger.Logger) *Resolver {
	return &Resolver{logger: log}
}

// Latest returns the base name of the regular file directly under dir with
// the greatest modification time. ok is false when dir holds no regular
// files. Ties keep the first entry in directory order, which os.ReadDir
// sorts by name.
func (r *Resolver) Latest(dir string) (name string, ok bool, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var newest time.Time
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		// Stat follows symlinks so a link to a regular file counts.
		info, statErr := os.Stat(filepath.Join(dir, entry.Name()))
		if statErr != nil {
			if !errors.Is(statErr, fs.ErrNotExist) {
				r.logger.Debug("Resolver", "skipping unreadable entry", map[string]interface{}{
					"entry": entry.Name(),
					"error": statErr.Error(),
				})
			}
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		if !ok || info.ModTime().After(newest) {
			name = entry.Name()
			newest = info.ModTime()
			ok = true
		}
	}

	r.logger.Debug("Resolver", "folder scanned", map[string]interface{}{
		"dir":     dir,
		"entries": len(entries),
		"found":   ok,
		"latest":  name,
	})

	return name, ok, nil
}
