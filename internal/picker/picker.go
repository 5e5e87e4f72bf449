// Package picker opens the native directory chooser.
package picker

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sqweek/dialog"
)

type FolderPicker struct {
	title  string
	browse func(title, start string) (string, error)
}

func NewFolderPicker(title string) *FolderPicker {
	return &FolderPicker{
		title: title,
		browse: func(title, start string) (string, error) {
			b := dialog.Directory().Title(title)
			if start != "" {
				b = b.SetStartDir(start)
			}
			return b.Browse()
		},
	}
}

// Choose blocks until the user confirms or cancels. start, when not empty,
// is the directory the chooser opens in. ok is false when the user
// cancelled; the returned path is absolute.
func (p *FolderPicker) Choose(start string) (path string, ok bool, err error) {
	path, err = p.browse(p.title, start)
	if errors.Is(err, dialog.ErrCancelled) || (err == nil && path == "") {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("folder dialog failed: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return abs, true, nil
}
